// Package config loads pal's configuration file and merges it with
// environment overrides. Precedence, lowest to highest: built-in
// defaults, the YAML config file, PAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/pal/internal/bkt"
	"github.com/abhisek/pal/internal/llm"
	"github.com/abhisek/pal/internal/sequencer"
)

// Config is the on-disk configuration shape.
type Config struct {
	// DefaultTopic pre-fills the topic prompt when starting a session.
	DefaultTopic string `yaml:"default_topic"`

	// MasteryThreshold is the mastery probability at or above which a
	// skill stops being selected. Must be in (0, 1].
	MasteryThreshold float64 `yaml:"mastery_threshold"`

	// DBPath overrides the default event database location.
	DBPath string `yaml:"db_path"`

	BKT BKTConfig `yaml:"bkt"`
	LLM LLMConfig `yaml:"llm"`
}

// BKTConfig holds the knowledge tracing parameters.
type BKTConfig struct {
	PInit    float64 `yaml:"p_init"`
	PTransit float64 `yaml:"p_transit"`
	PSlip    float64 `yaml:"p_slip"`
	PGuess   float64 `yaml:"p_guess"`
}

// LLMConfig holds provider selection and per-provider settings.
type LLMConfig struct {
	Provider  string         `yaml:"provider"`
	Anthropic ProviderConfig `yaml:"anthropic"`
	OpenAI    ProviderConfig `yaml:"openai"`
	Gemini    ProviderConfig `yaml:"gemini"`
	Ollama    ProviderConfig `yaml:"ollama"`
}

// ProviderConfig is the per-provider file section. Not every field
// applies to every provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	llmDefaults := llm.DefaultConfig()
	bktDefaults := bkt.DefaultParams()
	return Config{
		MasteryThreshold: sequencer.DefaultMasteryThreshold,
		BKT: BKTConfig{
			PInit:    bktDefaults.PInit,
			PTransit: bktDefaults.PTransit,
			PSlip:    bktDefaults.PSlip,
			PGuess:   bktDefaults.PGuess,
		},
		LLM: LLMConfig{
			Provider:  llmDefaults.Provider,
			Anthropic: ProviderConfig{Model: llmDefaults.Anthropic.Model},
			OpenAI:    ProviderConfig{Model: llmDefaults.OpenAI.Model},
			Gemini:    ProviderConfig{Model: llmDefaults.Gemini.Model},
			Ollama: ProviderConfig{
				Model:   llmDefaults.Ollama.Model,
				BaseURL: llmDefaults.Ollama.BaseURL,
			},
		},
	}
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if p := os.Getenv("PAL_CONFIG"); p != "" {
		return p, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pal", "config.yaml"), nil
}

// Load reads the config file at path, layered over defaults and under
// environment overrides. A missing file is not an error; the defaults
// plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Fine, use defaults.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if t := os.Getenv("PAL_DEFAULT_TOPIC"); t != "" {
		cfg.DefaultTopic = t
	}
	if v := os.Getenv("PAL_MASTERY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MasteryThreshold = f
		}
	}
	if p := os.Getenv("PAL_DB"); p != "" {
		cfg.DBPath = p
	}
	return cfg
}

// Validate checks field ranges that yaml decoding cannot.
func (c Config) Validate() error {
	if c.MasteryThreshold <= 0 || c.MasteryThreshold > 1 {
		return fmt.Errorf("config: mastery_threshold must be in (0, 1], got %v", c.MasteryThreshold)
	}
	if _, err := bkt.New(c.BKTParams()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BKTParams converts the file section to model parameters.
func (c Config) BKTParams() bkt.Params {
	return bkt.Params{
		PInit:    c.BKT.PInit,
		PTransit: c.BKT.PTransit,
		PSlip:    c.BKT.PSlip,
		PGuess:   c.BKT.PGuess,
	}
}

// LLMConfig assembles the provider configuration: file values layered
// over llm defaults, then PAL_* environment variables on top.
func (c Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if v := c.LLM.Anthropic.APIKey; v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := c.LLM.Anthropic.Model; v != "" {
		cfg.Anthropic.Model = v
	}
	if v := c.LLM.OpenAI.APIKey; v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := c.LLM.OpenAI.Model; v != "" {
		cfg.OpenAI.Model = v
	}
	if v := c.LLM.OpenAI.BaseURL; v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := c.LLM.Gemini.APIKey; v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := c.LLM.Gemini.Model; v != "" {
		cfg.Gemini.Model = v
	}
	if v := c.LLM.Ollama.BaseURL; v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := c.LLM.Ollama.Model; v != "" {
		cfg.Ollama.Model = v
	}

	return llm.ApplyEnv(cfg)
}
