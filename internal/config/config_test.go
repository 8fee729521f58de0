package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/pal/internal/sequencer"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MasteryThreshold != sequencer.DefaultMasteryThreshold {
		t.Errorf("MasteryThreshold = %v, want default %v",
			cfg.MasteryThreshold, sequencer.DefaultMasteryThreshold)
	}
	if cfg.BKT.PTransit != 0.2 || cfg.BKT.PSlip != 0.1 || cfg.BKT.PGuess != 0.2 {
		t.Errorf("BKT defaults = %+v", cfg.BKT)
	}
	if cfg.LLM.Provider == "" {
		t.Error("LLM.Provider is empty, want a default provider")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
default_topic: "Go basics"
mastery_threshold: 0.9
bkt:
  p_init: 0.1
  p_transit: 0.3
  p_slip: 0.05
  p_guess: 0.25
llm:
  provider: ollama
  ollama:
    model: qwen2.5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultTopic != "Go basics" {
		t.Errorf("DefaultTopic = %q", cfg.DefaultTopic)
	}
	if cfg.MasteryThreshold != 0.9 {
		t.Errorf("MasteryThreshold = %v, want 0.9", cfg.MasteryThreshold)
	}
	if got := cfg.BKTParams(); got.PInit != 0.1 || got.PTransit != 0.3 {
		t.Errorf("BKTParams() = %+v", got)
	}

	llmCfg := cfg.LLMConfig()
	if llmCfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", llmCfg.Provider)
	}
	if llmCfg.Ollama.Model != "qwen2.5" {
		t.Errorf("Ollama.Model = %q, want qwen2.5", llmCfg.Ollama.Model)
	}
	// Unset file fields keep their defaults.
	if llmCfg.Ollama.BaseURL == "" {
		t.Error("Ollama.BaseURL lost its default")
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "mastery_threshold: 0.9\ndefault_topic: from file\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PAL_MASTERY_THRESHOLD", "0.8")
	t.Setenv("PAL_DEFAULT_TOPIC", "from env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MasteryThreshold != 0.8 {
		t.Errorf("MasteryThreshold = %v, want env value 0.8", cfg.MasteryThreshold)
	}
	if cfg.DefaultTopic != "from env" {
		t.Errorf("DefaultTopic = %q, want env value", cfg.DefaultTopic)
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"threshold above one", "mastery_threshold: 1.5\n"},
		{"threshold zero", "mastery_threshold: 0\n"},
		{"bkt param out of range", "bkt:\n  p_slip: 2.0\n"},
		{"malformed yaml", "mastery_threshold: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("Load() error = nil, want validation error")
			}
		})
	}
}

func TestDefaultPath_HonorsXDG(t *testing.T) {
	t.Setenv("PAL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg", "pal", "config.yaml")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestDefaultPath_ExplicitOverride(t *testing.T) {
	t.Setenv("PAL_CONFIG", "/etc/pal.yaml")

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if got != "/etc/pal.yaml" {
		t.Errorf("DefaultPath() = %q, want PAL_CONFIG value", got)
	}
}
