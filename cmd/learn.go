package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pal/internal/app"
	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/knowledge"
	"github.com/abhisek/pal/internal/llm"
	"github.com/abhisek/pal/internal/session"
)

var learnCmd = &cobra.Command{
	Use:   "learn [topic]",
	Short: "Launch the tutor, optionally pre-filling a topic",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, strings.Join(args, " "))
	},
}

func init() {
	learnCmd.Flags().String("graph", "", "Start from a curriculum JSON file instead of generating one")
}

// runApp loads config, opens the store, wires the LLM stack, and starts
// the TUI.
func runApp(cmd *cobra.Command, topic string) error {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	llmCfg := cfg.LLMConfig()
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return fmt.Errorf("LLM provider not configured: %w\n"+
				"Set an API key (e.g. GEMINI_API_KEY or PAL_GEMINI_API_KEY) or run a local Ollama", err)
		}
		llmCfg = discovered
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg, st.EventRepo())
	if err != nil {
		return err
	}

	factory := session.Factory{
		Params:    cfg.BKTParams(),
		Threshold: cfg.MasteryThreshold,
		Content:   content.NewService(provider, content.DefaultConfig()),
		Events:    st.EventRepo(),
	}

	if topic == "" {
		topic = cfg.DefaultTopic
	}

	opts := app.Options{
		Factory:      factory,
		ProviderName: llmCfg.Provider,
		DefaultTopic: topic,
	}

	if graphPath, _ := cmd.Flags().GetString("graph"); graphPath != "" {
		svc, err := sessionFromGraphFile(factory, graphPath)
		if err != nil {
			return err
		}
		opts.InitialSession = svc
	}

	return app.Run(opts)
}

// sessionFromGraphFile loads a curriculum JSON file and builds a session
// over it, warning about skills trapped in prerequisite cycles.
func sessionFromGraphFile(factory session.Factory, path string) (*session.Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum file: %w", err)
	}
	defer f.Close()

	graph, err := knowledge.ParseJSON(f)
	if err != nil {
		return nil, fmt.Errorf("parse curriculum %s: %w", path, err)
	}

	if cycled := graph.CycleIDs(); len(cycled) > 0 {
		fmt.Fprintf(os.Stderr,
			"warning: skills %s are locked in a prerequisite cycle and can never be selected\n",
			strings.Join(cycled, ", "))
	}

	return factory.NewSession(graph)
}
