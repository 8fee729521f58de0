package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/llm"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum <topic>",
	Short: "Generate a curriculum for a topic and print it as JSON",
	Long: "Asks the LLM to design a knowledge graph for the topic and prints it " +
		"in pal's curriculum JSON format, skills in learning order.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		llmCfg := cfg.LLMConfig()
		if err := llmCfg.Validate(); err != nil {
			return err
		}
		provider, err := llm.NewProvider(cmd.Context(), llmCfg, st.EventRepo())
		if err != nil {
			return err
		}

		svc := content.NewService(provider, content.DefaultConfig())
		graph, err := svc.GenerateCurriculum(cmd.Context(), topic)
		if err != nil {
			return err
		}

		if cycled := graph.CycleIDs(); len(cycled) > 0 {
			fmt.Fprintf(os.Stderr,
				"warning: skills %s are locked in a prerequisite cycle\n",
				strings.Join(cycled, ", "))
		}

		if err := graph.EncodeJSON(os.Stdout); err != nil {
			return fmt.Errorf("encode curriculum: %w", err)
		}
		return nil
	},
}
