package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pal/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM configuration and usage",
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider responds",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Printf("Provider: %s\nModel:    %s\n", llmCfg.Provider, provider.ModelID())

		ctx := llm.WithPurpose(cmd.Context(), "check")
		resp, err := provider.Generate(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "Reply with the single word: ok"},
			},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}

		fmt.Printf("Response: %s\n", string(resp.Content))
		fmt.Printf("Tokens:   %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().TotalLLMStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if stats.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("Requests:      %d\n", stats.Requests)
		fmt.Printf("Failures:      %d\n", stats.Failures)
		fmt.Printf("Input tokens:  %d\n", stats.InputTokens)
		fmt.Printf("Output tokens: %d\n", stats.OutputTokens)
		return nil
	},
}
