package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer history and accuracy per skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		skills, err := st.EventRepo().AllSkillStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query skill stats: %w", err)
		}
		if len(skills) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Printf("%-32s  %8s  %8s  %8s\n", "Skill", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 64))
		var attempts, correct int
		for _, s := range skills {
			name := s.SkillName
			if len(name) > 32 {
				name = name[:32]
			}
			fmt.Printf("%-32s  %8d  %8d  %7.1f%%\n",
				name, s.Attempts, s.Correct, s.Accuracy()*100)
			attempts += s.Attempts
			correct += s.Correct
		}
		fmt.Println(strings.Repeat("─", 64))
		total := 0.0
		if attempts > 0 {
			total = float64(correct) / float64(attempts) * 100
		}
		fmt.Printf("%-32s  %8d  %8d  %7.1f%%\n", "Total", attempts, correct, total)
		return nil
	},
}
