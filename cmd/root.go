package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pal/internal/config"
	"github.com/abhisek/pal/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pal",
	Short: "AI tutor that adapts to what you already know",
	Long: "pal — terminal tutor for any topic. An LLM designs the curriculum and writes " +
		"the problems; a knowledge tracing model decides what you should practice next.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PAL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides PAL_CONFIG env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, PAL_CONFIG, or the
// default XDG location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then PAL_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads config and opens the event store, the shared preamble
// of most subcommands.
func openStore(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, st, nil
}
