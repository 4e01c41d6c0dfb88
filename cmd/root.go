package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Multiple-choice quizzes in your terminal",
	Long: `QuizDeck is a terminal quiz app. Pick a subject, choose a group of
questions and answer them in a fresh random order every attempt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: $XDG_CONFIG_HOME/quizdeck/config.yaml)")
	rootCmd.PersistentFlags().Int("page-size", 0, "Questions per group (overrides QUIZDECK_PAGE_SIZE)")

	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(llmCmd)
}

// loadConfig reads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("page-size") {
		size, _ := cmd.Flags().GetInt("page-size")
		cfg.PageSize = size
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, creating its
// directory, or the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database it names.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLoader returns the bank loader for cfg.
func newLoader(cfg *config.Config) *bank.Loader {
	return bank.NewDefaultLoader(cfg.DataDir, nil)
}
