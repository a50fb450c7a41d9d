package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/internsim/internal/config"
	"github.com/abhisek/internsim/internal/store"
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "internsim",
	Short: "Data analytics internship simulator",
	Long: `InternSim drops you into a data analyst internship. Your manager hands you a
messy dataset and a business problem; you work through it one decision at a time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		loaded, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERNSIM_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.Flags().String("scenario", "", "Serve every assignment from this scenario pack instead of generating one")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then INTERNSIM_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log for commands that read or write it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
