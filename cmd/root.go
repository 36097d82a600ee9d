package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/config"
	"github.com/abhisek/gradewise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gradewise",
	Short: "Edit course grading weights",
	Long:  "Gradewise — terminal editor for the grading weights of a subject: units, quizzes, lessons and the post-test.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides GRADEWISE_DB env var)")
	pf.String("api", "", "Grading service base URL (overrides GRADEWISE_API_URL)")
	pf.String("token", "", "Bearer token for the grading service (overrides GRADEWISE_TOKEN)")
	pf.StringP("subject", "s", "", "Subject ID to edit (overrides GRADEWISE_SUBJECT)")
	pf.String("log-mode", "", "Log mode: dev or prod (overrides GRADEWISE_LOG_MODE)")
	pf.String("log-file", "", "Write logs to this file (overrides GRADEWISE_LOG_FILE)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(distributeCmd)
	rootCmd.AddCommand(passingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads GRADEWISE_* variables and applies flag overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.ConfigFromEnv()

	override := func(flag string, dst *string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	override("api", &cfg.API.BaseURL)
	override("token", &cfg.API.Token)
	override("subject", &cfg.API.SubjectID)
	override("log-mode", &cfg.Log.Mode)
	override("log-file", &cfg.Log.File)
	override("db", &cfg.DBPath)

	return cfg
}

// resolveDBPath returns the database path using --db flag or GRADEWISE_DB
// (highest priority), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
