package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/store"
)

// defaultUser owns local data when no --user or SNAPQUIZ_USER is given.
const defaultUser = "local"

var rootCmd = &cobra.Command{
	Use:   "snapquiz",
	Short: "Turn scanned notes into quizzes",
	Long:  "SnapQuiz generates multiple-choice quizzes from a content analysis, grades attempts and tracks performance.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; real env vars still apply.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SNAPQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "User ID that owns quizzes and attempts (overrides SNAPQUIZ_USER env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SNAPQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUser returns --user, then SNAPQUIZ_USER, then defaultUser.
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("SNAPQUIZ_USER"); u != "" {
		return u
	}
	return defaultUser
}
