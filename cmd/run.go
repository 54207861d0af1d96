package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/app"
	"github.com/abhisek/snapquiz/internal/screens"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty analysisPath starts generating a quiz right away.
func runApp(cmd *cobra.Command, analysisPath string) error {
	svc, err := openServices(cmd, envOptions{logToFile: true, withLLM: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	deps := screens.Deps{
		Quizzes:     svc.quizzes,
		Grader:      svc.grader,
		Performance: svc.performance,
		UserID:      svc.userID,
	}
	return app.Run(deps, app.Options{AnalysisPath: analysisPath})
}
