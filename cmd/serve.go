package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd, envOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer svc.Close()

		cfg := server.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, svc.quizzes, svc.grader, svc.performance, svc.log)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SNAPQUIZ_HTTP_ADDR, default :8080)")
}
