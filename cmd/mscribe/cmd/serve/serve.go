package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meeting-scribe/internal/api/server"
	"meeting-scribe/internal/app"
	"meeting-scribe/internal/config"
)

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "bind address (overrides APP_HOST)")
	Cmd.Flags().StringVar(&port, "port", "", "listen port (overrides APP_PORT)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server with both pipelines: local WhisperX
transcription and model-driven analysis with persisted results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()
		if host != "" {
			settings.Host = host
		}
		if port != "" {
			settings.Port = port
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		srv, cleanup, err := app.InitializeServer(server.Config{
			Host:        settings.Host,
			Port:        settings.Port,
			ReadTimeout: 5 * time.Minute,
			// Transcription of long recordings holds the response open.
			WriteTimeout: 30 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  settings.Environment,
		}, settings, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
