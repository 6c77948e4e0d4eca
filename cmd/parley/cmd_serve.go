package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openparley/parley/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port int
		cors []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the debate REST API server",
		Long: `Start the debate REST API server.

The server binds to loopback only and holds no debate state: sessions travel
in request and response bodies, and only notebooks are persisted on disk.

Endpoints:
  POST   /api/debate/start     Start a debate
  POST   /api/debate/continue  Advance a debate (?ack=true confirms notebooks)
  GET    /api/personas         List available personas
  GET    /api/notebooks        List stored notebooks
  GET    /api/notebooks/{key}  Read a notebook (?format=html renders markdown)
  DELETE /api/notebooks/{key}  Delete a notebook
  GET    /api/health           Health check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if port == 0 {
				port = a.cfg.Server.Port
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				AllowedOrigins: cors,
				Engine:         a.engine,
				Registry:       a.registry,
				Store:          a.store,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from .parley.yaml)")
	cmd.Flags().StringSliceVar(&cors, "cors", nil, "Origins allowed via CORS (default same-origin only)")

	return cmd
}
