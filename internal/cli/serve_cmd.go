package cli

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/menus/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the menu HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger
			if logger == nil {
				logger = slog.Default()
			}
			if addr == "" {
				addr = app.Config.HTTP.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			opts := []api.RouterOption{api.WithLogger(logger)}
			if app.Registry != nil {
				opts = append(opts, api.WithMetrics(app.Registry))
			}
			router := api.NewRouter(api.NewMenuHandler(app.Menus, logger), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, ln, router, app.Config.HTTP.ShutdownTimeout(), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
