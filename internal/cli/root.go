package cli

import (
	"fmt"
	"log/slog"

	"github.com/alexanderramin/menus/internal/config"
	"github.com/alexanderramin/menus/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the menu service plus the settings
// the serve command starts the HTTP API with.
type App struct {
	Menus  service.MenuService
	Logger *slog.Logger
	Config config.Config
	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry
}

// NewRootCmd creates the top-level "menus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "menus",
		Short:         "Hierarchical, ordered menu store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON:
				return nil
			default:
				return fmt.Errorf("invalid --output %q (want text or json)", output)
			}
		},
	}

	// Read by main before the App is built; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "Path to a TOML config file (env MENUS_CONFIG)")
	root.PersistentFlags().StringVarP(&output, "output", "o", outputText, "Output format: text|json")

	out := func() string { return output }
	root.AddCommand(
		newServeCmd(app),
		newCreateCmd(app, out),
		newTreeCmd(app, out),
		newGetCmd(app, out),
		newUpdateCmd(app, out),
		newDeleteCmd(app, out),
		newMoveCmd(app, out),
		newReorderCmd(app, out),
		newCheckCmd(app, out),
	)

	return root
}
