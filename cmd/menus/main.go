package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/menus/internal/cli"
	"github.com/alexanderramin/menus/internal/cli/formatter"
	"github.com/alexanderramin/menus/internal/config"
	"github.com/alexanderramin/menus/internal/db"
	"github.com/alexanderramin/menus/internal/repository"
	"github.com/alexanderramin/menus/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(config.ResolvePath(configFlag(args)))
	if err != nil {
		return err
	}

	logger := cfg.Log.NewLogger(os.Stderr)

	if !isTerminal(os.Stdout) {
		formatter.DisableColor()
	}

	database, err := db.OpenDB(cfg.DB.Path, db.WithBusyTimeout(cfg.DB.BusyTimeout()))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	menuRepo := repository.NewSQLiteMenuRepo(database)
	uow := db.NewSQLiteUnitOfWork(database).WithLogger(logger)

	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger)}
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		observers = append(observers, service.NewMetricsUseCaseObserver(registry))
	}

	app := &cli.App{
		Menus:    service.NewMenuService(menuRepo, uow, observers...),
		Logger:   logger,
		Config:   cfg,
		Registry: registry,
	}

	return cli.NewRootCmd(app).Execute()
}

// configFlag pulls --config out of args ahead of cobra, since the config
// decides how the App handed to cobra is built.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("menus", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
