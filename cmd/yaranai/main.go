package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/cli"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/config"
	"github.com/yaranai/yaranai/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.Failure(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	app := &cli.App{
		LogFile:  cfg.LogFile,
		LogCalls: cfg.LogCalls,
	}
	defer app.Close()

	// Detect interactive terminal: no-arg invocation opens the screen.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired after flag parsing so --platform and --api-url apply.
	app.Connect = func(s cli.Settings) error {
		cfg.ApplyOverrides(s.Platform, s.APIURL)
		if err := cfg.Validate(); err != nil {
			return err
		}

		var observer api.Observer = api.NoopObserver{}
		var useCases service.UseCaseObserver = service.NoopUseCaseObserver{}
		if s.Log != nil {
			observer = api.NewLogObserver(s.Log)
			useCases = service.NewLogUseCaseObserver(s.Log)
		}

		client := api.NewClient(cfg.BaseURL, api.WithObserver(observer))
		app.Items = service.NewItemService(client, useCases)
		app.Income = service.NewIncomeService(client, useCases)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
