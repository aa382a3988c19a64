package cli

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yaranai/yaranai/internal/service"
)

// Settings are the connection parameters resolved after flag parsing.
type Settings struct {
	Platform string
	APIURL   string
	// Log receives structured call logs. Nil disables them.
	Log io.Writer
}

// App holds references to the service interfaces used by commands and the TUI.
type App struct {
	Items  service.ItemService
	Income service.IncomeService

	// Connect builds Items and Income once global flags are known. Tests
	// leave it nil and set the services directly.
	Connect func(Settings) error

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// LogFile receives logs while the TUI owns the terminal.
	LogFile string
	// LogCalls sends call logs to stderr in plain CLI mode.
	LogCalls bool

	// RunProgram runs the full-screen program. Nil uses bubbletea with the
	// alternate screen.
	RunProgram func(tea.Model) error

	closeLog func() error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "yaranai" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var platform, apiURL string

	root := &cobra.Command{
		Use:           "yaranai",
		Short:         "Track the habits you want to quit and what they cost you",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(cmd, wantsTUI(app, cmd), Settings{Platform: platform, APIURL: apiURL})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return runList(cmd, app, nil)
		},
	}

	root.PersistentFlags().StringVar(&platform, "platform", "", "Host platform used to pick the default API address (default|android)")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL, overrides --platform")

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newIncomeCmd(app),
		newTUICmd(app),
	)

	return root
}

// wantsTUI reports whether cmd is about to take over the terminal.
func wantsTUI(app *App, cmd *cobra.Command) bool {
	if cmd.Name() == "tui" {
		return true
	}
	return !cmd.HasParent() && app.interactive()
}

// prepare routes logs and connects the services. While the TUI runs every
// log line goes to the log file so nothing is written over the screen.
func (a *App) prepare(cmd *cobra.Command, tui bool, s Settings) error {
	switch {
	case tui && a.LogFile != "":
		f, err := openLogFile(a.LogFile)
		if err != nil {
			return err
		}
		a.closeLog = f.Close
		s.Log = f
	case a.LogCalls:
		s.Log = cmd.ErrOrStderr()
	}
	if s.Log != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(s.Log, nil)))
	}

	if a.Connect == nil {
		return nil
	}
	return a.Connect(s)
}

// Close releases the log file opened for the TUI, if any.
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}
