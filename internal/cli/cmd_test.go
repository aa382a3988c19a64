package cli

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaranai/yaranai/internal/domain"
)

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// ── list ─────────────────────────────────────────────────────────────────────

func TestListCmd(t *testing.T) {
	app, _ := testApp(t, seedItems()...)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Doomscrolling")
	assert.Contains(t, out, "Late snacks")
	assert.Contains(t, out, "1.5h/day")
	assert.Contains(t, out, "2 item(s)")
}

func TestListCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing registered yet.")
}

func TestListCmd_Failure(t *testing.T) {
	app, client := testApp(t)
	client.failWith("list")

	_, err := executeCmd(t, app, "list")
	assert.Error(t, err)
}

func TestListCmd_WageAddsSavingsColumn(t *testing.T) {
	app, _ := testApp(t, seedItems()...)

	out, err := executeCmd(t, app, "list", "--wage", "1,500")
	require.NoError(t, err)
	assert.Contains(t, out, "PER DAY")
	assert.Contains(t, out, "2,250円")
}

func TestListCmd_BadWage(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	_, err := executeCmd(t, app, "list", "--wage", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 0, client.count("list"))
}

func TestRootCmd_NonInteractivePrintsList(t *testing.T) {
	app, _ := testApp(t, seedItems()...)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Doomscrolling")
}

func TestRootCmd_InteractiveRunsScreen(t *testing.T) {
	app, client := testApp(t, seedItems()...)
	app.IsInteractive = func() bool { return true }
	var got tea.Model
	app.RunProgram = func(m tea.Model) error {
		got = m
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)
	require.IsType(t, &screenModel{}, got)
	assert.Equal(t, 0, client.count("list"), "the screen fetches on Init, not the command")
}

func TestTUICmd(t *testing.T) {
	app, _ := testApp(t)
	ran := false
	app.RunProgram = func(tea.Model) error {
		ran = true
		return nil
	}

	_, err := executeCmd(t, app, "tui")
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestTUICmd_WritesLogsToFile(t *testing.T) {
	prevSlog := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prevSlog)
		log.SetOutput(os.Stderr)
	})

	app, _ := testApp(t)
	app.LogFile = filepath.Join(t.TempDir(), "nested", "yaranai.log")
	var logOut bool
	app.Connect = func(s Settings) error {
		logOut = s.Log != nil
		return nil
	}
	app.RunProgram = func(tea.Model) error {
		slog.Info("screen started")
		return nil
	}

	_, err := executeCmd(t, app, "tui")
	require.NoError(t, err)
	require.NoError(t, app.Close())

	assert.True(t, logOut)
	data, err := os.ReadFile(app.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "screen started")
}

func TestRootCmd_FlagsReachConnect(t *testing.T) {
	app, _ := testApp(t)
	var got Settings
	app.Connect = func(s Settings) error {
		got = s
		return nil
	}

	_, err := executeCmd(t, app, "list", "--platform", "android", "--api-url", "http://example.test/api")
	require.NoError(t, err)
	assert.Equal(t, "android", got.Platform)
	assert.Equal(t, "http://example.test/api", got.APIURL)
	assert.Nil(t, got.Log)
}

func TestRootCmd_LogCallsGoToStderr(t *testing.T) {
	prevSlog := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prevSlog) })

	app, _ := testApp(t)
	app.LogCalls = true
	var got Settings
	app.Connect = func(s Settings) error {
		got = s
		return nil
	}

	_, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.NotNil(t, got.Log)
}

func TestRootCmd_ConnectErrorStopsCommand(t *testing.T) {
	app, client := testApp(t)
	app.Connect = func(Settings) error { return assert.AnError }

	_, err := executeCmd(t, app, "list")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, client.count("list"))
}

// ── add ──────────────────────────────────────────────────────────────────────

func TestAddCmd(t *testing.T) {
	app, client := testApp(t)

	out, err := executeCmd(t, app, "add", "--title", "Gaming", "--description", "weeknights")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Gaming")

	p := client.lastPayload()
	assert.Equal(t, "Gaming", p.Title)
	require.NotNil(t, p.Description)
	assert.Equal(t, "weeknights", *p.Description)
}

func TestAddCmd_BlankTitle(t *testing.T) {
	app, client := testApp(t)

	_, err := executeCmd(t, app, "add", "--title", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
	assert.Equal(t, 0, client.count("create"))
}

func TestAddCmd_Failure(t *testing.T) {
	app, client := testApp(t)
	client.failWith("create")

	_, err := executeCmd(t, app, "add", "--title", "Gaming")
	assert.Error(t, err)
}

// ── edit ─────────────────────────────────────────────────────────────────────

func TestEditCmd(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	out, err := executeCmd(t, app, "edit", "7", "--title", "Midnight snacks")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")
	assert.Contains(t, out, "Midnight snacks")
	assert.Contains(t, out, "saves 2h/day")

	p := client.lastPayload()
	assert.Equal(t, "Midnight snacks", p.Title)
	assert.Nil(t, p.Description)
}

func TestEditCmd_KeepsUnspecifiedDescription(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	_, err := executeCmd(t, app, "edit", "3", "--title", "Scrolling")
	require.NoError(t, err)
	p := client.lastPayload()
	require.NotNil(t, p.Description)
	assert.Equal(t, "before bed", *p.Description)
}

func TestEditCmd_ClearDescription(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	_, err := executeCmd(t, app, "edit", "3", "--description", "")
	require.NoError(t, err)
	assert.Nil(t, client.lastPayload().Description)
}

func TestEditCmd_Unchanged(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	out, err := executeCmd(t, app, "edit", "3", "--title", "Doomscrolling")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to change.")
	assert.Equal(t, 0, client.count("update"))
}

func TestEditCmd_BlankTitle(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	_, err := executeCmd(t, app, "edit", "3", "--title", " ")
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Equal(t, 0, client.count("update"))
}

func TestEditCmd_BadID(t *testing.T) {
	app, _ := testApp(t, seedItems()...)

	_, err := executeCmd(t, app, "edit", "abc", "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid item ID")

	_, err = executeCmd(t, app, "edit", "99", "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// ── delete ───────────────────────────────────────────────────────────────────

func TestDeleteCmd(t *testing.T) {
	app, client := testApp(t, seedItems()...)

	out, err := executeCmd(t, app, "delete", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted #7")
	require.Len(t, client.snapshot(), 1)
	assert.Equal(t, int64(3), client.snapshot()[0].ID)
}

func TestDeleteCmd_Failure(t *testing.T) {
	app, client := testApp(t, seedItems()...)
	client.failWith("delete")

	_, err := executeCmd(t, app, "rm", "7")
	assert.Error(t, err)
	assert.Len(t, client.snapshot(), 2)
}

func TestDeleteCmd_BadID(t *testing.T) {
	app, client := testApp(t)

	_, err := executeCmd(t, app, "delete", "0")
	assert.Error(t, err)
	assert.Equal(t, 0, client.count("delete"))
}

// ── income ───────────────────────────────────────────────────────────────────

func TestIncomeCmd(t *testing.T) {
	app, client := testApp(t)
	client.rate = 1875.5

	out, err := executeCmd(t, app, "income", "--type", "monthly", "--amount", "300,000")
	require.NoError(t, err)
	assert.Contains(t, out, "Your hourly wage")
	assert.Contains(t, out, "1,875円")
	assert.Contains(t, out, "Monthly 300,000")

	require.Len(t, client.incomes, 1)
	assert.Equal(t, domain.IncomeSetting{IncomeType: domain.IncomeMonthly, Amount: 300000}, client.incomes[0])
}

func TestIncomeCmd_DefaultsToHourly(t *testing.T) {
	app, client := testApp(t)

	_, err := executeCmd(t, app, "income", "--amount", "1500")
	require.NoError(t, err)
	require.Len(t, client.incomes, 1)
	assert.Equal(t, domain.IncomeHourly, client.incomes[0].IncomeType)
}

func TestIncomeCmd_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "negative", args: []string{"--amount=-5"}, wantErr: domain.ErrInvalidAmount},
		{name: "not a number", args: []string{"--amount", "abc"}, wantErr: domain.ErrInvalidAmount},
		{name: "bad type", args: []string{"--type", "weekly", "--amount", "10"}, wantErr: domain.ErrInvalidIncomeType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, client := testApp(t)
			_, err := executeCmd(t, app, append([]string{"income"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, client.count("income"))
		})
	}
}

func TestIncomeCmd_MissingAmount(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "income", "--type", "annual")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--amount is required")
}

func TestIncomeCmd_Failure(t *testing.T) {
	app, client := testApp(t)
	client.failWith("income")

	_, err := executeCmd(t, app, "income", "--amount", "1500")
	assert.Error(t, err)
}
