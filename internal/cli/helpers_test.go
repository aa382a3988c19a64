package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/domain"
	"github.com/yaranai/yaranai/internal/service"
	"github.com/yaranai/yaranai/internal/teatest"
	"github.com/yaranai/yaranai/internal/testutil"
)

// memClient is an in-memory api.Client. Calls return immediately, which
// keeps them well inside the driver's command timeout.
type memClient struct {
	mu       sync.Mutex
	items    []domain.Item
	nextID   int64
	rate     float64
	fail     map[string]error
	calls    []string
	payloads []domain.ItemPayload
	incomes  []domain.IncomeSetting
}

func newMemClient(items ...domain.Item) *memClient {
	c := &memClient{items: items, nextID: 100, rate: 1500, fail: make(map[string]error)}
	return c
}

// failWith makes op ("list", "create", "update", "delete", "income") fail.
func (c *memClient) failWith(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail[op] = fmt.Errorf("%s: %w", op, api.ErrRequestFailed)
}

func (c *memClient) record(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, op)
	return c.fail[op]
}

func (c *memClient) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call == op {
			n++
		}
	}
	return n
}

func (c *memClient) snapshot() []domain.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Item(nil), c.items...)
}

func (c *memClient) ListItems(context.Context) ([]domain.Item, error) {
	if err := c.record("list"); err != nil {
		return nil, err
	}
	return c.snapshot(), nil
}

func (c *memClient) CreateItem(_ context.Context, p domain.ItemPayload) error {
	if err := c.record("create"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	c.nextID++
	c.items = append(c.items, domain.Item{ID: c.nextID, Title: p.Title, Description: p.Description})
	return nil
}

func (c *memClient) UpdateItem(_ context.Context, id int64, p domain.ItemPayload) (domain.Item, error) {
	if err := c.record("update"); err != nil {
		return domain.Item{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	for i, it := range c.items {
		if it.ID == id {
			hours := 2.0
			c.items[i] = domain.Item{ID: id, Title: p.Title, Description: p.Description, HoursPerDay: &hours}
			return c.items[i], nil
		}
	}
	return domain.Item{}, &api.StatusError{Method: "PUT", Path: fmt.Sprintf("/yaranai-items/%d", id), Status: 404}
}

func (c *memClient) DeleteItem(_ context.Context, id int64) error {
	if err := c.record("delete"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = domain.RemoveItem(c.items, id)
	return nil
}

func (c *memClient) SetIncome(_ context.Context, s domain.IncomeSetting) (domain.IncomeResult, error) {
	if err := c.record("income"); err != nil {
		return domain.IncomeResult{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incomes = append(c.incomes, s)
	return domain.IncomeResult{HourlyRate: c.rate}, nil
}

func (c *memClient) lastPayload() domain.ItemPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payloads[len(c.payloads)-1]
}

// testApp wires an App with the real services over an in-memory client.
func testApp(t *testing.T, items ...domain.Item) (*App, *memClient) {
	t.Helper()
	client := newMemClient(items...)
	return &App{
		Items:  service.NewItemService(client),
		Income: service.NewIncomeService(client),
	}, client
}

var (
	strPtr   = testutil.StringPtr
	floatPtr = testutil.FloatPtr
)

// seedItems returns the two items most screen tests start from.
func seedItems() []domain.Item {
	return []domain.Item{
		testutil.NewTestItem("Doomscrolling",
			testutil.WithItemID(3),
			testutil.WithDescription("before bed"),
			testutil.WithHoursPerDay(1.54),
		),
		testutil.NewTestItem("Late snacks", testutil.WithItemID(7)),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ── Driver ───────────────────────────────────────────────────────────────────

// TestDriver wraps teatest.Driver with access to the screen's state.
type TestDriver struct {
	*teatest.Driver
	Logs *bytes.Buffer
}

// NewTestDriver builds the screen with a zero autosave delay so row saves
// resolve while the driver drains, then runs Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	logs := new(bytes.Buffer)
	m := newScreenModel(app.Items, app.Income,
		withAutosaveDelay(0),
		withLogger(slog.New(slog.NewTextHandler(logs, nil))),
	)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	d.DrainInit()
	return &TestDriver{Driver: d, Logs: logs}
}

func (d *TestDriver) Screen() *screenModel {
	return d.Model.(*screenModel)
}

// Row returns the row for id, failing the test if it is not listed.
func (d *TestDriver) Row(id int64) *itemRow {
	d.T.Helper()
	r, ok := d.Screen().rows[id]
	if !ok {
		d.T.Fatalf("no row for item %d", id)
	}
	return r
}

func (d *TestDriver) Titles() []string {
	list := d.Screen().list
	titles := make([]string, len(list))
	for i, it := range list {
		titles[i] = it.Title
	}
	return titles
}
