package cli

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
	"github.com/yaranai/yaranai/internal/service"
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
)

type formField int

const (
	formTitle formField = iota
	formDescription
)

// screenKeys are the bindings active while the list has focus.
type screenKeys struct {
	Up, Down, Add, Edit, Delete, Income, Refresh, Quit key.Binding
}

func newScreenKeys() screenKeys {
	return screenKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:     key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Income:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "income")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k screenKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Income, k.Refresh, k.Quit}
}

// screenModel is the single screen of the app: hourly wage header, the
// new-item form and the item list.
type screenModel struct {
	items  service.ItemService
	income service.IncomeService
	logger *slog.Logger

	list       []domain.Item
	rows       map[int64]*itemRow
	cursor     int
	loading    bool
	deletingID *int64
	updatingID *int64

	titleInput textinput.Model
	descInput  textinput.Model
	formField  formField
	focus      focusArea

	modal        incomeModal
	hourlyRate   *float64
	incomeType   domain.IncomeType
	incomeAmount string

	keys          screenKeys
	spinner       spinner.Model
	autosaveDelay time.Duration
	width         int
	height        int
	quitting      bool
}

// screenOption configures a screenModel.
type screenOption func(*screenModel)

// withAutosaveDelay overrides the row debounce window.
func withAutosaveDelay(d time.Duration) screenOption {
	return func(m *screenModel) { m.autosaveDelay = d }
}

// withLogger sets the logger used for failures that are not shown inline.
func withLogger(l *slog.Logger) screenOption {
	return func(m *screenModel) { m.logger = l }
}

func newScreenModel(items service.ItemService, income service.IncomeService, opts ...screenOption) *screenModel {
	title := textinput.New()
	title.Placeholder = "What do you want to stop doing?"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	m := &screenModel{
		items:         items,
		income:        income,
		logger:        slog.Default(),
		rows:          make(map[int64]*itemRow),
		loading:       true,
		titleInput:    title,
		descInput:     desc,
		modal:         newIncomeModal(),
		incomeType:    domain.IncomeHourly,
		keys:          newScreenKeys(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		autosaveDelay: defaultAutosaveDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *screenModel) Init() tea.Cmd {
	return m.fetchItems()
}

// ── Service calls ────────────────────────────────────────────────────────────

func (m *screenModel) fetchItems() tea.Cmd {
	m.loading = true
	svc := m.items
	return func() tea.Msg {
		items, err := svc.List(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m *screenModel) handleAdd() tea.Cmd {
	title, desc := m.titleInput.Value(), m.descInput.Value()
	if strings.TrimSpace(title) == "" {
		return nil
	}
	svc := m.items
	return func() tea.Msg {
		return itemAddedMsg{err: svc.Add(context.Background(), title, desc)}
	}
}

func (m *screenModel) handleDelete(id int64) tea.Cmd {
	m.deletingID = &id
	svc := m.items
	del := func() tea.Msg {
		return itemDeletedMsg{id: id, err: svc.Delete(context.Background(), id)}
	}
	return tea.Batch(del, m.spinner.Tick)
}

func (m *screenModel) handleUpdate(id int64, payload domain.ItemPayload) tea.Cmd {
	m.updatingID = &id
	svc := m.items
	update := func() tea.Msg {
		item, err := svc.Update(context.Background(), id, payload)
		return itemUpdatedMsg{id: id, item: item, err: err}
	}
	return tea.Batch(update, m.spinner.Tick)
}

func (m *screenModel) handleIncomeSubmit(t domain.IncomeType, amount string) tea.Cmd {
	svc := m.income
	submit := func() tea.Msg {
		rate, err := svc.SetIncome(context.Background(), t, amount)
		return incomeSavedMsg{incomeType: t, amount: amount, rate: rate, err: err}
	}
	return tea.Batch(submit, m.spinner.Tick)
}

// ── Update ───────────────────────────────────────────────────────────────────

func (m *screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("fetch items failed", "error", msg.err)
			return m, nil
		}
		m.setList(msg.items)
		return m, nil

	case itemAddedMsg:
		if msg.err != nil {
			m.logger.Error("add item failed", "error", msg.err)
			return m, nil
		}
		m.titleInput.Reset()
		m.descInput.Reset()
		return m, m.fetchItems()

	case itemDeletedMsg:
		m.deletingID = nil
		if msg.err != nil {
			m.logger.Error("delete item failed", "item_id", msg.id, "error", msg.err)
			return m, nil
		}
		m.setList(domain.RemoveItem(m.list, msg.id))
		return m, nil

	case rowIdleMsg:
		if r, ok := m.rows[msg.id]; ok {
			return m, r.handleIdle(msg)
		}
		return m, nil

	case rowSaveMsg:
		return m, m.handleUpdate(msg.id, msg.payload)

	case itemUpdatedMsg:
		m.updatingID = nil
		if msg.err != nil {
			m.logger.Error("update item failed", "item_id", msg.id, "error", msg.err)
		} else {
			m.setList(domain.ReplaceItem(m.list, msg.id, msg.item))
		}
		if r, ok := m.rows[msg.id]; ok {
			r.saveFinished(msg.err)
		}
		return m, nil

	case incomeSubmitMsg:
		return m, m.handleIncomeSubmit(msg.incomeType, msg.amount)

	case incomeSavedMsg:
		if msg.err != nil {
			m.logger.Error("save income failed", "income_type", msg.incomeType, "error", msg.err)
			return m, m.modal.finish(msg.err)
		}
		rate := msg.rate
		m.hourlyRate = &rate
		m.incomeType = msg.incomeType
		m.incomeAmount = msg.amount
		m.modal.close()
		return m, m.modal.finish(nil)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

// busy reports whether any request with a visible indicator is in flight.
func (m *screenModel) busy() bool {
	if m.deletingID != nil || m.updatingID != nil || m.modal.submitting {
		return true
	}
	for _, r := range m.rows {
		if r.saving {
			return true
		}
	}
	return false
}

func (m *screenModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	if m.modal.visible {
		return m.modal.handleKey(msg)
	}
	if r := m.focusedRow(); r != nil {
		return r.handleKey(msg)
	}
	if m.focus == focusForm {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *screenModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.blurForm()
		return nil
	case "tab", "shift+tab":
		if m.formField == formTitle {
			return m.focusFormField(formDescription)
		}
		return m.focusFormField(formTitle)
	case "enter":
		return m.handleAdd()
	}

	var cmd tea.Cmd
	if m.formField == formTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return cmd
}

func (m *screenModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.focus = focusForm
		return m.focusFormField(formTitle)
	case key.Matches(msg, m.keys.Edit):
		if r := m.cursorRow(); r != nil {
			return r.startEdit()
		}
	case key.Matches(msg, m.keys.Delete):
		// An editing row draws no delete control, so it takes no delete.
		if r := m.cursorRow(); r != nil && !r.editing {
			id := r.item.ID
			btn := deleteButton{loading: m.isDeleting(id)}
			return btn.press(func() tea.Cmd { return m.handleDelete(id) })
		}
	case key.Matches(msg, m.keys.Income):
		return m.modal.open(m.incomeType, m.incomeAmount)
	case key.Matches(msg, m.keys.Refresh):
		return m.fetchItems()
	}
	return nil
}

func (m *screenModel) focusFormField(f formField) tea.Cmd {
	m.formField = f
	if f == formTitle {
		m.descInput.Blur()
		return m.titleInput.Focus()
	}
	m.titleInput.Blur()
	return m.descInput.Focus()
}

func (m *screenModel) blurForm() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.focus = focusList
}

func (m *screenModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3+len(m.rows))
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	m.descInput, cmd = m.descInput.Update(msg)
	cmds = append(cmds, cmd)
	m.modal.input, cmd = m.modal.input.Update(msg)
	cmds = append(cmds, cmd)
	for _, r := range m.rows {
		if r.editing {
			cmds = append(cmds, r.updateInputs(msg))
		}
	}
	return tea.Batch(cmds...)
}

// setList replaces the items and rebuilds rows keyed by id, keeping the
// edit state of rows whose item survived.
func (m *screenModel) setList(items []domain.Item) {
	m.list = items
	rows := make(map[int64]*itemRow, len(items))
	for _, it := range items {
		if r, ok := m.rows[it.ID]; ok {
			r.setItem(it)
			rows[it.ID] = r
			continue
		}
		rows[it.ID] = newItemRow(it, m.autosaveDelay)
	}
	m.rows = rows
	if m.cursor >= len(m.list) {
		m.cursor = max(len(m.list)-1, 0)
	}
}

func (m *screenModel) cursorRow() *itemRow {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return nil
	}
	return m.rows[m.list[m.cursor].ID]
}

func (m *screenModel) focusedRow() *itemRow {
	for _, r := range m.rows {
		if r.focused() {
			return r
		}
	}
	return nil
}

func (m *screenModel) isDeleting(id int64) bool {
	return m.deletingID != nil && *m.deletingID == id
}

func (m *screenModel) isUpdating(id int64) bool {
	return m.updatingID != nil && *m.updatingID == id
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m *screenModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if m.modal.visible {
		sections = append(sections, m.modal.View(m.spinner.View()))
	} else {
		sections = append(sections, m.renderForm(), m.renderList())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")
	if m.height > 0 {
		if lines := strings.Count(result, "\n") + 1; lines < m.height {
			result += strings.Repeat("\n", m.height-lines)
		}
	}
	return result
}

func (m *screenModel) separator() string {
	return formatter.Dim(strings.Repeat("─", max(m.width, 20)))
}

func (m *screenModel) renderHeader() string {
	title := formatter.StyleHeader.Render("Yaranai")
	wage := formatter.Dim("Your hourly wage ") +
		formatter.StyleWage.Render(formatter.HourlyRate(m.hourlyRate)) +
		formatter.Dim(" ✎")

	gap := "  "
	if m.width > 0 {
		if w := m.width - lipgloss.Width(title) - lipgloss.Width(wage); w > 2 {
			gap = strings.Repeat(" ", w)
		}
	}
	return title + gap + wage + "\n" + m.separator()
}

func (m *screenModel) renderForm() string {
	label := formatter.Dim("New item")
	if m.focus == focusForm {
		label = formatter.StyleGreen.Render("New item")
	}
	return label + "\n" +
		"  " + m.titleInput.View() + "\n" +
		"  " + m.descInput.View() + "\n" +
		m.separator()
}

func (m *screenModel) renderList() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if len(m.list) == 0 {
		return "\n  " + formatter.Dim(formatter.EmptyListMessage)
	}

	frame := m.spinner.View()
	blocks := make([]string, 0, len(m.list))
	for i, it := range m.list {
		r, ok := m.rows[it.ID]
		if !ok {
			continue
		}
		blocks = append(blocks, r.View(rowView{
			selected: i == m.cursor && m.focus == focusList,
			deleting: m.isDeleting(it.ID),
			updating: m.isUpdating(it.ID),
			spinner:  frame,
			rate:     m.hourlyRate,
		}))
	}
	return "\n" + strings.Join(blocks, "\n\n")
}

func (m *screenModel) renderStatusBar() string {
	var hints []string
	switch {
	case m.modal.visible:
		hints = append(hints, formatter.Dim("esc: close"))
	case m.focusedRow() != nil:
		hints = append(hints, formatter.Dim("tab: next field"), formatter.Dim("esc: done"))
	case m.focus == focusForm:
		hints = append(hints, formatter.Dim("enter: add"), formatter.Dim("tab: next field"), formatter.Dim("esc: back"))
	default:
		for _, b := range m.keys.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	return m.separator() + "\n" + strings.Join(hints, "  ")
}
