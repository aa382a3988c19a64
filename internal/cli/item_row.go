package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
)

// defaultAutosaveDelay is how long a row waits after its last blur before
// deciding that editing is over.
const defaultAutosaveDelay = 120 * time.Millisecond

type rowField int

const (
	rowFieldNone rowField = iota
	rowFieldTitle
	rowFieldDescription
)

// itemRow renders one item and owns its inline edit state. Saving happens
// once focus has left both inputs for the autosave delay.
type itemRow struct {
	item    domain.Item
	editing bool
	saving  bool

	title textinput.Model
	desc  textinput.Model
	// Input values right after loading the item. A single-line input
	// flattens newlines and tabs, so these can differ from the item.
	loadedTitle string
	loadedDesc  string
	field       rowField
	focus       focusRegion
	delay       time.Duration
}

func newItemRow(item domain.Item, delay time.Duration) *itemRow {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = 0

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 0

	r := &itemRow{item: item, title: title, desc: desc, delay: delay}
	r.resetDraft()
	return r
}

// setItem swaps in a fresh server copy. The draft follows it unless the
// user is mid-edit.
func (r *itemRow) setItem(item domain.Item) {
	r.item = item
	if !r.editing {
		r.resetDraft()
	}
}

func (r *itemRow) resetDraft() {
	r.title.SetValue(r.item.Title)
	r.desc.SetValue(r.item.DescriptionText())
	r.loadedTitle = r.title.Value()
	r.loadedDesc = r.desc.Value()
}

// draft returns the working title and description. A field the user has
// not touched yields the item's own value rather than the input's copy.
func (r *itemRow) draft() (title, desc string) {
	title, desc = r.title.Value(), r.desc.Value()
	if title == r.loadedTitle {
		title = r.item.Title
	}
	if desc == r.loadedDesc {
		desc = r.item.DescriptionText()
	}
	return title, desc
}

// focused reports whether one of the row's inputs currently has focus.
func (r *itemRow) focused() bool {
	return r.field != rowFieldNone
}

// startEdit enters edit mode with the title focused. On a row that is
// already editing but unfocused (a failed save) it refocuses the title.
func (r *itemRow) startEdit() tea.Cmd {
	if r.focused() {
		return nil
	}
	if !r.editing {
		r.editing = true
		r.resetDraft()
	}
	return r.focusField(rowFieldTitle)
}

func (r *itemRow) focusField(f rowField) tea.Cmd {
	r.field = f
	r.focus.enter()
	if f == rowFieldTitle {
		r.title.CursorEnd()
		return r.title.Focus()
	}
	r.desc.CursorEnd()
	return r.desc.Focus()
}

// blurField drops focus from the active input and schedules the idle check.
func (r *itemRow) blurField() tea.Cmd {
	if !r.focused() {
		return nil
	}
	r.title.Blur()
	r.desc.Blur()
	r.field = rowFieldNone

	id, seq := r.item.ID, r.focus.leave()
	return tea.Tick(r.delay, func(time.Time) tea.Msg {
		return rowIdleMsg{id: id, seq: seq}
	})
}

func (r *itemRow) switchField() tea.Cmd {
	next := rowFieldDescription
	if r.field == rowFieldDescription {
		next = rowFieldTitle
	}
	blur := r.blurField()
	return tea.Batch(blur, r.focusField(next))
}

func (r *itemRow) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab":
		return r.switchField()
	case "enter":
		if r.field == rowFieldTitle {
			return r.switchField()
		}
		return r.blurField()
	case "esc":
		return r.blurField()
	}

	var cmd tea.Cmd
	switch r.field {
	case rowFieldTitle:
		r.title, cmd = r.title.Update(msg)
	case rowFieldDescription:
		r.desc, cmd = r.desc.Update(msg)
	}
	return cmd
}

// updateInputs forwards non-key messages such as cursor blinks.
func (r *itemRow) updateInputs(msg tea.Msg) tea.Cmd {
	var c1, c2 tea.Cmd
	r.title, c1 = r.title.Update(msg)
	r.desc, c2 = r.desc.Update(msg)
	return tea.Batch(c1, c2)
}

// handleIdle runs the save decision when the debounce tick is still current.
func (r *itemRow) handleIdle(msg rowIdleMsg) tea.Cmd {
	if !r.focus.idle(msg.seq) {
		return nil
	}
	return r.save()
}

func (r *itemRow) save() tea.Cmd {
	if !r.editing || r.saving {
		return nil
	}
	title, desc := r.draft()
	decision := domain.DecideEdit(r.item, title, desc)
	switch decision.Outcome {
	case domain.EditRevert, domain.EditUnchanged:
		r.exitEdit()
		return nil
	}

	r.saving = true
	id, payload := r.item.ID, decision.Payload
	return func() tea.Msg {
		return rowSaveMsg{id: id, payload: payload}
	}
}

// saveFinished is called by the screen when the update call returns.
// A failed save keeps the draft so the user can retry.
func (r *itemRow) saveFinished(err error) {
	r.saving = false
	if err == nil {
		r.exitEdit()
	}
}

func (r *itemRow) exitEdit() {
	r.editing = false
	r.saving = false
	r.title.Blur()
	r.desc.Blur()
	r.field = rowFieldNone
	r.focus.reset()
	r.resetDraft()
}

// rowView carries the screen-level state a row needs to render.
type rowView struct {
	selected bool
	deleting bool
	updating bool
	spinner  string
	rate     *float64
}

func (r *itemRow) View(v rowView) string {
	cursor := "  "
	if v.selected {
		cursor = formatter.StyleGreen.Render("▸ ")
	}
	indent := "    "

	var lines []string
	if r.editing {
		lines = append(lines,
			cursor+formatter.Dim("title ")+r.title.View(),
			indent+formatter.Dim("desc  ")+r.desc.View(),
		)
		if r.saving {
			lines = append(lines, indent+formatter.StyleYellow.Render(v.spinner+" Saving..."))
		} else if !r.focused() {
			lines = append(lines, indent+formatter.Dim("enter: edit again"))
		}
	} else {
		del := deleteButton{loading: v.deleting}
		lines = append(lines, cursor+formatter.Bold(r.item.Title)+"  "+del.View(v.spinner))
		if d := r.item.DescriptionText(); d != "" {
			lines = append(lines, indent+formatter.Dim(d))
		}
	}

	if hours := formatter.HoursSaved(&r.item); hours != "" {
		caption := formatter.StyleGreen.Render(hours)
		if amount := formatter.AmountSaved(&r.item, v.rate); amount != "" {
			caption += "  " + formatter.StyleBlue.Render(amount)
		}
		lines = append(lines, indent+caption)
	}
	if v.updating && !r.saving {
		lines = append(lines, indent+formatter.StyleYellow.Render(v.spinner+" Updating..."))
	}
	return strings.Join(lines, "\n")
}
