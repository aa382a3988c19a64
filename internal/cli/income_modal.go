package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
)

const (
	msgAmountRequired = "Please enter an amount."
	msgSaveFailed     = "Failed to save. Please try again."
	msgAmountFull     = "Amounts are limited to 15 digits."
)

// maxAmountDigits counts digits of the raw amount, not grouping commas.
// Larger integers no longer survive the trip through float64.
const maxAmountDigits = 15

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(formatter.ColorHeader).
	Padding(1, 2)

// incomeModal edits the income setting that the hourly rate is derived
// from. The amount input only ever holds digits, one dot and grouping
// commas.
type incomeModal struct {
	visible    bool
	incomeType domain.IncomeType
	amountRaw  string
	input      textinput.Model
	submitting bool
	err        string
	// full is set when the last keystroke was dropped for exceeding
	// maxAmountDigits.
	full bool
}

func newIncomeModal() incomeModal {
	in := textinput.New()
	in.Prompt = "¥ "
	in.Placeholder = "0"
	in.CharLimit = 0
	return incomeModal{incomeType: domain.IncomeHourly, input: in}
}

// open shows the modal initialised from the last saved values.
func (m *incomeModal) open(incomeType domain.IncomeType, amount string) tea.Cmd {
	m.visible = true
	m.submitting = false
	m.err = ""
	m.amountRaw = ""
	m.incomeType = incomeType
	if !m.incomeType.Valid() {
		m.incomeType = domain.IncomeHourly
	}
	m.setAmount(amount)
	return m.input.Focus()
}

func (m *incomeModal) close() {
	m.visible = false
	m.input.Blur()
}

// setAmount stores the sanitised value and shows it with grouping commas.
// Input that would exceed maxAmountDigits is dropped and the previous
// amount kept.
func (m *incomeModal) setAmount(text string) {
	raw := domain.SanitizeAmount(text)
	m.full = countDigits(raw) > maxAmountDigits
	if !m.full {
		m.amountRaw = raw
	}
	m.input.SetValue(domain.FormatAmountDisplay(m.amountRaw))
	m.input.CursorEnd()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// amountDisplay is what the input currently shows.
func (m *incomeModal) amountDisplay() string {
	return m.input.Value()
}

func (m *incomeModal) cycleType(step int) {
	types := domain.IncomeTypes
	for i, t := range types {
		if t == m.incomeType {
			m.incomeType = types[(i+step+len(types))%len(types)]
			return
		}
	}
	m.incomeType = domain.IncomeHourly
}

func (m *incomeModal) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.close()
		return nil
	}
	if m.submitting {
		return nil
	}

	switch msg.String() {
	case "tab", "right":
		m.cycleType(1)
		return nil
	case "shift+tab", "left":
		m.cycleType(-1)
		return nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.setAmount(m.input.Value())
	return cmd
}

func (m *incomeModal) submit() tea.Cmd {
	if strings.TrimSpace(m.amountRaw) == "" {
		m.err = msgAmountRequired
		return nil
	}
	m.submitting = true
	m.err = ""
	m.input.Blur()

	incomeType, amount := m.incomeType, m.amountRaw
	return func() tea.Msg {
		return incomeSubmitMsg{incomeType: incomeType, amount: amount}
	}
}

// finish re-enables the controls once the submit call has returned.
func (m *incomeModal) finish(err error) tea.Cmd {
	m.submitting = false
	if err != nil {
		m.err = msgSaveFailed
	}
	if !m.visible {
		return nil
	}
	return m.input.Focus()
}

func (m *incomeModal) View(spinnerFrame string) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Income settings"))
	b.WriteString("\n\n")

	opts := make([]string, 0, len(domain.IncomeTypes))
	for _, t := range domain.IncomeTypes {
		if t == m.incomeType {
			opts = append(opts, formatter.StyleWage.Render(t.Label()))
		} else {
			opts = append(opts, formatter.Dim(" "+t.Label()+" "))
		}
	}
	b.WriteString(strings.Join(opts, " "))
	b.WriteString("\n\n")

	b.WriteString(formatter.Bold(m.incomeType.AmountLabel()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.full {
		b.WriteString(formatter.StyleYellow.Render(msgAmountFull))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(formatter.StyleYellow.Render(spinnerFrame + " Saving..."))
	} else {
		b.WriteString(formatter.Dim("tab: type  enter: save  esc: close"))
	}
	return modalStyle.Render(b.String())
}
