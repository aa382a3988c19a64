package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
)

// yaranaiHuhTheme returns a huh theme using the formatter palette.
func yaranaiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// newAddItemForm prompts for the fields of a new item when add runs
// without --title on a terminal.
func newAddItemForm(title, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What will you stop doing?").
				Value(title).
				Validate(func(s string) error {
					_, err := domain.ValidateTitle(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(description),
		),
	).WithTheme(yaranaiHuhTheme()).WithShowHelp(false)
}

// incomeTypeOptions lists the income kinds in display order.
func incomeTypeOptions() []huh.Option[domain.IncomeType] {
	opts := make([]huh.Option[domain.IncomeType], 0, len(domain.IncomeTypes))
	for _, t := range domain.IncomeTypes {
		opts = append(opts, huh.NewOption(t.Label(), t))
	}
	return opts
}

// newIncomeForm prompts for the income type and amount when income runs
// without --amount on a terminal.
func newIncomeForm(incomeType *domain.IncomeType, amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.IncomeType]().
				Title("Income type").
				Options(incomeTypeOptions()...).
				Value(incomeType),
			huh.NewInput().
				Title("Amount").
				Description("per year, per month or per hour, matching the type").
				Placeholder("5,000,000").
				Value(amount).
				Validate(func(s string) error {
					_, err := domain.ParseAmount(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
					return err
				}),
		),
	).WithTheme(yaranaiHuhTheme()).WithShowHelp(false)
}
