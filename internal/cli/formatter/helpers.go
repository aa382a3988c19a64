package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yaranai/yaranai/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders hours with at most one decimal: 2 -> "2", 1.54 -> "1.5".
func FormatHours(h float64) string {
	if h == float64(int64(h)) {
		return strconv.FormatInt(int64(h), 10)
	}
	return strconv.FormatFloat(h, 'f', 1, 64)
}

// HoursSaved returns the "saves Nh/day" caption for an item, or "" when
// the server has no estimate yet.
func HoursSaved(item *domain.Item) string {
	h, ok := item.RoundedHours()
	if !ok {
		return ""
	}
	return "saves " + FormatHours(h) + "h/day"
}

// AmountSaved returns the "≈ N円/day" caption for an item at the given
// hourly rate, or "" when either side is unknown.
func AmountSaved(item *domain.Item, rate *float64) string {
	if rate == nil {
		return ""
	}
	s, ok := item.SavingsAt(*rate)
	if !ok {
		return ""
	}
	return "≈ " + Yen(s.AmountSavedPerDay) + "/day"
}

// Truncate shortens s to max visible cells, adding an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
