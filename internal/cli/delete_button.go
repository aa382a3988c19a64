package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yaranai/yaranai/internal/cli/formatter"
)

const trashGlyph = "✕"

// deleteButton is the per-row delete control. While loading it shows the
// shared spinner frame and swallows presses.
type deleteButton struct {
	loading bool
}

func (b deleteButton) press(onPress func() tea.Cmd) tea.Cmd {
	if b.loading || onPress == nil {
		return nil
	}
	return onPress()
}

func (b deleteButton) View(spinnerFrame string) string {
	if b.loading {
		return formatter.StyleRed.Render(spinnerFrame)
	}
	return formatter.StyleRed.Render(trashGlyph)
}
