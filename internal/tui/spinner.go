package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spinner represents a loading spinner
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// pendingIndicator renders the "assistant is thinking" line under the transcript
func pendingIndicator(s *Spinner, styles Styles, outstanding string) string {
	spin := lipgloss.NewStyle().Foreground(styles.Palette.Accent).Render(s.View())
	return fmt.Sprintf("%s %s", spin, styles.Muted.Render(outstanding))
}

// renderProgressBar draws a bar for progress in 0-100
func renderProgressBar(progress float64, width int, styles Styles) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if width < 1 {
		width = 1
	}

	filled := int(float64(width) * progress / 100)
	empty := width - filled

	barStyle := lipgloss.NewStyle().Foreground(styles.Palette.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Palette.Subtle)

	return barStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// renderBar draws a horizontal chart bar scaled against max. Negative
// values are drawn with a different glyph so losses stay visible.
func renderBar(value, max int64, width int, color lipgloss.Color) string {
	if max <= 0 || width < 1 {
		return ""
	}
	glyph := "█"
	if value < 0 {
		value = -value
		glyph = "▒"
	}
	n := int(float64(width) * float64(value) / float64(max))
	if n == 0 && value > 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(glyph, n))
}
