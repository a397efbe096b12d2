package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/strrl/elevate/internal/theme"
)

type rendererKey struct {
	mode  theme.Mode
	width int
}

var (
	markdownMu        sync.Mutex
	markdownRenderers = map[rendererKey]*glamour.TermRenderer{}
)

// renderMarkdown returns glamour output for content, falling back to the
// raw text when the renderer cannot be built
func renderMarkdown(content string, mode theme.Mode, width int) string {
	renderer := markdownRenderer(mode, width)
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func markdownRenderer(mode theme.Mode, width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	key := rendererKey{mode: mode, width: width}

	markdownMu.Lock()
	defer markdownMu.Unlock()
	if r, ok := markdownRenderers[key]; ok {
		return r
	}

	style := "light"
	if mode == theme.Dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	markdownRenderers[key] = r
	return r
}
