// Package theme provides the light/dark preference shared by the whole shell.
// Components receive a Provider explicitly and subscribe to changes; nothing
// looks the theme up from ambient state.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the active color scheme
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Toggle returns the opposite mode
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode resolves "light", "dark" or "auto". Auto asks detectDark, which
// may be nil (treated as light).
func ParseMode(s string, detectDark func() bool) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	case "", "auto":
		if detectDark != nil && detectDark() {
			return Dark, nil
		}
		return Light, nil
	default:
		return Light, fmt.Errorf("unknown theme %q", s)
	}
}

// Provider supplies the current theme and lets callers change it
type Provider interface {
	Theme() Mode
	SetTheme(Mode)
	// Subscribe returns a channel that receives the latest mode after each
	// change, and a func that ends the subscription.
	Subscribe() (<-chan Mode, func())
}

// Store is the process-wide Provider
type Store struct {
	mu     sync.RWMutex
	mode   Mode
	nextID int
	subs   map[int]chan Mode
}

// NewStore creates a store holding initial
func NewStore(initial Mode) *Store {
	if initial != Dark {
		initial = Light
	}
	return &Store{
		mode: initial,
		subs: make(map[int]chan Mode),
	}
}

// Theme returns the current mode
func (s *Store) Theme() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetTheme updates the mode and notifies subscribers. Setting the current
// mode again is a no-op.
func (s *Store) SetTheme(m Mode) {
	if m != Dark {
		m = Light
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == m {
		return
	}
	s.mode = m
	for _, ch := range s.subs {
		// Keep only the newest value for slow readers
		select {
		case <-ch:
		default:
		}
		ch <- m
	}
}

// Subscribe registers a listener
func (s *Store) Subscribe() (<-chan Mode, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Mode, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// Palette is the set of colors a mode renders with
type Palette struct {
	Background  lipgloss.Color
	Foreground  lipgloss.Color
	Primary     lipgloss.Color
	Accent      lipgloss.Color
	Muted       lipgloss.Color
	Subtle      lipgloss.Color
	Border      lipgloss.Color
	Card        lipgloss.Color
	Destructive lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Chart       [3]lipgloss.Color
}

// PaletteFor returns the palette of m
func PaletteFor(m Mode) Palette {
	if m == Dark {
		return Palette{
			Background:  lipgloss.Color("#141d2b"),
			Foreground:  lipgloss.Color("#f2f2f2"),
			Primary:     lipgloss.Color("#8884d8"),
			Accent:      lipgloss.Color("212"),
			Muted:       lipgloss.Color("245"),
			Subtle:      lipgloss.Color("238"),
			Border:      lipgloss.Color("#2a3850"),
			Card:        lipgloss.Color("#1a2536"),
			Destructive: lipgloss.Color("#e53935"),
			Success:     lipgloss.Color("#8BC34A"),
			Warning:     lipgloss.Color("#FFC107"),
			Chart:       [3]lipgloss.Color{"#8884d8", "#82ca9d", "#ffc658"},
		}
	}
	return Palette{
		Background:  lipgloss.Color("#f4f5f6"),
		Foreground:  lipgloss.Color("#101F38"),
		Primary:     lipgloss.Color("63"),
		Accent:      lipgloss.Color("205"),
		Muted:       lipgloss.Color("241"),
		Subtle:      lipgloss.Color("250"),
		Border:      lipgloss.Color("#dce0e5"),
		Card:        lipgloss.Color("#ffffff"),
		Destructive: lipgloss.Color("#c62828"),
		Success:     lipgloss.Color("#2e7d32"),
		Warning:     lipgloss.Color("#f57f17"),
		Chart:       [3]lipgloss.Color{"#5c54c4", "#2e8b57", "#c08a00"},
	}
}
