package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// shellKeys are handled by the shell before the active page sees a key
type shellKeys struct {
	Quit        key.Binding
	ToggleTheme key.Binding
	Focus       key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Sidebar     key.Binding
	Jump        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	QuitNav     key.Binding
	ThemeNav    key.Binding
	Retry       key.Binding
}

func newShellKeys() shellKeys {
	return shellKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Focus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l", "tab"),
			key.WithHelp("enter", "open"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "sidebar"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n/p", "next/prev page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev page"),
		),
		QuitNav: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ThemeNav: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "try again"),
		),
	}
}

// navHelp is shown while the sidebar has focus
type navHelp struct{ k shellKeys }

func (h navHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Open, h.k.Jump, h.k.NextPage, h.k.Sidebar, h.k.ThemeNav, h.k.QuitNav}
}

func (h navHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// pageHelp joins the active page's bindings with the global ones
type pageHelp struct {
	k    shellKeys
	page []key.Binding
}

func (h pageHelp) ShortHelp() []key.Binding {
	out := append([]key.Binding(nil), h.page...)
	return append(out, h.k.Focus, h.k.ToggleTheme, h.k.Quit)
}

func (h pageHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// helpful is implemented by pages that advertise their own bindings
type helpful interface {
	Help() []key.Binding
}

func binding(keys []string, helpKey, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}
