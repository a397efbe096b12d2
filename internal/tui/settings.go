package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/elevate/internal/settings"
	"go.uber.org/zap"
)

const (
	settingsAccount = iota
	settingsNotifications
	settingsAppearance
)

var settingsTabs = []string{"Account", "Notifications", "Appearance"}

type settingsPage struct {
	env *Env

	prefs settings.Preferences
	tab   int
	name  textinput.Model
	email textinput.Model
	field int

	width int
}

func newSettingsPage(env *Env) *settingsPage {
	name := textinput.New()
	name.Prompt = "Name  "
	name.Placeholder = "John Doe"
	name.Focus()

	email := textinput.New()
	email.Prompt = "Email "
	email.Placeholder = "john@example.com"

	return &settingsPage{
		env:   env,
		prefs: settings.Defaults(),
		name:  name,
		email: email,
	}
}

func (p *settingsPage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *settingsPage) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p.updateInputs(msg)
	}

	switch km.String() {
	case "tab":
		p.tab = (p.tab + 1) % len(settingsTabs)
		return nil
	case "shift+tab":
		p.tab = (p.tab + len(settingsTabs) - 1) % len(settingsTabs)
		return nil
	}

	switch p.tab {
	case settingsAccount:
		switch km.String() {
		case "up", "down":
			p.field = 1 - p.field
			if p.field == 0 {
				p.email.Blur()
				return p.name.Focus()
			}
			p.name.Blur()
			return p.email.Focus()
		case "ctrl+s", "enter":
			ack := settings.Account{Name: p.name.Value(), Email: p.email.Value()}.Save()
			p.env.Logger.Info("Account saved")
			p.env.Notifier.Notify("Settings", ack)
			return nil
		}
		return p.updateInputs(km)

	case settingsNotifications:
		if km.String() == " " || km.String() == "enter" {
			on := p.prefs.ToggleEmailNotifications()
			p.env.Logger.Debug("Email notifications toggled", zap.Bool("on", on))
		}

	case settingsAppearance:
		if km.String() == " " || km.String() == "enter" {
			on := p.prefs.ToggleDarkMode()
			p.env.Logger.Debug("Dark mode switch toggled", zap.Bool("on", on))
		}
	}
	return nil
}

func (p *settingsPage) updateInputs(msg tea.Msg) tea.Cmd {
	if p.tab != settingsAccount {
		return nil
	}
	var cmd tea.Cmd
	if p.field == 0 {
		p.name, cmd = p.name.Update(msg)
	} else {
		p.email, cmd = p.email.Update(msg)
	}
	return cmd
}

func (p *settingsPage) View() string {
	styles := p.env.Styles()
	width := max(p.width-2, 30)

	var card string
	switch p.tab {
	case settingsAccount:
		card = lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render("Account Information"),
			styles.Muted.Render("Update your account details here."),
			"",
			p.name.View(),
			p.email.View(),
			"",
			styles.Muted.Render("ctrl+s: Save Changes"),
		)
	case settingsNotifications:
		card = lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render("Notification Preferences"),
			styles.Muted.Render("Manage how you receive notifications."),
			"",
			switchRow("Email Notifications", styles.Switch(p.prefs.EmailNotifications), width-4),
		)
	case settingsAppearance:
		card = lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render("Appearance Settings"),
			styles.Muted.Render("Customize the look of your dashboard."),
			"",
			switchRow("Dark Mode", styles.Switch(p.prefs.DarkMode), width-4),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Settings"),
		styles.Tabs(settingsTabs, p.tab),
		styles.Card.Width(width).Render(card),
	)
}

func switchRow(label, sw string, width int) string {
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(sw), 1)
	return label + lipgloss.NewStyle().Width(gap).Render("") + sw
}

func (p *settingsPage) SetSize(width, height int) {
	p.width = width
	p.name.Width = max(width-14, 10)
	p.email.Width = max(width-14, 10)
}

func (p *settingsPage) Modal() bool {
	return false
}

func (p *settingsPage) Help() []key.Binding {
	bindings := []key.Binding{binding([]string{"tab"}, "tab", "section")}
	if p.tab == settingsAccount {
		return append(bindings,
			binding([]string{"up", "down"}, "↑/↓", "field"),
			binding([]string{"ctrl+s"}, "ctrl+s", "save"))
	}
	return append(bindings, binding([]string{" "}, "space", "toggle"))
}

func (p *settingsPage) Close() {}
