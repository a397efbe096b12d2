// Package settings holds the session-only preferences of the settings page.
// Nothing here is persisted; a restart brings back the defaults.
package settings

// Preferences are independent switches
type Preferences struct {
	EmailNotifications bool
	DarkMode           bool
}

// Defaults returns the initial switch positions
func Defaults() Preferences {
	return Preferences{EmailNotifications: true}
}

// ToggleEmailNotifications flips the notification switch only
func (p *Preferences) ToggleEmailNotifications() bool {
	p.EmailNotifications = !p.EmailNotifications
	return p.EmailNotifications
}

// ToggleDarkMode flips the appearance switch only. It does not touch the
// shell theme.
func (p *Preferences) ToggleDarkMode() bool {
	p.DarkMode = !p.DarkMode
	return p.DarkMode
}

// Account is the account form draft
type Account struct {
	Name  string
	Email string
}

// Save acknowledges the form. There is no validation and no backend.
func (a Account) Save() string {
	return "Your account details have been saved."
}
