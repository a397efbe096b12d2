package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	assert.True(t, p.EmailNotifications)
	assert.False(t, p.DarkMode)
}

func TestTogglesAreIndependent(t *testing.T) {
	p := Defaults()

	assert.False(t, p.ToggleEmailNotifications())
	assert.False(t, p.DarkMode)

	assert.True(t, p.ToggleDarkMode())
	assert.False(t, p.EmailNotifications)

	assert.True(t, p.ToggleEmailNotifications())
	assert.True(t, p.DarkMode)
}

func TestSaveIsAcknowledgmentOnly(t *testing.T) {
	a := Account{}
	assert.NotEmpty(t, a.Save())
	assert.Equal(t, Account{}, a)
}
