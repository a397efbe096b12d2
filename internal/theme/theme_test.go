package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	m, err := ParseMode("dark", light)
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	m, err = ParseMode(" Light ", dark)
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	m, err = ParseMode("auto", dark)
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	m, err = ParseMode("", nil)
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	_, err = ParseMode("solarized", nil)
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
}

func TestStoreSetTheme(t *testing.T) {
	s := NewStore(Light)
	assert.Equal(t, Light, s.Theme())

	s.SetTheme(Dark)
	assert.Equal(t, Dark, s.Theme())

	s.SetTheme("bogus")
	assert.Equal(t, Light, s.Theme())
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(Light)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetTheme(Dark)
	assert.Equal(t, Dark, <-ch)

	// Unchanged value is not republished
	s.SetTheme(Dark)
	select {
	case m := <-ch:
		t.Fatalf("unexpected notification %q", m)
	default:
	}
}

func TestStoreSubscribeKeepsLatest(t *testing.T) {
	s := NewStore(Light)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetTheme(Dark)
	s.SetTheme(Light)
	s.SetTheme(Dark)

	assert.Equal(t, Dark, <-ch)
	select {
	case m := <-ch:
		t.Fatalf("stale value %q left in channel", m)
	default:
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	s := NewStore(Light)
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Setting after unsubscribe must not panic on the closed channel
	s.SetTheme(Dark)
	assert.Equal(t, Dark, s.Theme())
}

func TestPaletteDiffersPerMode(t *testing.T) {
	assert.NotEqual(t, PaletteFor(Light).Foreground, PaletteFor(Dark).Foreground)
}
