package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2*time.Second, cfg.Chat.ReplyDelay)
	assert.Equal(t, "drop", cfg.Chat.LateReply)
	assert.Equal(t, "chat", cfg.StartPage)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
theme: dark
start_page: projects
chat:
  reply_delay: 250ms
  late_reply: deliver
log:
  file: /tmp/elevate.log
  level: debug
sidebar:
  collapsed: true
`)

	cfg, found, err := Load(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "projects", cfg.StartPage)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, "deliver", cfg.Chat.LateReply)
	assert.Equal(t, DefaultReplyText, cfg.Chat.ReplyText, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Sidebar.Collapsed)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"theme", "theme: sepia\n"},
		{"late reply", "chat:\n  late_reply: queue\n"},
		{"negative delay", "chat:\n  reply_delay: -1s\n"},
		{"level", "log:\n  level: trace\n"},
		{"empty reply", "chat:\n  reply_text: \"\"\n"},
		{"yaml", "theme: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, found, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
			assert.False(t, found)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
	assert.Equal(t, "elevate", filepath.Base(filepath.Dir(DefaultPath())))
}
