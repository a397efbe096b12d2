package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// missingConfig points at a file that does not exist so the user's real
// config never leaks into a test
func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestShowProjects(t *testing.T) {
	out, err := execute(t, "show", "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Website Redesign")
	assert.Contains(t, out, "Market Expansion")
	assert.Contains(t, out, "Product Launch")
}

func TestShowProjectsByStatus(t *testing.T) {
	out, err := execute(t, "show", "projects", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Product Launch")
	assert.NotContains(t, out, "Website Redesign")

	_, err = execute(t, "show", "projects", "--status", "archived")
	assert.ErrorContains(t, err, "unknown status")
}

func TestShowArticles(t *testing.T) {
	out, err := execute(t, "show", "articles", "MARKET")
	require.NoError(t, err)
	assert.Contains(t, out, "Understanding Market Trends")
	assert.NotContains(t, out, "Financial Forecasting")

	out, err = execute(t, "show", "articles", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No articles found")
}

func TestShowAnalytics(t *testing.T) {
	out, err := execute(t, "show", "analytics")
	require.NoError(t, err)
	assert.Contains(t, out, "Financial:")
	assert.Contains(t, out, "3,490")
	assert.Contains(t, out, "+46.0%")
	assert.Contains(t, out, "1,068")
}

func TestRenderPage(t *testing.T) {
	cfg := missingConfig(t)

	out, err := execute(t, "render", "knowledge", "--config", cfg, "--theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "Search articles...")

	out, err = execute(t, "render", "unknown", "--config", cfg, "--theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "Chat with AI Consultant")
}

func TestRenderRejectsTinyFrame(t *testing.T) {
	_, err := execute(t, "render", "chat", "--config", missingConfig(t), "--width", "5")
	assert.ErrorContains(t, err, "frame too small")
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: dark
start_page: projects
chat:
  reply_delay: 5s
  late_reply: deliver
`), 0o644))

	opts := &rootOptions{}
	cmd := newRootCommand(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--reply-delay", "250ms"}))

	cfg, found, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "projects", cfg.StartPage)
	assert.Equal(t, "deliver", cfg.Chat.LateReply)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	opts := &rootOptions{}
	cmd := newRootCommand(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", missingConfig(t), "--debug"}))

	cfg, found, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "drop", cfg.Chat.LateReply)
}

func TestInvalidFlagRejected(t *testing.T) {
	_, err := execute(t, "render", "chat", "--config", missingConfig(t), "--late-reply", "later")
	assert.ErrorContains(t, err, "invalid flags")
}

func TestDebugConfig(t *testing.T) {
	out, err := execute(t, "debug-config", "--config", missingConfig(t), "--theme", "dark", "--reply-delay", "1s")
	require.NoError(t, err)
	assert.Contains(t, out, "file not found, using defaults")
	assert.Contains(t, out, "reply_delay: 1s")
	assert.Contains(t, out, "Theme: dark")
	assert.Contains(t, out, "Analytics: ok")
}
