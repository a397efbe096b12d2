package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/elevate/internal/analytics"
	"github.com/strrl/elevate/internal/catalog"
	"github.com/strrl/elevate/internal/chat"
	"github.com/strrl/elevate/internal/config"
	"github.com/strrl/elevate/internal/nav"
	"github.com/strrl/elevate/internal/theme"
	"github.com/strrl/elevate/pkg/models"
	"go.uber.org/zap"
)

// Notifier shows a short acknowledgment to the user
type Notifier interface {
	Notify(title, message string)
}

// FilePicker turns what the user typed into file metadata. Nothing is uploaded.
type FilePicker interface {
	PickFile(query string) (models.FileMeta, error)
}

// ChatOptions tune the simulated assistant
type ChatOptions struct {
	ReplyDelay time.Duration
	ReplyText  string
	LatePolicy chat.LatePolicy
}

// Env is everything a page may depend on. It is passed to each page
// explicitly when the page is mounted.
type Env struct {
	Theme     theme.Provider
	Notifier  Notifier
	Picker    FilePicker
	Logger    *zap.Logger
	Catalog   *catalog.Catalog
	Analytics *analytics.Engine // nil when the engine could not start
	Mailbox   *chat.Mailbox
	Chat      ChatOptions
	Clipboard func(string) error
	Now       func() time.Time

	stylesMu sync.Mutex
	styles   map[theme.Mode]Styles
}

// Styles returns the styles of the current theme
func (e *Env) Styles() Styles {
	mode := e.Theme.Theme()
	e.stylesMu.Lock()
	defer e.stylesMu.Unlock()
	if e.styles == nil {
		e.styles = make(map[theme.Mode]Styles)
	}
	s, ok := e.styles[mode]
	if !ok {
		s = newStyles(mode)
		e.styles[mode] = s
	}
	return s
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) copyToClipboard(text string) {
	write := e.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		e.Logger.Debug("Clipboard write failed", zap.Error(err))
		e.Notifier.Notify("Clipboard", "Clipboard unavailable")
		return
	}
	e.Notifier.Notify("Clipboard", "Copied to clipboard")
}

// withDefaults fills unset collaborators
func (e *Env) withDefaults() *Env {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Theme == nil {
		e.Theme = theme.NewStore(theme.Light)
	}
	if e.Notifier == nil {
		e.Notifier = newToastBoard()
	}
	if e.Picker == nil {
		e.Picker = StatPicker{}
	}
	if e.Catalog == nil {
		e.Catalog = catalog.MustGet()
	}
	if e.Mailbox == nil {
		e.Mailbox = &chat.Mailbox{}
	}
	if e.Chat.ReplyText == "" {
		e.Chat.ReplyText = config.DefaultReplyText
	}
	if e.Chat.LatePolicy == "" {
		e.Chat.LatePolicy = chat.DropLate
	}
	return e
}

// Page is a mounted view. A page lives from mount until Close; the shell
// builds a fresh one on every visit.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Modal pages receive esc themselves instead of yielding focus to the sidebar
	Modal() bool
	Close()
}

// Factory mounts a page
type Factory func(env *Env) Page

// DefaultRegistry maps every page to its constructor
func DefaultRegistry() map[nav.Page]Factory {
	return map[nav.Page]Factory{
		nav.Chat:      func(env *Env) Page { return newChatPage(env) },
		nav.Analytics: func(env *Env) Page { return newAnalyticsPage(env) },
		nav.Dashboard: func(env *Env) Page { return newDashboardPage(env) },
		nav.Projects:  func(env *Env) Page { return newProjectsPage(env) },
		nav.Knowledge: func(env *Env) Page { return newKnowledgePage(env) },
		nav.Settings:  func(env *Env) Page { return newSettingsPage(env) },
	}
}

// StatPicker resolves a typed path with os.Stat
type StatPicker struct{}

// PickFile implements FilePicker
func (StatPicker) PickFile(query string) (models.FileMeta, error) {
	path := strings.TrimSpace(query)
	if path == "" {
		return models.FileMeta{}, fmt.Errorf("no file selected")
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return models.FileMeta{}, fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return models.FileMeta{}, fmt.Errorf("%s is a directory", path)
	}
	return models.FileMeta{Name: info.Name(), Path: path, Size: info.Size()}, nil
}
