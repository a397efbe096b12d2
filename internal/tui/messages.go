package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/elevate/internal/analytics"
	"github.com/strrl/elevate/internal/tasks"
	"github.com/strrl/elevate/internal/theme"
	"github.com/strrl/elevate/pkg/models"
)

// Message types for async operations
type (
	// replyDueMsg carries an assistant reply whose simulated delay elapsed
	replyDueMsg struct {
		Instance string // chat view that asked for the reply
		TaskID   string
		Content  string
		DueAt    time.Time
	}

	// replyCancelledMsg reports a reply timer cancelled with its chat view
	replyCancelledMsg struct {
		Instance string
		TaskID   string
	}

	// fileInspectedMsg carries the picker result for the attach prompt
	fileInspectedMsg struct {
		Instance string
		File     models.FileMeta
		Error    error
	}

	// analyticsLoadedMsg contains both analytics reports
	analyticsLoadedMsg struct {
		Instance  string
		Financial analytics.FinancialReport
		Customers analytics.CustomerReport
		Error     error
	}

	// themeChangedMsg is delivered after the theme provider changes
	themeChangedMsg struct {
		Mode theme.Mode
	}

	// toastExpiredMsg clears a toast unless a newer one replaced it
	toastExpiredMsg struct {
		Seq int
	}

	// transitionFrameMsg advances the page enter animation
	transitionFrameMsg struct {
		Seq int
	}

	// spinnerTickMsg is sent periodically for the pending reply spinner
	spinnerTickMsg struct {
		Instance string
	}
)

// Commands for async operations

// scheduleReplyCmd waits out the simulated delay of one reply
func scheduleReplyCmd(exec *tasks.Executor, ctx context.Context, instance string, delay time.Duration, content string) (string, tea.Cmd, error) {
	id, wait, err := exec.After(ctx, delay)
	if err != nil {
		return "", nil, err
	}
	return id, func() tea.Msg {
		if err := wait(); err != nil {
			return replyCancelledMsg{Instance: instance, TaskID: id}
		}
		return replyDueMsg{
			Instance: instance,
			TaskID:   id,
			Content:  content,
			DueAt:    time.Now(),
		}
	}, nil
}

// pickFileCmd resolves the attach prompt off the update loop
func pickFileCmd(picker FilePicker, instance, query string) tea.Cmd {
	return func() tea.Msg {
		file, err := picker.PickFile(query)
		return fileInspectedMsg{Instance: instance, File: file, Error: err}
	}
}

// loadAnalyticsCmd loads both analytics reports asynchronously
func loadAnalyticsCmd(ctx context.Context, engine *analytics.Engine, instance string) tea.Cmd {
	return func() tea.Msg {
		financial, err := engine.Financial(ctx)
		if err != nil {
			return analyticsLoadedMsg{Instance: instance, Error: err}
		}
		customers, err := engine.Customers(ctx)
		return analyticsLoadedMsg{
			Instance:  instance,
			Financial: financial,
			Customers: customers,
			Error:     err,
		}
	}
}

// waitForThemeCmd blocks until the provider publishes a new mode
func waitForThemeCmd(ch <-chan theme.Mode) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		mode, ok := <-ch
		if !ok {
			return nil
		}
		return themeChangedMsg{Mode: mode}
	}
}

func toastExpiryCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{Seq: seq}
	})
}

func transitionFrameCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second/transitionFPS, func(time.Time) tea.Msg {
		return transitionFrameMsg{Seq: seq}
	})
}

// spinnerTickCmd creates a ticker for spinner animation
func spinnerTickCmd(instance string) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{Instance: instance}
	})
}
