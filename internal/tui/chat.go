package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/strrl/elevate/internal/chat"
	"github.com/strrl/elevate/internal/tasks"
	"github.com/strrl/elevate/pkg/models"
	"go.uber.org/zap"
)

const (
	chatTabChat = iota
	chatTabFiles
)

type chatPage struct {
	env      *Env
	instance string

	transcript *chat.Transcript
	input      textinput.Model
	attach     textinput.Model
	attaching  bool
	viewport   viewport.Model
	tab        int

	exec     *tasksHandle
	spinner  *Spinner
	spinning bool

	width  int
	height int
}

// tasksHandle bundles the executor of one chat view with the context its
// reply timers derive from
type tasksHandle struct {
	*tasks.Executor
	ctx    context.Context
	cancel context.CancelFunc
}

func newChatPage(env *Env) *chatPage {
	input := textinput.New()
	input.Placeholder = "Type your message here..."
	input.Prompt = "› "
	input.Focus()

	attach := textinput.New()
	attach.Placeholder = "path/to/file"
	attach.Prompt = "file: "

	ctx, cancel := context.WithCancel(context.Background())
	return &chatPage{
		env:        env,
		instance:   uuid.New().String(),
		transcript: chat.NewTranscript(env.now()),
		input:      input,
		attach:     attach,
		viewport:   viewport.New(60, 10),
		exec:       &tasksHandle{Executor: tasks.NewExecutor(), ctx: ctx, cancel: cancel},
		spinner:    NewSpinner(),
	}
}

func (p *chatPage) Init() tea.Cmd {
	if p.env.Chat.LatePolicy == chat.DeliverLate {
		for _, r := range p.env.Mailbox.Drain() {
			p.acceptLate(r)
		}
	}
	p.refresh()
	return textinput.Blink
}

// acceptLate appends a reply that was requested by an earlier chat view
func (p *chatPage) acceptLate(r chat.Reply) {
	p.transcript.AppendReply(r.Content, r.DueAt)
	p.env.Logger.Debug("Late reply delivered",
		zap.String("task", r.TaskID),
		zap.String("instance", p.instance))
	p.refresh()
}

func (p *chatPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case replyDueMsg:
		if msg.Instance != p.instance {
			return nil
		}
		p.transcript.AppendReply(msg.Content, msg.DueAt)
		p.env.Logger.Debug("Reply delivered", zap.String("task", msg.TaskID))
		p.refresh()
		return nil

	case replyCancelledMsg:
		if msg.Instance == p.instance {
			p.transcript.Settle()
			p.refresh()
		}
		return nil

	case spinnerTickMsg:
		if msg.Instance != p.instance {
			return nil
		}
		if !p.transcript.Pending() {
			p.spinning = false
			return nil
		}
		p.spinner.Next()
		return spinnerTickCmd(p.instance)

	case fileInspectedMsg:
		if msg.Instance != p.instance {
			return nil
		}
		if msg.Error != nil {
			p.env.Logger.Debug("File pick failed", zap.Error(msg.Error))
			p.env.Notifier.Notify("Upload failed", msg.Error.Error())
			return nil
		}
		p.transcript.Attach(msg.File)
		p.env.Logger.Info("File attached", zap.String("name", msg.File.Name), zap.Int64("size", msg.File.Size))
		p.env.Notifier.Notify("File Uploaded", fmt.Sprintf("%s has been successfully uploaded.", msg.File.Name))
		return nil

	case tea.KeyMsg:
		if p.attaching {
			return p.updateAttach(msg)
		}
		return p.updateKeys(msg)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *chatPage) updateAttach(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.closeAttach()
		return nil
	case "enter":
		query := p.attach.Value()
		p.closeAttach()
		return pickFileCmd(p.env.Picker, p.instance, query)
	}
	var cmd tea.Cmd
	p.attach, cmd = p.attach.Update(msg)
	return cmd
}

func (p *chatPage) closeAttach() {
	p.attaching = false
	p.attach.Reset()
	p.attach.Blur()
	p.input.Focus()
}

func (p *chatPage) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if p.tab != chatTabChat {
			return nil
		}
		return p.send()
	case "tab":
		p.tab = (p.tab + 1) % 2
		return nil
	case "ctrl+o":
		p.attaching = true
		p.input.Blur()
		return p.attach.Focus()
	case "ctrl+r":
		on := p.transcript.ToggleRecording()
		p.env.Logger.Debug("Recording toggled", zap.Bool("on", on))
		return nil
	case "ctrl+y":
		for _, m := range reverse(p.transcript.Messages()) {
			if m.Sender == models.SenderAssistant {
				p.env.copyToClipboard(m.Content)
				break
			}
		}
		return nil
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// send appends the typed message and schedules the simulated reply. There
// is no lock: each send gets its own reply.
func (p *chatPage) send() tea.Cmd {
	text := p.input.Value()
	if _, err := p.transcript.Send(text, p.env.now()); err != nil {
		p.env.Logger.Debug("Chat send rejected", zap.Error(err))
		return nil
	}
	p.input.Reset()
	p.refresh()

	id, wait, err := scheduleReplyCmd(p.exec.Executor, p.exec.ctx, p.instance, p.env.Chat.ReplyDelay, p.env.Chat.ReplyText)
	if err != nil {
		p.transcript.Settle()
		p.env.Logger.Warn("Failed to schedule reply", zap.Error(err))
		return nil
	}
	p.env.Logger.Debug("Reply scheduled",
		zap.String("task", id),
		zap.Duration("delay", p.env.Chat.ReplyDelay))

	cmds := []tea.Cmd{wait}
	if !p.spinning {
		p.spinning = true
		cmds = append(cmds, spinnerTickCmd(p.instance))
	}
	return tea.Batch(cmds...)
}

func (p *chatPage) refresh() {
	p.viewport.SetContent(p.renderTranscript())
	p.viewport.GotoBottom()
}

func (p *chatPage) renderTranscript() string {
	styles := p.env.Styles()
	width := p.viewport.Width
	bubbleWidth := width * 4 / 5
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var b strings.Builder
	for i, m := range p.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		body := wordwrap.String(m.Content, bubbleWidth-4)
		stamp := styles.Muted.Render(m.Timestamp.Format("15:04"))
		if m.Sender == models.SenderUser {
			bubble := styles.UserBubble.Render(body)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, stamp))
		} else {
			b.WriteString(styles.Muted.Render("AI") + "\n")
			b.WriteString(styles.AIBubble.Render(body))
			b.WriteString("\n" + stamp)
		}
	}
	return b.String()
}

func (p *chatPage) renderFiles() string {
	styles := p.env.Styles()
	var b strings.Builder
	b.WriteString(styles.CardTitle.Render("Uploaded Files") + "\n\n")

	files := p.transcript.Attachments()
	if len(files) == 0 {
		b.WriteString(styles.Muted.Render("No files uploaded yet. Press ctrl+o to attach one."))
		return b.String()
	}
	for _, f := range files {
		b.WriteString(fmt.Sprintf("▪ %s  %s\n", f.Name, styles.Muted.Render(humanize.Bytes(uint64(f.Size)))))
	}
	return b.String()
}

func (p *chatPage) View() string {
	styles := p.env.Styles()

	var body string
	if p.tab == chatTabFiles {
		body = lipgloss.NewStyle().Height(p.viewport.Height).Render(p.renderFiles())
	} else {
		body = p.viewport.View()
	}

	status := ""
	if p.transcript.Pending() {
		status = pendingIndicator(p.spinner, styles, "Analyzing...")
	}
	if p.transcript.Recording() {
		rec := styles.Error.Render("● recording")
		if status != "" {
			status += "  "
		}
		status += rec
	}

	input := styles.InputFocused.Width(max(p.width-4, 10)).Render(p.input.View())
	if p.attaching {
		input = styles.Dialog.Render(
			styles.CardTitle.Render("Attach a file") + "\n" +
				p.attach.View() + "\n" +
				styles.Muted.Render("enter: upload • esc: cancel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Chat with AI Consultant"),
		styles.Tabs([]string{"Chat", "Files"}, p.tab),
		body,
		status,
		input,
	)
}

func (p *chatPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = max(width, 10)
	p.viewport.Height = max(height-9, 3)
	p.input.Width = max(width-10, 10)
	p.attach.Width = max(width-16, 10)
	p.refresh()
}

func (p *chatPage) Modal() bool {
	return p.attaching
}

func (p *chatPage) Help() []key.Binding {
	return []key.Binding{
		binding([]string{"enter"}, "enter", "send"),
		binding([]string{"tab"}, "tab", "chat/files"),
		binding([]string{"ctrl+o"}, "ctrl+o", "attach"),
		binding([]string{"ctrl+r"}, "ctrl+r", "record"),
		binding([]string{"ctrl+y"}, "ctrl+y", "copy reply"),
	}
}

// Close tears the chat view down. Under the drop policy pending reply
// timers are cancelled; under deliver they run on and the shell queues
// their replies for the next chat view.
func (p *chatPage) Close() {
	if p.env.Chat.LatePolicy == chat.DeliverLate {
		p.exec.Seal()
		return
	}
	p.exec.Close()
	p.exec.cancel()
}

func reverse(msgs []models.Message) []models.Message {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}
