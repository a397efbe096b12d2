package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/elevate/internal/chat"
	"github.com/strrl/elevate/internal/nav"
	"github.com/strrl/elevate/internal/theme"
	"go.uber.org/zap"
)

const (
	transitionFPS    = 60
	transitionOffset = 6.0

	// Below this width the sidebar turns into a drawer
	narrowWidth = 70

	sidebarWidth          = 24
	collapsedSidebarWidth = 6
)

type focusArea int

const (
	focusPage focusArea = iota
	focusNav
)

// Options configure the shell
type Options struct {
	Start            nav.Page
	SidebarCollapsed bool
	// Registry overrides the page constructors; nil means DefaultRegistry
	Registry map[nav.Page]Factory
}

// fault is the captured page failure
type fault struct {
	page    nav.Page
	message string
}

// faultSlot is shared by pointer so View, which has a value receiver, can
// record a panic raised while rendering
type faultSlot struct {
	current *fault
}

type model struct {
	env      *Env
	registry map[nav.Page]Factory
	nav      *nav.Controller
	page     Page
	cursor   int
	focus    focusArea

	collapsed bool
	keys      shellKeys
	help      help.Model
	toasts    *toastBoard
	fault     *faultSlot

	themeCh     <-chan theme.Mode
	unsubscribe func()

	spring    harmonica.Spring
	offset    float64
	velocity  float64
	transSeq  int
	animating bool

	ready  bool
	width  int
	height int
}

func initialModel(env *Env, opts Options) model {
	env = env.withDefaults()
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	ch, unsubscribe := env.Theme.Subscribe()
	toasts, _ := env.Notifier.(*toastBoard)

	m := model{
		env:         env,
		registry:    registry,
		nav:         nav.NewController(opts.Start),
		collapsed:   opts.SidebarCollapsed,
		keys:        newShellKeys(),
		help:        help.New(),
		toasts:      toasts,
		fault:       &faultSlot{},
		themeCh:     ch,
		unsubscribe: unsubscribe,
		spring:      harmonica.NewSpring(harmonica.FPS(transitionFPS), 6.0, 0.7),
	}
	m.cursor = m.nav.Current().Index()
	m.mount()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.initPage(),
		waitForThemeCmd(m.themeCh),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizePage()

	case tea.KeyMsg:
		var quit bool
		var cmd tea.Cmd
		m, cmd, quit = m.handleKey(msg)
		if quit {
			m.shutdown()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case themeChangedMsg:
		m.env.Logger.Info("Theme changed", zap.String("theme", string(msg.Mode)))
		m.resizePage()
		cmds = append(cmds, waitForThemeCmd(m.themeCh))

	case toastExpiredMsg:
		if m.toasts != nil {
			m.toasts.expire(msg.Seq)
		}

	case transitionFrameMsg:
		if msg.Seq == m.transSeq && m.animating {
			m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, 0)
			if math.Abs(m.offset) < 0.05 && math.Abs(m.velocity) < 0.05 {
				m.offset, m.velocity, m.animating = 0, 0, false
			} else {
				cmds = append(cmds, transitionFrameCmd(m.transSeq))
			}
		}

	case replyDueMsg:
		cmds = append(cmds, m.routeReply(msg))

	case replyCancelledMsg:
		if !m.ownsInstance(msg.Instance) {
			m.env.Logger.Debug("Reply cancelled with its chat view", zap.String("task", msg.TaskID))
		} else {
			cmds = append(cmds, m.updatePage(msg))
		}

	default:
		cmds = append(cmds, m.updatePage(msg))
	}

	if m.toasts != nil {
		if seq, ok := m.toasts.takeFresh(); ok {
			cmds = append(cmds, toastExpiryCmd(seq, toastTTL))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, nil, true
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil, false
	}

	if m.fault.current != nil && key.Matches(msg, m.keys.Retry) {
		return m, m.retry(), false
	}

	if m.focus == focusNav {
		return m.handleNavKey(msg)
	}

	if key.Matches(msg, m.keys.Focus) && (m.fault.current != nil || !m.page.Modal()) {
		m.focus = focusNav
		m.cursor = m.nav.Current().Index()
		return m, nil, false
	}
	if m.fault.current != nil {
		return m, nil, false
	}
	return m, m.updatePage(msg), false
}

func (m model) handleNavKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	pages := nav.All()
	switch {
	case key.Matches(msg, m.keys.QuitNav):
		return m, nil, true
	case key.Matches(msg, m.keys.ThemeNav):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Sidebar):
		m.collapsed = !m.collapsed
		m.resizePage()
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + len(pages) - 1) % len(pages)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(pages)
	case key.Matches(msg, m.keys.Focus):
		m.focus = focusPage
	case key.Matches(msg, m.keys.Open):
		m.focus = focusPage
		return m, m.navigate(pages[m.cursor]), false
	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.Runes[0] - '1')
		m.cursor = idx
		m.focus = focusPage
		return m, m.navigate(pages[idx]), false
	case key.Matches(msg, m.keys.NextPage):
		return m.cycle(m.nav.Next)
	case key.Matches(msg, m.keys.PrevPage):
		return m.cycle(m.nav.Prev)
	}
	return m, nil, false
}

// cycle steps the controller and mounts the page it lands on; the sidebar
// keeps focus so the user can keep stepping
func (m model) cycle(step func() nav.Page) (model, tea.Cmd, bool) {
	prev := m.nav.Current()
	next := step()
	m.cursor = next.Index()
	m.env.Logger.Info("Page changed",
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.Int("visits", m.nav.Visits(next)))
	m.mount()
	return m, tea.Batch(m.initPage(), m.startTransition()), false
}

// navigate makes p the active page. Choosing the page that is already
// active keeps it mounted.
func (m *model) navigate(p nav.Page) tea.Cmd {
	prev := m.nav.SetPage(p)
	if prev == m.nav.Current() && m.fault.current == nil {
		return nil
	}
	m.env.Logger.Info("Page changed",
		zap.String("from", string(prev)),
		zap.String("to", string(m.nav.Current())),
		zap.Int("visits", m.nav.Visits(m.nav.Current())))

	m.mount()
	return tea.Batch(m.initPage(), m.startTransition())
}

// mount discards the current page and builds a fresh one for the active
// page identifier
func (m *model) mount() {
	m.closePage()
	m.fault.current = nil

	current := m.nav.Current()
	factory, ok := m.registry[current]
	if !ok {
		factory = m.registry[nav.Default]
	}

	func() {
		defer m.recoverFault()
		m.page = factory(m.env)
	}()
	m.resizePage()
}

func (m *model) closePage() {
	if m.page == nil {
		return
	}
	defer m.recoverFault()
	m.page.Close()
	m.page = nil
}

func (m model) initPage() (cmd tea.Cmd) {
	if m.page == nil || m.fault.current != nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			m.capture(r)
			cmd = nil
		}
	}()
	return m.page.Init()
}

func (m model) updatePage(msg tea.Msg) (cmd tea.Cmd) {
	if m.page == nil || m.fault.current != nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			m.capture(r)
			cmd = nil
		}
	}()
	return m.page.Update(msg)
}

func (m model) viewPage() (view string) {
	if m.page == nil || m.fault.current != nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			m.capture(r)
			view = ""
		}
	}()
	return m.page.View()
}

func (m *model) recoverFault() {
	if r := recover(); r != nil {
		m.capture(r)
	}
}

func (m model) capture(r interface{}) {
	message := fmt.Sprint(r)
	if err, ok := r.(error); ok {
		message = err.Error()
	}
	m.fault.current = &fault{page: m.nav.Current(), message: message}
	m.env.Logger.Error("Page failed",
		zap.String("page", string(m.nav.Current())),
		zap.String("error", message))
}

// retry clears the fault and mounts the active page again
func (m *model) retry() tea.Cmd {
	m.env.Logger.Info("Retrying page", zap.String("page", string(m.nav.Current())))
	m.mount()
	return m.initPage()
}

func (m *model) resizePage() {
	if m.page == nil || !m.ready {
		return
	}
	w, h := m.pageSize()
	defer m.recoverFault()
	m.page.SetSize(w, h)
}

func (m model) narrow() bool {
	return m.width < narrowWidth
}

func (m model) sidebarWidth() int {
	switch {
	case m.narrow():
		return 0
	case m.collapsed:
		return collapsedSidebarWidth
	default:
		return sidebarWidth
	}
}

func (m model) pageSize() (int, int) {
	w := m.width - m.sidebarWidth() - 2
	h := m.height - 3
	return max(w, 20), max(h, 5)
}

func (m *model) toggleTheme() {
	m.env.Theme.SetTheme(m.env.Theme.Theme().Toggle())
}

func (m *model) startTransition() tea.Cmd {
	m.transSeq++
	m.offset = transitionOffset
	m.velocity = 0
	m.animating = true
	return transitionFrameCmd(m.transSeq)
}

func (m model) ownsInstance(instance string) bool {
	cp, ok := m.page.(*chatPage)
	return ok && cp.instance == instance
}

// routeReply hands a due reply to the chat view that asked for it. A
// reply whose view is gone is dropped or queued for the next chat view,
// depending on the late reply policy.
func (m model) routeReply(msg replyDueMsg) tea.Cmd {
	if m.ownsInstance(msg.Instance) {
		return m.updatePage(msg)
	}

	if m.env.Chat.LatePolicy != chat.DeliverLate {
		m.env.Logger.Debug("Late reply dropped", zap.String("task", msg.TaskID))
		return nil
	}

	reply := chat.Reply{TaskID: msg.TaskID, Content: msg.Content, DueAt: msg.DueAt}
	if cp, ok := m.page.(*chatPage); ok && m.fault.current == nil {
		cp.acceptLate(reply)
		return nil
	}
	m.env.Mailbox.Put(reply)
	m.env.Logger.Debug("Late reply queued", zap.String("task", msg.TaskID), zap.Int("queued", m.env.Mailbox.Len()))
	return nil
}

func (m *model) shutdown() {
	m.closePage()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	styles := m.env.Styles()
	header := m.renderHeader(styles)
	footer := m.renderFooter(styles)

	w, h := m.pageSize()
	var body string
	if m.narrow() && m.focus == focusNav {
		body = m.renderDrawer(styles)
	} else {
		content := m.viewPage()
		if f := m.fault.current; f != nil {
			content = m.renderFault(styles, f)
		}
		pad := 0
		if m.animating && m.offset > 0 {
			pad = int(math.Round(m.offset))
		}
		body = lipgloss.NewStyle().
			Width(w).MaxWidth(w).
			Height(h).MaxHeight(h).
			PaddingTop(pad / 2).PaddingLeft(pad).
			Render(content)
		if !m.narrow() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(styles, h), " ", body)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) renderHeader(styles Styles) string {
	mode := m.env.Theme.Theme()
	icon := "☀ light"
	if mode == theme.Dark {
		icon = "☾ dark"
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Brand.Render("ElevateAI"),
		styles.Header.Render(m.nav.Current().Title()),
	)

	right := styles.Muted.Render(icon)
	if m.toasts != nil {
		if t, ok := m.toasts.Current(); ok {
			right = styles.Toast.Render(t.Title+": "+t.Message) + " " + right
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m model) renderSidebar(styles Styles, height int) string {
	var b strings.Builder
	for i, p := range nav.All() {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if m.collapsed {
			label = fmt.Sprintf("%d", i+1)
		}

		marker := "  "
		style := styles.NavItem
		if p == m.nav.Current() {
			marker = "▌ "
			style = styles.NavActive
		}
		if m.focus == focusNav && i == m.cursor {
			style = styles.NavCursor
			marker = "› "
		}
		b.WriteString(style.Render(marker+label) + "\n")
	}

	width := sidebarWidth - 3
	if m.collapsed {
		width = collapsedSidebarWidth - 3
	}
	return styles.Sidebar.Width(width).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderDrawer(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Menu") + "\n\n")
	for i, p := range nav.All() {
		line := fmt.Sprintf("  %d %s", i+1, p.Title())
		if i == m.cursor {
			line = styles.NavCursor.Render(fmt.Sprintf("› %d %s", i+1, p.Title()))
		} else if p == m.nav.Current() {
			line = styles.NavActive.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return styles.Dialog.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderFault(styles Styles, f *fault) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Error.Render("Oops! Something went wrong."),
		"",
		f.message,
		"",
		styles.Muted.Render("r: Try again"),
	)
}

func (m model) renderFooter(styles Styles) string {
	var keys help.KeyMap
	if m.focus == focusNav {
		keys = navHelp{k: m.keys}
	} else {
		var bindings []key.Binding
		if m.fault.current != nil {
			bindings = []key.Binding{m.keys.Retry}
		} else if h, ok := m.page.(helpful); ok {
			bindings = h.Help()
		}
		keys = pageHelp{k: m.keys, page: bindings}
	}
	return styles.Footer.Render(m.help.View(keys))
}

// ShowTUI runs the dashboard until the user quits
func ShowTUI(env *Env, opts Options) error {
	p := tea.NewProgram(
		initialModel(env, opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if m, ok := finalModel.(model); ok {
		m.shutdown()
	}
	if err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// RenderPage returns the first frame of page at the given size without
// starting a terminal program. Commands returned by the page's Init are
// resolved once so data loaded asynchronously shows up.
func RenderPage(env *Env, page nav.Page, width, height int) string {
	m := initialModel(env, Options{Start: page})
	defer m.shutdown()

	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m = next.(model)

	for _, msg := range resolve(m.initPage()) {
		next, _ = m.Update(msg)
		m = next.(model)
	}
	return m.View()
}

// resolve runs cmd and the commands of a batch it returns, one level deep
func resolve(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m := c(); m != nil {
			out = append(out, m)
		}
	}
	return out
}
