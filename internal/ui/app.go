package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/settingsync/internal/logtail"
	"github.com/five82/settingsync/internal/settings"
	"github.com/five82/settingsync/internal/syncer"
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Sync     *syncer.Synchronizer
	LogPath  string
	PollTick time.Duration
	LogLines int
}

const (
	defaultPollTick = 500 * time.Millisecond
	defaultLogLines = 200
	logPaneHeight   = 8
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	sync     *syncer.Synchronizer
	logPath  string
	pollTick time.Duration
	logLines int

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	selected int
	showHelp bool
	showLogs bool

	// Data state
	current  settings.Settings
	status   syncer.Status
	flash    string
	lastErr  error
	logView  viewport.Model
	logCache []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}
	logLines := opts.LogLines
	if logLines <= 0 {
		logLines = defaultLogLines
	}

	current := opts.Sync.Settings()
	return Model{
		ctx:      ctx,
		sync:     opts.Sync,
		logPath:  opts.LogPath,
		pollTick: pollTick,
		logLines: logLines,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		theme:    ThemeFor(current),
		current:  current,
		status:   opts.Sync.Status(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		statusCmd(m.sync),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logView = viewport.New(msg.Width, logPaneHeight)
		}
		m.logView.Width = msg.Width
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{statusCmd(m.sync), tickCmd(m.pollTick)}
		if m.showLogs {
			cmds = append(cmds, readLogsCmd(m.logPath, m.logLines))
		}
		return m, tea.Batch(cmds...)

	case settingsChangedMsg:
		m.refreshSettings()
		return m, nil

	case statusMsg:
		m.status = syncer.Status(msg)
		return m, nil

	case saveDoneMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.flash = "saved"
		}
		return m, statusCmd(m.sync)

	case logsMsg:
		m.logCache = logtail.FormatLines(msg)
		m.logView.SetContent(strings.Join(m.logCache, "\n"))
		m.logView.GotoBottom()
		return m, nil

	case logErrorMsg:
		m.lastErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Drawer):
		m.sync.ToggleDrawer()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.sync.CloseDrawer()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, readLogsCmd(m.logPath, m.logLines)
		}
		return m, nil
	}

	if m.showLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		if cmd != nil {
			return m, cmd
		}
	}

	if !m.sync.DrawerOpen() {
		return m, nil
	}
	return m.handleDrawerKey(msg)
}

// handleDrawerKey processes keyboard input while the drawer is open.
func (m Model) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := settings.Keys()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(keys)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Next):
		m.step(keys[m.selected], 1)
	case key.Matches(msg, m.keys.Prev):
		m.step(keys[m.selected], -1)
	case key.Matches(msg, m.keys.FontUp):
		m.step(settings.KeyFontSizeScale, 1)
	case key.Matches(msg, m.keys.FontDown):
		m.step(settings.KeyFontSizeScale, -1)
	case key.Matches(msg, m.keys.Reset):
		m.flash = ""
		m.lastErr = m.sync.Reset()
		m.refreshSettings()
	case key.Matches(msg, m.keys.Save):
		m.flash = "saving"
		return m, saveCmd(m.ctx, m.sync)
	}
	return m, nil
}

// step moves k to its next or previous value.
func (m *Model) step(k settings.Key, dir int) {
	m.flash = ""
	m.lastErr = m.sync.Update(k, m.current.Next(k, dir))
	m.refreshSettings()
}

func (m *Model) refreshSettings() {
	m.current = m.sync.Settings()
	m.theme = ThemeFor(m.current)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.sync.DrawerOpen() {
		b.WriteString(m.renderDrawer())
	} else {
		styles := m.theme.Styles()
		b.WriteString(styles.MutedText.Render("Press o to open settings"))
	}
	b.WriteString("\n")

	if m.showLogs {
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Styles().Footer.Render(m.help.View(m.keys)))
	return b.String()
}

// Messages

type tickMsg time.Time

type settingsChangedMsg struct{}

type statusMsg syncer.Status

type saveDoneMsg struct{ err error }

type logsMsg []string

type logErrorMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func statusCmd(s *syncer.Synchronizer) tea.Cmd {
	return func() tea.Msg {
		return statusMsg(s.Status())
	}
}

func saveCmd(ctx context.Context, s *syncer.Synchronizer) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: s.SaveNow(ctx)}
	}
}

func readLogsCmd(path string, lines int) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logsMsg(nil)
		}
		out, err := logtail.Read(path, lines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logsMsg(out)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Sync == nil {
		return fmt.Errorf("ui requires a synchronizer")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	// Listeners can fire from inside Update (key handling), which runs on
	// the program's event loop, so Send must not block it.
	unsubscribe := opts.Sync.Subscribe(func(settings.Settings) {
		go p.Send(settingsChangedMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
