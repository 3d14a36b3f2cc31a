// Package tui provides a Bubble Tea terminal user interface for the batch
// downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/playlist-dl/internal/catalog"
	"github.com/handiism/playlist-dl/internal/config"
	"github.com/handiism/playlist-dl/internal/download"
	"github.com/handiism/playlist-dl/internal/model"
	events "github.com/handiism/playlist-dl/internal/progress"
	"github.com/handiism/playlist-dl/internal/ui"
	"github.com/handiism/playlist-dl/internal/ytdlp"
)

// maxLogs is how many log lines the downloading view keeps.
const maxLogs = 10

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateDownloading
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []events.Event
	entries   []model.Entry
	summary   *download.Summary
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	eventCh chan events.Event

	// Current item
	item        int
	itemName    string
	itemPercent float64

	doneItems  int
	totalItems int

	// Options
	keepGoing bool
	playlist  bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model. catalogPath pre-fills the input.
func NewModel(settings *config.Settings, catalogPath string) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if catalogPath == "" {
		catalogPath = catalog.DefaultPath
	}

	ti := textinput.New()
	ti.Placeholder = catalog.DefaultPath
	ti.SetValue(catalogPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		ctx:       ctx,
		cancel:    cancel,
		keepGoing: settings.KeepGoing,
		playlist:  settings.CreatePlaylist,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Event events.Event
	}

	// LoadedMsg is sent when the catalog has been read.
	LoadedMsg struct {
		Entries []model.Entry
		Manager *download.Manager
		EventCh chan events.Event
		Err     error
	}

	// DownloadDoneMsg is sent when the batch finishes.
	DownloadDoneMsg struct {
		Summary *download.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateLoading {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateLoading
				return m, tea.Batch(m.loadCatalog(), m.spinner.Tick)
			}

		case "ctrl+k":
			if m.state == StateInput {
				m.keepGoing = !m.keepGoing
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.entries = nil
				m.summary = nil
				m.err = nil
				m.item, m.itemName, m.itemPercent = 0, "", 0
				m.doneItems, m.totalItems = 0, 0
				m.manager = nil
				m.eventCh = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.applyEvent(msg.Event)
		cmds = append(cmds, waitForEvent(m.eventCh))

	case LoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.entries = msg.Entries
		m.manager = msg.Manager
		m.eventCh = msg.EventCh
		m.totalItems = len(msg.Entries)
		m.state = StateDownloading
		cmds = append(cmds, m.startDownload(), waitForEvent(m.eventCh), m.tickProgress())

	case DownloadDoneMsg:
		m.summary = msg.Summary
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil && !errors.Is(msg.Err, download.ErrItemsFailed):
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.doneItems, m.totalItems = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.overallPercent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyEvent tracks the current item and appends the event to the log.
func (m *Model) applyEvent(e events.Event) {
	if e.Item > 0 {
		if e.Item != m.item {
			m.item = e.Item
			m.itemPercent = 0
		}
		if e.Percent >= 0 {
			m.itemPercent = e.Percent
		}
		if e.Level == events.LevelInfo {
			m.itemName = strings.TrimPrefix(e.Message, "Downloading: ")
		}
	}

	if e.Level == events.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, e)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// overallPercent counts finished items plus the fraction of the current one.
func (m Model) overallPercent() float64 {
	if m.totalItems == 0 {
		return 0
	}
	current := 0.0
	if m.doneItems < m.totalItems {
		current = m.itemPercent / 100
	}
	return (float64(m.doneItems) + current) / float64(m.totalItems)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event. It returns nil once the
// channel is closed.
func waitForEvent(ch chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("♪ playlist-dl"))
	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render("Download every track of a catalog as audio"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(ui.SubtitleStyle.Render("Catalog file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(ui.InfoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Keep going after a failed item (ctrl+k)\n", checkbox(m.keepGoing)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render(fmt.Sprintf("Format: %s | Download path: %s", m.settings.Format(), m.settings.DownloadsDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	return m.spinner.View() + " " + ui.SubtitleStyle.Render("Reading catalog...") + "\n"
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(ui.SuccessStyle.Render(fmt.Sprintf("%d track(s) in catalog", len(m.entries))))
	b.WriteString("\n")
	if m.itemName != "" {
		b.WriteString(m.spinner.View())
		b.WriteString(trackStyle.Render(fmt.Sprintf(" %s (%.0f%%)", m.itemName, m.itemPercent)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.progress.View())
	b.WriteString("\n")
	b.WriteString(ui.InfoStyle.Render(fmt.Sprintf("Tracks: %d/%d", m.doneItems, m.totalItems)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	succeeded, failed := 0, 0
	if m.summary != nil {
		succeeded = m.summary.Succeeded()
		failed = len(m.summary.Failed())
	}

	content := fmt.Sprintf("Download Complete!\n\nSaved: %d\nFailed: %d\nFolder: %s",
		succeeded, failed, m.settings.DownloadsDir)
	if m.summary != nil && m.summary.PlaylistPath != "" {
		content += "\nPlaylist: " + m.summary.PlaylistPath
	}
	b.WriteString(boxStyle.Render(content))
	b.WriteString("\n")

	if failed > 0 {
		b.WriteString("\n")
		for _, r := range m.summary.Failed() {
			b.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("✗ %s: %v", r.Entry.DisplayName(), r.Err)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(ui.ErrorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, e := range m.logs {
		b.WriteString(ui.Render(e))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+k: keep going • ctrl+p: playlist • ctrl+v: verbose • esc: quit"
	case StateLoading, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// loadCatalog reads the catalog and creates the manager.
func (m *Model) loadCatalog() tea.Cmd {
	path := strings.TrimSpace(m.textInput.Value())
	if path == "" {
		path = catalog.DefaultPath
	}

	settings := *m.settings
	settings.KeepGoing = m.keepGoing
	settings.CreatePlaylist = m.playlist

	return func() tea.Msg {
		entries, err := catalog.Load(path)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		eventCh := make(chan events.Event, 256)
		fetcher := ytdlp.NewFetcher(settings.FetchTool, settings.CondaEnv, nil)
		manager := download.NewManager(&settings, fetcher, func(e events.Event) {
			eventCh <- e
		})

		return LoadedMsg{Entries: entries, Manager: manager, EventCh: eventCh}
	}
}

// startDownload runs the batch in the background and closes the event
// channel when it returns.
func (m *Model) startDownload() tea.Cmd {
	manager, entries, ctx, eventCh := m.manager, m.entries, m.ctx, m.eventCh
	return func() tea.Msg {
		summary, err := manager.Run(ctx, entries)
		close(eventCh)
		return DownloadDoneMsg{Summary: summary, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, catalogPath string) error {
	p := tea.NewProgram(NewModel(settings, catalogPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
