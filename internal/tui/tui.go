// Package tui provides a Bubble Tea chord explorer.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/chordfinder/internal/config"
	"github.com/handiism/chordfinder/internal/diagram"
	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
	"github.com/handiism/chordfinder/internal/precompute"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 2)

	chordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxRows caps the fingerings listed for one chord.
const maxRows = 50

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateSearching
	StateResults
	StatePrecomputing
	StateComplete
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   precompute.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	table     table.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	instruments []*instrument.Instrument
	current     int
	cache       *precompute.Cache

	// Last search
	chord model.Chord
	entry *precompute.Entry

	// Precompute context
	ctx     context.Context
	cancel  context.CancelFunc
	manager *precompute.Manager
	events  chan precompute.ProgressEvent
	done    int32
	total   int32

	width  int
	height int
}

// NewModel creates a new TUI model. The instrument named by
// settings.DefaultInstrument is selected first when registry has it.
func NewModel(settings *config.Settings, registry *instrument.Registry, cache *precompute.Cache) Model {
	ti := textinput.New()
	ti.Placeholder = "Am7, C/G, F#sus2"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Fingering", Width: 20},
			{Title: "Penalty", Width: 8},
		}),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color("#4ECDC4"))
	tbl.SetStyles(styles)

	instruments := registry.All()
	current := 0
	for i, inst := range instruments {
		if inst.ID == settings.DefaultInstrument {
			current = i
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		progress:    prog,
		table:       tbl,
		settings:    settings,
		instruments: instruments,
		current:     current,
		cache:       cache,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every precompute progress event.
	ProgressMsg struct {
		Event precompute.ProgressEvent
	}

	// SearchDoneMsg is sent when a chord search completes.
	SearchDoneMsg struct {
		Chord      model.Chord
		Instrument string
		Entry      *precompute.Entry
	}

	// PrecomputeDoneMsg is sent when a precompute run ends.
	PrecomputeDoneMsg struct {
		Done  int32
		Total int32
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Instrument returns the selected instrument.
func (m Model) Instrument() *instrument.Instrument {
	return m.instruments[m.current]
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.table.SetHeight(min(max(msg.Height-16, 5), 20))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StatePrecomputing:
				m.cancel()
			case StateResults, StateComplete:
				return m.toInput(), nil
			}
			return m, nil

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				chord, ok := model.ParseChord(strings.TrimSpace(m.textInput.Value()))
				if !ok {
					m.err = fmt.Errorf("%q is not a chord", m.textInput.Value())
					return m, nil
				}
				m.err = nil
				m.state = StateSearching
				return m, tea.Batch(m.search(chord), m.spinner.Tick)
			}

		case "tab", "shift+tab":
			if m.state == StateInput || m.state == StateResults {
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.instruments) - 1
				}
				m.current = (m.current + step) % len(m.instruments)
				if m.state == StateResults {
					m.state = StateSearching
					return m, tea.Batch(m.search(m.chord), m.spinner.Tick)
				}
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput || m.state == StateResults {
				return m.startPrecompute()
			}

		case "q":
			if m.state == StateResults || m.state == StateComplete {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SearchDoneMsg:
		m.chord = msg.Chord
		m.entry = msg.Entry
		m.table.SetRows(rows(msg.Entry))
		m.table.GotoTop()
		m.state = StateResults

	case ProgressMsg:
		if msg.Event.Level != precompute.LevelVerbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		if m.state == StatePrecomputing {
			cmds = append(cmds, m.waitForProgress())
		}

	case PrecomputeDoneMsg:
		m.done, m.total = msg.Done, msg.Total
		m.err = msg.Err
		m.state = StateComplete
		m.cancel()
		m.ctx, m.cancel = context.WithCancel(context.Background())

	case TickMsg:
		if m.manager != nil && m.state == StatePrecomputing {
			m.done, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case StateInput:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	case StateResults:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) toInput() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func rows(entry *precompute.Entry) []table.Row {
	ranked := entry.Top(maxRows)
	out := make([]table.Row, len(ranked))
	for i, r := range ranked {
		out[i] = table.Row{strconv.Itoa(i + 1), r.Fingering.String(), strconv.Itoa(r.Penalty)}
	}
	return out
}

// selected returns the fingering under the table cursor.
func (m Model) selected() (finder.Fingering, bool) {
	if m.entry == nil {
		return finder.Fingering{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entry.Fingerings) {
		return finder.Fingering{}, false
	}
	return m.entry.Fingerings[i].Fingering, true
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Chord Finder"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Instrument: %s (%s)", m.Instrument().Name, m.Instrument().Tuning())))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateSearching:
		b.WriteString(m.viewSearching())
	case StateResults:
		b.WriteString(m.viewResults())
	case StatePrecomputing:
		b.WriteString(m.viewPrecomputing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a chord:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Cached searches: %d", m.cache.Len())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSearching() string {
	return m.spinner.View() + " " + subtitleStyle.Render("Searching fingerings...") + "\n"
}

func (m Model) viewResults() string {
	var b strings.Builder

	entry := m.entry
	b.WriteString(chordStyle.Render(entry.Requested.String()))
	if entry.Searched != entry.Requested {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  played as %s", entry.Searched)))
	}
	b.WriteString("\n")
	for _, d := range entry.Downgrades {
		b.WriteString(dimStyle.Render("  " + d.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(entry.Fingerings) == 0 {
		b.WriteString(errorStyle.Render("No fingering found."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d fingerings", len(entry.Fingerings))))
	b.WriteString("\n")

	side := ""
	if f, ok := m.selected(); ok {
		side = boxStyle.Render(strings.TrimRight(diagram.ASCII(entry.Searched.String(), f), "\n"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), "  ", side))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPrecomputing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Precomputing " + m.Instrument().Name + "..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Chords: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render("Precompute stopped: " + m.err.Error()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(boxStyle.Render(fmt.Sprintf(
			"Precompute complete\n\nChords: %d/%d\nCached: %d",
			m.done, m.total, m.cache.Len(),
		)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "-"
		switch log.Level {
		case precompute.LevelError:
			style = errorStyle
			prefix = "x"
		case precompute.LevelWarning:
			style = warningStyle
			prefix = "!"
		case precompute.LevelSuccess:
			style = successStyle
			prefix = "+"
		case precompute.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: search • tab: instrument • ctrl+p: precompute • esc: quit"
	case StateSearching:
		return "searching..."
	case StateResults:
		return "↑/↓: fingering • tab: instrument • esc: new chord • ctrl+p: precompute • q: quit"
	case StatePrecomputing:
		return "esc: cancel"
	case StateComplete:
		return "esc: new chord • q: quit"
	}
	return ""
}

// search looks up chord on the selected instrument in the background.
func (m Model) search(chord model.Chord) tea.Cmd {
	inst := m.Instrument()
	cache := m.cache
	return func() tea.Msg {
		return SearchDoneMsg{
			Chord:      chord,
			Instrument: inst.ID,
			Entry:      cache.Lookup(chord, inst),
		}
	}
}

// startPrecompute fills the cache for the selected instrument.
func (m Model) startPrecompute() (Model, tea.Cmd) {
	events := make(chan precompute.ProgressEvent, 64)
	ctx := m.ctx
	manager := precompute.NewManager(m.settings, m.cache, func(event precompute.ProgressEvent) {
		select {
		case events <- event:
		default:
			// Dropped when the UI falls behind.
		}
	})

	m.state = StatePrecomputing
	m.logs = nil
	m.err = nil
	m.manager = manager
	m.events = events
	m.done, m.total = 0, 0

	inst := m.Instrument()
	run := func() tea.Msg {
		err := manager.Precompute(ctx, []*instrument.Instrument{inst})
		done, total := manager.GetProgress()
		return PrecomputeDoneMsg{Done: done, Total: total, Err: err}
	}

	return m, tea.Batch(run, m.waitForProgress(), m.tickProgress(), m.spinner.Tick)
}

// waitForProgress delivers the next progress event.
func (m Model) waitForProgress() tea.Cmd {
	events, ctx := m.events, m.ctx
	return func() tea.Msg {
		select {
		case event := <-events:
			return ProgressMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, registry *instrument.Registry, cache *precompute.Cache) error {
	m := NewModel(settings, registry, cache)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
