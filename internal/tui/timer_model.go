package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/workclock/internal/clock"
	"github.com/balkashynov/workclock/internal/ledger"
)

type timerPhase int

const (
	phaseRunning timerPhase = iota
	phaseNote
)

// TimerModel shows the running clock and then asks for a note
type TimerModel struct {
	width  int
	height int

	recorder *clock.Recorder
	title    string // window title without the elapsed time
	elapsed  time.Duration

	phase timerPhase
	note  textinput.Model

	// Outcome, read after the program exits
	noteText  string
	declined  bool
	cancelled bool
}

// timerTickMsg is sent every second while the clock runs
type timerTickMsg struct{}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// NewTimerModel creates the timer screen for a recorder that is already running
func NewTimerModel(rec *clock.Recorder, title string) TimerModel {
	note := textinput.New()
	note.Placeholder = "What did you work on? (Enter to save, Esc to skip)"
	note.CharLimit = 500
	note.Width = 60
	note.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	note.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	note.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TimerModel{
		recorder: rec,
		title:    title,
		elapsed:  rec.Elapsed(),
		note:     note,
	}
}

// Init starts the once-per-second ticker
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), tea.SetWindowTitle(m.windowTitle()))
}

func (m TimerModel) windowTitle() string {
	return fmt.Sprintf("%s: %s", m.title, ledger.FormatDuration(int64(m.elapsed/time.Second)))
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// The tick is not re-armed once the clock stops
		if m.phase != phaseRunning {
			return m, nil
		}
		m.elapsed = m.recorder.Elapsed()
		return m, tea.Batch(timerTick(), tea.SetWindowTitle(m.windowTitle()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = max(20, min(80, m.width-10))
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseNote {
			return m.updateNote(msg)
		}
		switch msg.String() {
		case "s", "S", "enter", " ":
			d, err := m.recorder.Stop()
			if err != nil {
				return m, nil
			}
			m.elapsed = d
			m.phase = phaseNote
			m.note.Focus()
			return m, tea.Batch(textinput.Blink, tea.SetWindowTitle(m.title))
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.noteText = strings.TrimSpace(m.note.Value())
		m.declined = m.noteText == ""
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.declined = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

// View renders the timer screen
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string

	header := "⏱  WORKING TIME"
	if m.phase == phaseNote {
		header = "■  STOPPED"
	}
	components = append(components, centered(m.width).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(header))

	components = append(components, renderBigClock(m.elapsed, m.width))

	started := m.recorder.StartedAt()
	if m.phase == phaseNote {
		if p, ok := m.recorder.Pending(); ok {
			started = time.Unix(p.Start, 0)
		}
	}
	components = append(components, centered(m.width).
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(fmt.Sprintf("Started at %s", started.Format("15:04:05"))))

	if m.phase == phaseNote {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain)).
			Padding(0, 1).
			Render("Notes\n" + m.note.View())
		components = append(components, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))
	}

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelpBar())
}

func (m TimerModel) renderHelpBar() string {
	help := "s/enter stop · q/esc discard · ctrl+c quit"
	if m.phase == phaseNote {
		help = "enter save · esc save without note"
	}
	return centered(m.width).
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render(help)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
}

// clockGlyphs is a 3x5 block font for the big clock
var clockGlyphs = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", " ██", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", " █ ", " █ ", " █ "},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {"   ", " ▪ ", "   ", " ▪ ", "   "},
}

// renderBigClock draws d as HH:MM:SS in block digits, centered in width
func renderBigClock(d time.Duration, width int) string {
	text := ledger.FormatDuration(int64(d / time.Second))

	var rows [5]strings.Builder
	for _, r := range text {
		glyph, ok := clockGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i].WriteString(glyph[i])
			rows[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = centered(width).Render(style.Render(rows[i].String()))
	}
	return strings.Join(lines, "\n")
}
