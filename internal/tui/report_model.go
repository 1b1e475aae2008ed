package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/workclock/internal/ledger"
)

// ReportLoader computes the report for the current month, or the previous one
type ReportLoader func(previous bool) (*ledger.Report, error)

// ReportSaver writes the report lines to path
type ReportSaver func(path string, lines []ledger.Line) error

// ReportModel is the monthly ledger screen
type ReportModel struct {
	width  int
	height int

	load ReportLoader
	save ReportSaver
	now  func() time.Time

	report   *ledger.Report
	previous bool
	offset   int // first visible line
	err      error
	status   string
	failed   bool // status describes a failure

	saving    bool
	pathInput textinput.Model
}

// NewReportModel loads the current month, or the previous one, and returns the report screen
func NewReportModel(load ReportLoader, save ReportSaver, now func() time.Time, previous bool) ReportModel {
	if now == nil {
		now = time.Now
	}
	path := textinput.New()
	path.CharLimit = 255
	path.Width = 50
	path.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	path.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := ReportModel{
		load:      load,
		save:      save,
		now:       now,
		previous:  previous,
		pathInput: path,
	}
	m.reload()
	return m
}

func (m *ReportModel) reload() {
	m.offset = 0
	m.report, m.err = m.load(m.previous)
	m.failed = false
	if m.err == nil && m.report.Purged > 0 {
		m.status = fmt.Sprintf("Removed %d short session(s)", m.report.Purged)
	}
}

// Init implements tea.Model
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.saving {
			return m.updateSave(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		case "p":
			m.previous = !m.previous
			m.status = ""
			m.reload()
		case "r":
			m.status = ""
			m.reload()
		case "w":
			if m.report == nil {
				return m, nil
			}
			m.saving = true
			m.status = ""
			m.pathInput.SetValue(ledger.DefaultReportName(m.now()))
			m.pathInput.CursorEnd()
			m.pathInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m ReportModel) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.saving = false
		m.pathInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.saving = false
		m.pathInput.Blur()
		if err := m.save(path, m.report.Lines); err != nil {
			m.status, m.failed = "Save failed: "+err.Error(), true
		} else {
			m.status, m.failed = "Saved "+path, false
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// visibleRows is how many ledger lines fit between the header and footer
func (m ReportModel) visibleRows() int {
	return max(1, m.height-10)
}

func (m ReportModel) maxOffset() int {
	if m.report == nil {
		return 0
	}
	return max(0, len(m.report.Lines)-m.visibleRows())
}

// View renders the ledger screen
func (m ReportModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Padding(0, 1).
		Render(m.title())

	var body string
	switch {
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ " + m.err.Error())
	case len(m.report.Lines) == 0:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Italic(true).Render("No sessions recorded.")
	default:
		body = m.renderTable()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, title, box, m.renderFooter())
}

func (m ReportModel) title() string {
	if m.report == nil {
		return "LEDGER"
	}
	label := "LEDGER · " + m.report.MonthStart.Format("January 2006")
	if m.previous {
		label += " (previous month)"
	}
	return label
}

func (m ReportModel) renderTable() string {
	dateWidth := len(ledger.TextTimeLayout)
	durWidth := 12
	notesWidth := max(10, m.width-dateWidth-durWidth-12)

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Bold(true)
	rows := []string{
		header.Render(fmt.Sprintf("%-*s  %*s  %s", dateWidth, "DATE", durWidth, "DURATION", "NOTES")),
	}

	end := min(len(m.report.Lines), m.offset+m.visibleRows())
	for _, line := range m.report.Lines[m.offset:end] {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		switch {
		case line.Kind != ledger.LineEntry:
			style = style.Foreground(lipgloss.Color(ColorBalance)).Bold(true)
		case strings.HasPrefix(line.Duration, "-"):
			style = style.Foreground(lipgloss.Color(ColorNegative))
		}
		notes := strings.ReplaceAll(line.Notes, "\n", " ")
		if len(notes) > notesWidth {
			notes = notes[:notesWidth-3] + "..."
		}
		rows = append(rows, style.Render(fmt.Sprintf("%-*s  %*s  %s",
			dateWidth, line.Time.Format(ledger.TextTimeLayout), durWidth, line.Duration, notes)))
	}
	return strings.Join(rows, "\n")
}

func (m ReportModel) renderFooter() string {
	var parts []string

	if m.report != nil && m.err == nil {
		balance := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBalance)).Bold(true)
		if m.report.Balance < 0 {
			balance = balance.Foreground(lipgloss.Color(ColorNegative))
		}
		parts = append(parts, fmt.Sprintf(" %d entries · balance %s",
			m.report.Entries, balance.Render(ledger.FormatSigned(m.report.Balance))))
	}

	if m.saving {
		parts = append(parts, " Save as: "+m.pathInput.View())
	} else if m.status != "" {
		color := ColorSuccess
		if m.failed {
			color = ColorError
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(" "+m.status))
	}

	help := "↑/↓ scroll · p previous/current month · r reload · w save · q quit"
	if m.saving {
		help = "enter save · esc cancel"
	}
	parts = append(parts, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render(" "+help))

	return strings.Join(parts, "\n")
}
