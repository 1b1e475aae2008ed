package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/models"
	"github.com/balkashynov/workclock/internal/parser"
)

// Step represents the current step in the wizard
type Step int

const (
	StepDate Step = iota
	StepSign
	StepHours
	StepMinutes
	StepNote
	StepSave
)

var stepLabels = [...]string{"Date", "Add or subtract", "Hours", "Minutes", "Note", "Save"}

// AdjustmentSaver stores a confirmed manual entry
type AdjustmentSaver func(ledger.Adjustment) (*models.WorkSession, error)

// AddModel is the manual adjustment wizard
type AddModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	save      AdjustmentSaver
	now       func() time.Time
	threshold int64 // entries at or below this many seconds are purged

	adjustment ledger.Adjustment

	// State
	validationErr string
	err           error
	cancelled     bool
	created       *models.WorkSession
}

// NewAddModel creates the wizard. prefilled may carry "date", "sign", "hours",
// "minutes" and "note".
func NewAddModel(save AdjustmentSaver, threshold int64, now func() time.Time, prefilled map[string]string) AddModel {
	if now == nil {
		now = time.Now
	}

	inputs := make([]textinput.Model, StepSave)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepDate].Placeholder = "today, yesterday, 3 days ago, dd/mm/yyyy (Enter for today)"
	inputs[StepDate].CharLimit = 20
	inputs[StepSign].Placeholder = "+ or - (Enter for +)"
	inputs[StepSign].CharLimit = 1
	inputs[StepHours].Placeholder = "0"
	inputs[StepHours].CharLimit = 8
	inputs[StepMinutes].Placeholder = "0"
	inputs[StepMinutes].CharLimit = 8
	inputs[StepNote].Placeholder = "Reason for the correction (Enter to skip)"
	inputs[StepNote].CharLimit = 500

	keys := map[Step]string{StepDate: "date", StepSign: "sign", StepHours: "hours", StepMinutes: "minutes", StepNote: "note"}
	for step, key := range keys {
		if v, ok := prefilled[key]; ok {
			inputs[step].SetValue(v)
		}
	}
	inputs[StepDate].Focus()

	return AddModel{
		currentStep: StepDate,
		inputs:      inputs,
		save:        save,
		now:         now,
		threshold:   threshold,
		adjustment:  ledger.Adjustment{Sign: ledger.Add},
	}
}

// Init implements tea.Model
func (m AddModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(30, min(70, m.width/2))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter", "tab":
			return m.handleEnter()
		case "shift+tab", "up":
			return m.prevStep()
		}
		if m.currentStep == StepSave {
			switch msg.String() {
			case "y", "Y":
				return m.handleEnter()
			case "n", "N":
				return m.prevStep()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m AddModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// handleEnter validates the current field and advances
func (m AddModel) handleEnter() (AddModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepDate:
		date, err := parser.ParseDate(m.value(StepDate), m.now())
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.adjustment.Date = date

	case StepSign:
		switch m.value(StepSign) {
		case "", "+":
			m.adjustment.Sign = ledger.Add
		case "-":
			m.adjustment.Sign = ledger.Subtract
		default:
			m.validationErr = "Sign must be + or -"
			return m, nil
		}

	case StepHours:
		h, err := parseQuantity("hours", m.value(StepHours))
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.adjustment.Hours = h

	case StepMinutes:
		mins, err := parseQuantity("minutes", m.value(StepMinutes))
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.adjustment.Minutes = mins

	case StepNote:
		m.adjustment.Note = m.inputs[StepNote].Value()

	case StepSave:
		return m.createAdjustment()
	}

	return m.nextStep()
}

// parseQuantity reads a non-negative number, empty meaning zero
func parseQuantity(field, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ledger.NewValidationError(field, s, "not a number")
	}
	if v < 0 {
		return 0, ledger.NewValidationError(field, s, "must not be negative, use the sign step")
	}
	return v, nil
}

func (m AddModel) nextStep() (AddModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

func (m AddModel) prevStep() (AddModel, tea.Cmd) {
	if m.currentStep > StepDate {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	m.validationErr = ""
	return m, textinput.Blink
}

func (m AddModel) createAdjustment() (AddModel, tea.Cmd) {
	if err := m.adjustment.Validate(); err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	created, err := m.save(m.adjustment)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.created = created
	return m, tea.Quit
}

// View renders the wizard
func (m AddModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render("➕ MANUAL ENTRY")

	var rows []string
	for step := StepDate; step < StepSave; step++ {
		rows = append(rows, m.renderField(step))
	}
	rows = append(rows, "", m.renderSummary())

	if m.validationErr != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠ "+m.validationErr))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))

	help := "enter next · shift+tab back · esc cancel"
	if m.currentStep == StepSave {
		help = "y/enter save · n back · esc cancel"
	}
	helpBar := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render(help)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, title, panel, helpBar))
}

func (m AddModel) renderField(step Step) string {
	label := lipgloss.NewStyle().Width(18)
	switch {
	case step == m.currentStep:
		label = label.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		return label.Render("▸ "+stepLabels[step]) + m.inputs[step].View()
	case step < m.currentStep:
		label = label.Foreground(lipgloss.Color(ColorSecondaryText))
	default:
		label = label.Foreground(lipgloss.Color(ColorDisabledText))
	}
	value := m.inputs[step].Value()
	if value == "" {
		value = "-"
	}
	return label.Render("  "+stepLabels[step]) + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(value)
}

// renderSummary previews the entry as it will appear in the ledger
func (m AddModel) renderSummary() string {
	a := m.adjustment
	date := "today"
	if !a.Date.IsZero() {
		date = parser.FormatDate(a.Date)
	}
	seconds := a.Seconds()
	color := ColorSuccess
	if seconds < 0 {
		color = ColorNegative
	}
	summary := fmt.Sprintf("%s  %s", date,
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(ledger.FormatSigned(seconds)))

	if m.currentStep == StepSave {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBalance)).Width(60)
		for _, n := range m.notices() {
			summary += "\n" + warn.Render(n)
		}
	}
	return summary
}

// notices lists what will happen to the entry once it is saved
func (m AddModel) notices() []string {
	var out []string
	a := m.adjustment
	if seconds := a.Seconds(); seconds >= -m.threshold && seconds <= m.threshold {
		out = append(out, fmt.Sprintf("Entries of %d seconds or less are discarded at the next report", m.threshold))
	}
	if !a.Date.IsZero() && ledger.StartsMonth(a.Date) {
		out = append(out, ledger.MonthBoundaryNotice)
	}
	return out
}
