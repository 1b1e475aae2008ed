package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/workclock/internal/clock"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/models"
)

// WindowTitle is the terminal title prefix while the clock runs
const WindowTitle = "Working Time"

// RunTimerTUI starts rec, shows the clock until the user stops it, then records
// the session with the note typed on the stop screen. It returns nil when the
// user discarded the session.
func RunTimerTUI(ctx context.Context, rec *clock.Recorder) (*models.WorkSession, error) {
	if _, err := rec.Start(); err != nil {
		return nil, err
	}

	p := tea.NewProgram(NewTimerModel(rec, WindowTitle), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()

	m, ok := finalModel.(TimerModel)
	switch {
	case rec.State() == clock.Running && (err != nil || !ok || m.cancelled):
		if cerr := rec.Cancel(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			return nil, err
		}
		fmt.Println("❌ Session discarded.")
		return nil, nil
	case rec.State() != clock.AwaitingNote:
		return nil, err
	}

	// The clock was stopped; whatever happened to the note, the time is recorded
	pending, _ := rec.Pending()
	ctx = context.WithoutCancel(ctx)
	var row *models.WorkSession
	if m.declined || !ok {
		row, err = rec.DeclineNote(ctx)
	} else {
		row, err = rec.ProvideNote(ctx, m.noteText)
	}
	if err != nil {
		return nil, LostSessionError(pending, err)
	}
	return row, nil
}

// LostSessionError reports a stopped session that could not be stored, with
// enough detail for the user to re-enter it by hand
func LostSessionError(in models.WorkSessionInput, err error) error {
	return fmt.Errorf("session started %s lasting %s was not saved: %w",
		time.Unix(in.Start, 0).Format("02/01/2006 15:04:05"), ledger.FormatDuration(in.Duration), err)
}

// RunReportTUI shows the monthly ledger, starting at the previous month if asked
func RunReportTUI(load ReportLoader, save ReportSaver, previous bool) error {
	p := tea.NewProgram(NewReportModel(load, save, time.Now, previous), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunAddTUI starts the manual entry wizard
func RunAddTUI(save AdjustmentSaver, threshold int64, prefilled map[string]string) error {
	model := NewAddModel(save, threshold, time.Now, prefilled)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AddModel); ok {
		switch {
		case m.err != nil:
			return m.err
		case m.cancelled:
			fmt.Println("❌ Entry cancelled.")
		case m.created != nil:
			fmt.Printf("✅ Recorded %s on %s - ID: %d\n",
				ledger.FormatSigned(m.created.Duration),
				time.Unix(m.created.Start, 0).Format("02/01/2006"),
				m.created.ID)
		}
	}

	return nil
}
