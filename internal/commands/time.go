package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/clock"
	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/log"
	"github.com/balkashynov/workclock/internal/models"
	"github.com/balkashynov/workclock/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the work clock",
	Long: `Start the work clock. Opens the interactive timer by default, use --no-ui for a plain prompt.
Stopping the clock asks for a note; the session is recorded either way.

Examples:
  workclock start         # Big clock, s or Enter to stop
  workclock start --no-ui # Enter to stop, Ctrl+C to discard`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		logger := log.WithComponent("clock")
		rec := clock.NewRecorder(store, time.Now)

		var (
			row *models.WorkSession
			err error
		)
		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			row, err = runPlainTimer(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rec)
		} else {
			row, err = tui.RunTimerTUI(cmd.Context(), rec)
		}
		if err != nil {
			logger.Error().Err(err).Msg("session not recorded")
			return err
		}
		if row == nil {
			logger.Info().Msg("session discarded")
			return nil
		}

		logger.Info().Int64("id", row.ID).Int64("duration", row.Duration).Msg("session recorded")
		fmt.Fprintf(cmd.OutOrStdout(), "⏹️  Recorded %s from %s - ID: %d\n",
			ledger.FormatDuration(row.Duration), time.Unix(row.Start, 0).Format("15:04:05"), row.ID)
		if row.Duration <= cfg.NoiseThreshold {
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions of %d seconds or less are discarded at the next report.\n", cfg.NoiseThreshold)
		}
		return nil
	}),
}

// runPlainTimer runs the clock without the TUI: the status line and terminal
// title refresh every second until Enter, then the note is read from in.
func runPlainTimer(ctx context.Context, in io.Reader, out io.Writer, rec *clock.Recorder) (*models.WorkSession, error) {
	started, err := rec.Start()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "⏱️  Started at %s. Press Enter to stop, Ctrl+C to discard.\n", started.Format("15:04:05"))

	ticker := clock.StartTicker(ctx, time.Second, func(elapsed time.Duration) {
		text := ledger.FormatDuration(int64(elapsed / time.Second))
		fmt.Fprintf(out, "\x1b]0;%s: %s\x07\r%s ", tui.WindowTitle, text, text)
	})

	reader := bufio.NewReader(in)
	stopped := make(chan error, 1)
	go func() {
		_, err := reader.ReadString('\n')
		stopped <- err
	}()

	select {
	case <-ctx.Done():
		ticker.Stop()
		// Closing the input unblocks the reader goroutine. A terminal read may not
		// return on close; the process exits right after in that case.
		if c, ok := in.(io.Closer); ok {
			c.Close()
		}
		fmt.Fprint(out, "\x1b]0;\x07\n❌ Session discarded.\n")
		if err := rec.Cancel(); err != nil {
			return nil, err
		}
		return nil, nil
	case err := <-stopped:
		ticker.Stop()
		if err != nil && !errors.Is(err, io.EOF) {
			rec.Cancel()
			return nil, fmt.Errorf("read input: %w", err)
		}
	}

	d, err := rec.Stop()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "\x1b]0;\x07\r■ Stopped after %s. Note (Enter to skip): ", ledger.FormatDuration(int64(d/time.Second)))

	note, _ := reader.ReadString('\n')
	note = strings.TrimSpace(note)

	pending, _ := rec.Pending()
	ctx = context.WithoutCancel(ctx)
	var row *models.WorkSession
	if note == "" {
		row, err = rec.DeclineNote(ctx)
	} else {
		row, err = rec.ProvideNote(ctx, note)
	}
	if err != nil {
		return nil, tui.LostSessionError(pending, err)
	}
	return row, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the balance of the current month",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		report, err := newReporter(store).Monthly(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "📅 %s\n", report.MonthStart.Format("January 2006"))
		fmt.Fprintf(out, "Carried over:  %s\n", ledger.FormatSigned(report.Opening))
		fmt.Fprintf(out, "This month:    %s in %s entries\n",
			ledger.FormatSigned(report.Balance-report.Opening), humanize.Comma(int64(report.Entries)))
		fmt.Fprintf(out, "Balance:       %s\n", ledger.FormatSigned(report.Balance))
		if last, ok := lastEntry(report.Lines); ok {
			fmt.Fprintf(out, "Last entry:    %s (%s)\n", humanize.Time(last.Time), last.Duration)
		}
		if report.Purged > 0 {
			fmt.Fprintf(out, "Removed %d short session(s).\n", report.Purged)
		}
		return nil
	}),
}

// lastEntry is the most recent stored session in lines
func lastEntry(lines []ledger.Line) (ledger.Line, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Kind == ledger.LineEntry {
			return lines[i], true
		}
	}
	return ledger.Line{}, false
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Run the clock without the interactive UI")
}
