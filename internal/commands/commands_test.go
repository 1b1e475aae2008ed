package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/balkashynov/workclock/internal/clock"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/models"
	"github.com/balkashynov/workclock/internal/tui"
)

// run executes the root command against a config rooted in dir
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); err != nil {
		require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: "+dir+"\n"), 0644))
	}

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := Execute(context.Background())
	return out.String(), err
}

// resetFlags restores defaults; flag values outlive a single Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestAddThenReportCarriesBalance(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add", "1h30m", "forgot", "the", "clock", "--date", "15/01/2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 01:30:00 on 15/01/2024")
	assert.FileExists(t, filepath.Join(dir, "data.sqlite"))
	assert.FileExists(t, filepath.Join(dir, "workclock.log"))

	// January 2024 is in the past, so it shows up only as the carried balance
	out, err = run(t, dir, "report", "--no-ui")
	require.NoError(t, err)
	assert.Contains(t, out, ledger.OpeningLabel)
	assert.Contains(t, out, "\t01:30:00\t")
	assert.NotContains(t, out, ledger.ClosingLabel)

	savePath := filepath.Join(dir, "report.txt")
	_, err = run(t, dir, "report", "--save", savePath)
	require.NoError(t, err)
	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\t01:30:00\t"+ledger.OpeningLabel+"\n")
}

func TestAddWithoutAmountFails(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "just", "words", "--date", "today")
	require.Error(t, err)
	assert.True(t, ledger.IsValidationError(err))
}

// stubAddTUI records what the wizard would have been opened with
func stubAddTUI(t *testing.T) *map[string]string {
	t.Helper()
	var got map[string]string
	orig := runAddTUI
	runAddTUI = func(save tui.AdjustmentSaver, threshold int64, prefilled map[string]string) error {
		got = prefilled
		return nil
	}
	t.Cleanup(func() { runAddTUI = orig })
	return &got
}

func TestAddWithoutArgsOpensWizard(t *testing.T) {
	got := stubAddTUI(t)

	_, err := run(t, t.TempDir(), "add")
	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.NotContains(t, *got, "hours")
}

func TestAddInteractivePrefillsWizard(t *testing.T) {
	got := stubAddTUI(t)

	_, err := run(t, t.TempDir(), "add", "-i", "--note", "train", "--date", "15/01/2024")
	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.Equal(t, "train", (*got)["note"])
	assert.Equal(t, "15/01/2024", (*got)["date"])

	_, err = run(t, t.TempDir(), "add", "-i", "1h30m", "train")
	require.NoError(t, err)
	assert.Equal(t, "1", (*got)["hours"])
	assert.Equal(t, "30", (*got)["minutes"])
	assert.Equal(t, "+", (*got)["sign"])
}

func TestAddInteractiveStillRejectsBadDate(t *testing.T) {
	stubAddTUI(t)

	_, err := run(t, t.TempDir(), "add", "-i", "on:31/02/2024")
	require.Error(t, err)
	assert.True(t, ledger.IsValidationError(err))
}

func TestAddOnFirstOfMonthWarns(t *testing.T) {
	out, err := run(t, t.TempDir(), "add", "8h", "--date", "01/01/2024")
	require.NoError(t, err)
	assert.Contains(t, out, ledger.MonthBoundaryNotice)
}

func TestReportPreviousReachesScreen(t *testing.T) {
	var gotPrevious bool
	var monthStart time.Time
	orig := runReportTUI
	runReportTUI = func(load tui.ReportLoader, save tui.ReportSaver, previous bool) error {
		gotPrevious = previous
		report, err := load(previous)
		if err == nil {
			monthStart = report.MonthStart
		}
		return err
	}
	t.Cleanup(func() { runReportTUI = orig })

	_, err := run(t, t.TempDir(), "report", "--previous")
	require.NoError(t, err)
	assert.True(t, gotPrevious)
	assert.Equal(t, ledger.MonthStart(ledger.PreviousMonthAnchor(time.Now())), monthStart)
}

func TestExportImportSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "2h", "--date", "2024-02-01", "--note", "train")
	require.NoError(t, err)

	out, err := run(t, dir, "export", filepath.Join(dir, "backup"))
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 session(s)")
	assert.FileExists(t, filepath.Join(dir, "backup.wclk"))

	out, err = run(t, dir, "import", filepath.Join(dir, "backup.wclk"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 1 session(s), 1 already present")
}

func TestPurgeAndAbout(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 session(s) of 120 seconds or less")

	out, err = run(t, dir, "about")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "data.sqlite"))
	assert.Contains(t, out, "Locale:")
}

type insertFunc func(context.Context, models.WorkSessionInput) (*models.WorkSession, error)

func (f insertFunc) Insert(ctx context.Context, in models.WorkSessionInput) (*models.WorkSession, error) {
	return f(ctx, in)
}

// steppingClock returns base, then base plus step, and so on
func steppingClock(base time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func TestPlainTimerRecordsNote(t *testing.T) {
	var got models.WorkSessionInput
	store := insertFunc(func(_ context.Context, in models.WorkSessionInput) (*models.WorkSession, error) {
		got = in
		return &models.WorkSession{ID: 1, Start: in.Start, Duration: in.Duration, Notes: in.Notes}, nil
	})
	base := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	rec := clock.NewRecorder(store, steppingClock(base, 90*time.Minute))

	var out bytes.Buffer
	row, err := runPlainTimer(context.Background(), strings.NewReader("\nstandup\n"), &out, rec)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, base.Unix(), got.Start)
	assert.Equal(t, int64(5400), got.Duration)
	assert.Equal(t, "standup", got.Notes)
	assert.Equal(t, clock.Idle, rec.State())
	assert.Contains(t, out.String(), "Stopped after 01:30:00")
}

func TestPlainTimerEmptyNoteStillRecords(t *testing.T) {
	calls := 0
	store := insertFunc(func(_ context.Context, in models.WorkSessionInput) (*models.WorkSession, error) {
		calls++
		assert.Empty(t, in.Notes)
		return &models.WorkSession{ID: 1}, nil
	})
	rec := clock.NewRecorder(store, steppingClock(time.Now(), time.Minute))

	_, err := runPlainTimer(context.Background(), strings.NewReader("\n"), io.Discard, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPlainTimerCancelledContextDiscards(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := insertFunc(func(context.Context, models.WorkSessionInput) (*models.WorkSession, error) {
		t.Fatal("nothing should be recorded")
		return nil, nil
	})
	rec := clock.NewRecorder(store, time.Now)

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	row, err := runPlainTimer(ctx, pr, io.Discard, rec)
	require.NoError(t, err)
	assert.Nil(t, row)
	assert.Equal(t, clock.Idle, rec.State())
}

func TestLastEntrySkipsBalanceLines(t *testing.T) {
	lines := []ledger.Line{
		{Notes: ledger.OpeningLabel, Kind: ledger.LineOpening},
		{Notes: "a", Kind: ledger.LineEntry},
		{Notes: "b", Kind: ledger.LineEntry},
		{Notes: ledger.ClosingLabel, Kind: ledger.LineClosing},
	}
	last, ok := lastEntry(lines)
	require.True(t, ok)
	assert.Equal(t, "b", last.Notes)

	_, ok = lastEntry(lines[:1])
	assert.False(t, ok)
}
