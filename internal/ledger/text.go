package ledger

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/google/renameio/v2"
)

// TextTimeLayout is how row timestamps appear in the plain-text report
const TextTimeLayout = "2006-01-02 15:04:05"

// WriteText writes one tab-separated "date, duration, notes" line per ledger row
func WriteText(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", l.Time.Format(TextTimeLayout), l.Duration, l.Notes); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveText writes the report to path atomically
func SaveText(path string, lines []Line) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer pending.Cleanup()

	if err := WriteText(pending, lines); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}

// DefaultReportName is the suggested file name for a report saved on day now
func DefaultReportName(now time.Time) string {
	return fmt.Sprintf("Report-%d-%d-%d.txt", now.Year(), int(now.Month()), now.Day())
}
