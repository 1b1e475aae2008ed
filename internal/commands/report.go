package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/log"
	"github.com/balkashynov/workclock/internal/tui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly ledger",
	Long: `Show the ledger of the current month: the balance carried over, every entry and the
current balance. Sessions of two minutes or less are removed before the report is built.

Examples:
  workclock report                      # Interactive ledger
  workclock report --previous --no-ui   # Previous month as text
  workclock report --save january.txt   # Save the text report`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		logger := log.WithComponent("commands")
		reporter := newReporter(store)
		ctx := cmd.Context()

		load := func(previous bool) (*ledger.Report, error) {
			anchor := time.Now()
			if previous {
				anchor = ledger.PreviousMonthAnchor(anchor)
			}
			return reporter.Monthly(ctx, anchor)
		}

		previous, _ := cmd.Flags().GetBool("previous")
		noUI, _ := cmd.Flags().GetBool("no-ui")
		savePath, _ := cmd.Flags().GetString("save")

		if !noUI && savePath == "" {
			return runReportTUI(load, ledger.SaveText, previous)
		}

		report, err := load(previous)
		if err != nil {
			return err
		}
		if savePath != "" {
			if err := ledger.SaveText(savePath, report.Lines); err != nil {
				return err
			}
			logger.Info().Str("path", savePath).Int("lines", len(report.Lines)).Msg("report saved")
			fmt.Fprintf(cmd.ErrOrStderr(), "💾 Report saved to %s\n", savePath)
		}
		if noUI {
			if len(report.Lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
				return nil
			}
			return ledger.WriteText(cmd.OutOrStdout(), report.Lines)
		}
		return nil
	}),
}

// runReportTUI opens the ledger screen; tests replace it
var runReportTUI = tui.RunReportTUI

func init() {
	reportCmd.Flags().Bool("previous", false, "Report the previous month")
	reportCmd.Flags().Bool("no-ui", false, "Print the report as text")
	reportCmd.Flags().String("save", "", "Save the text report to `FILE`")
}
