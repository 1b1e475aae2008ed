package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/ledger"
	"github.com/balkashynov/workclock/internal/log"
	"github.com/balkashynov/workclock/internal/models"
	"github.com/balkashynov/workclock/internal/parser"
	"github.com/balkashynov/workclock/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [amount] [note...]",
	Short: "Add or subtract time by hand",
	Long: `Record a manual correction. The entry starts at midnight of the chosen day.
Without arguments, or with -i, an interactive wizard asks for each field.

Amounts: 1h30m, 2h, 45m, 1.5h, 1:30. Prefix with - to subtract (put -- before it).
Dates: today, yesterday, "3 days ago", dd/mm/yyyy, yyyy-mm-dd.

Examples:
  workclock add 1h30m forgot to start the clock
  workclock add -- -45m dentist on:yesterday
  workclock add 2h --date 15/01/2024 --note "train ride"`,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		ctx := cmd.Context()
		now := time.Now()
		interactive, _ := cmd.Flags().GetBool("interactive")
		dateFlag, _ := cmd.Flags().GetString("date")
		noteFlag, _ := cmd.Flags().GetString("note")

		wizard := interactive || len(args) == 0

		// The wizard asks for the amount itself
		parsed := parser.ParseEntry(strings.Join(args, " "), now)
		if err := parsed.Err(!wizard); err != nil {
			return err
		}

		date := now
		if parsed.Date != nil {
			date = *parsed.Date
		}
		if dateFlag != "" {
			d, err := parser.ParseDate(dateFlag, now)
			if err != nil {
				return err
			}
			date = d
		}
		note := parsed.Note
		if cmd.Flags().Changed("note") {
			note = noteFlag
		}

		save := func(a ledger.Adjustment) (*models.WorkSession, error) {
			return insertAdjustment(ctx, store, a)
		}

		if wizard {
			prefilled := map[string]string{"note": note}
			if parsed.Date != nil || dateFlag != "" {
				prefilled["date"] = parser.FormatDate(date)
			}
			if parsed.HasAmount {
				prefilled["sign"] = string(parsed.Amount.Sign)
				prefilled["hours"] = strconv.FormatFloat(parsed.Amount.Hours, 'f', -1, 64)
				prefilled["minutes"] = strconv.FormatFloat(parsed.Amount.Minutes, 'f', -1, 64)
			}
			return runAddTUI(save, cfg.NoiseThreshold, prefilled)
		}

		row, err := save(ledger.Adjustment{
			Date:    date,
			Sign:    parsed.Amount.Sign,
			Hours:   parsed.Amount.Hours,
			Minutes: parsed.Amount.Minutes,
			Note:    note,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Recorded %s on %s - ID: %d\n",
			ledger.FormatSigned(row.Duration), parser.FormatDate(time.Unix(row.Start, 0)), row.ID)
		if row.Duration >= -cfg.NoiseThreshold && row.Duration <= cfg.NoiseThreshold {
			fmt.Fprintf(cmd.OutOrStdout(), "Entries of %d seconds or less are discarded at the next report.\n", cfg.NoiseThreshold)
		}
		if ledger.StartsMonth(time.Unix(row.Start, 0)) {
			fmt.Fprintln(cmd.OutOrStdout(), ledger.MonthBoundaryNotice)
		}
		return nil
	}),
}

// runAddTUI opens the wizard; tests replace it
var runAddTUI = tui.RunAddTUI

// insertAdjustment validates a manual entry and stores it
func insertAdjustment(ctx context.Context, store *db.Store, a ledger.Adjustment) (*models.WorkSession, error) {
	in, err := a.Input()
	if err != nil {
		return nil, err
	}
	row, err := store.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	logger := log.WithComponent("commands")
	logger.Info().
		Int64("id", row.ID).
		Int64("start", row.Start).
		Int64("duration", row.Duration).
		Msg("manual entry recorded")
	return row, nil
}

func init() {
	addCmd.Flags().String("date", "", "Day of the entry (default today)")
	addCmd.Flags().String("note", "", "Note for the entry")
	addCmd.Flags().BoolP("interactive", "i", false, "Open the interactive wizard")
}
