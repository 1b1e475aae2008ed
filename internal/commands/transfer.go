package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/log"
	"github.com/balkashynov/workclock/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export every session to a file",
	Long: `Write every recorded session to a ` + transfer.Extension + ` file that import can read back.

Examples:
  workclock export                   # workclock-2024-01-31.wclk
  workclock export backup            # backup.wclk`,
	Args: cobra.MaximumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		path := "workclock-" + time.Now().Format("2006-01-02")
		if len(args) == 1 {
			path = args[0]
		}
		if filepath.Ext(path) == "" {
			path += transfer.Extension
		}

		n, err := transfer.Export(cmd.Context(), store, path)
		if err != nil {
			return err
		}
		logger := log.WithComponent("transfer")
		logger.Info().Str("path", path).Int("sessions", n).Msg("exported")
		fmt.Fprintf(cmd.OutOrStdout(), "📦 Exported %d session(s) to %s\n", n, path)
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from an export file",
	Long:  `Read a ` + transfer.Extension + ` file and add its sessions. Sessions already in the ledger are skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		res, err := transfer.Import(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		logger := log.WithComponent("transfer")
		logger.Info().
			Str("path", args[0]).
			Int("read", res.Read).
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Msg("imported")
		fmt.Fprintf(cmd.OutOrStdout(), "📥 Imported %d of %d session(s), %d already present\n", res.Inserted, res.Read, res.Skipped)
		return nil
	}),
}
