package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/locale"
)

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"version"},
	Short:   "Show version and where data is kept",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		tag := locale.Detect()

		fmt.Fprintf(out, "workclock %s (commit %s, built %s)\n\n", version, commit, date)
		fmt.Fprintf(out, "Database:  %s\n", cfg.DatabasePath())

		info, err := os.Stat(cfg.DatabasePath())
		switch {
		case err == nil:
			fmt.Fprintf(out, "           %s, modified %s\n", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintln(out, "           not created yet")
		default:
			fmt.Fprintf(out, "           %v\n", err)
		}

		fmt.Fprintf(out, "Log file:  %s\n", cfg.LogPath())
		if configPath != "" {
			fmt.Fprintf(out, "Config:    %s\n", configPath)
		}
		fmt.Fprintf(out, "Locale:    %s (%s)\n", tag, locale.Base(tag))
		fmt.Fprintf(out, "Threshold: %d seconds\n", cfg.NoiseThreshold)
		return nil
	},
}
