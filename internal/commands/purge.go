package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/workclock/internal/db"
	"github.com/balkashynov/workclock/internal/log"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove sessions too short to count",
	Long: `Delete every session whose duration, added or subtracted, is within the noise
threshold (120 seconds unless configured). Reports do this automatically.`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		n, err := store.DeleteNoise(cmd.Context(), -cfg.NoiseThreshold, cfg.NoiseThreshold)
		if err != nil {
			return err
		}
		logger := log.WithComponent("commands")
		logger.Info().Int64("removed", n).Int64("threshold", cfg.NoiseThreshold).Msg("noise purged")
		fmt.Fprintf(cmd.OutOrStdout(), "🧹 Removed %d session(s) of %d seconds or less\n", n, cfg.NoiseThreshold)
		return nil
	}),
}
