package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Continuously import spool files as they appear",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.SpoolDir
			if len(args) == 1 {
				dir = config.ExpandPath(args[0])
			}

			if err := ensureDir(dir); err != nil {
				return fmt.Errorf("failed to create spool directory: %w", err)
			}

			ts, err := setup()
			if err != nil {
				return err
			}
			defer ts.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s, press Ctrl-C to stop\n", dir)
			return ts.Watch(ctx, dir)
		},
	}

	rootCmd.AddCommand(cmd)
}
