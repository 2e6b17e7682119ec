package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import timestamp events from spool files",
		Long: `Import externally recorded timer events from JSONL spool files, one JSON
object per line:

  {"user": "a@example.ch", "type": "start", "time": "2020-02-20T09:00:00Z"}

Already imported events are recognized and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.SpoolDir
			if len(args) == 1 {
				dir = config.ExpandPath(args[0])
			}

			ts, err := setup()
			if err != nil {
				return err
			}
			defer ts.Close()

			stats, err := ts.Import(dir)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Printf("Imported %d events from %d files (%d duplicates, %d files skipped)\n",
				stats.Imported, stats.Files, stats.Duplicates, stats.Skipped)
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
