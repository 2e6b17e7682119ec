package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/core/model"
	"github.com/wbx/go-timer-workbench/internal/util"
)

func init() {
	rootCmd.AddCommand(
		newRecordCmd(model.KindStart, "Mark the beginning of a work interval"),
		newRecordCmd(model.KindSplit, "Mark a task switch without stopping"),
		newRecordCmd(model.KindStop, "Mark the end of a work interval"),
	)
}

func newRecordCmd(kind model.Kind, short string) *cobra.Command {
	var notes string
	var at string

	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}

			ts, err := setup()
			if err != nil {
				return err
			}
			defer ts.Close()

			when, err := parseAt(at)
			if err != nil {
				return err
			}

			if err := ts.RecordTimestamp(user, kind, when, notes); err != nil {
				return fmt.Errorf("failed to record %s: %w", kind, err)
			}

			tp := util.GetTimeProvider()
			fmt.Printf("Recorded %s for %s at %s\n", kind, user, tp.Format(when, "2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-text notes for this timestamp")
	cmd.Flags().StringVar(&at, "at", "", "Timestamp to record instead of now (RFC3339)")
	return cmd
}

// parseAt returns now when the flag was left empty.
func parseAt(at string) (time.Time, error) {
	if at == "" {
		return util.GetTimeProvider().Now(), nil
	}
	when, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: %w", at, err)
	}
	return when, nil
}
