package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/util"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a run is open and when the user was last active",
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

			status, err := ts.UserStatus(user)
			if err != nil {
				return fmt.Errorf("failed to load status: %w", err)
			}

			if status.Running {
				fmt.Printf("%s is running (last event: %s)\n", user, status.LastKind)
			} else {
				fmt.Printf("%s is not running\n", user)
			}

			if status.LatestActivity != nil {
				tp := util.GetTimeProvider()
				fmt.Printf("Last activity: %s (%s ago)\n",
					tp.Format(*status.LatestActivity, "2006-01-02 15:04"),
					util.FormatDuration(tp.Now().Sub(*status.LatestActivity)))
			}
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
