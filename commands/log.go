package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	var at string

	cmd := &cobra.Command{
		Use:   "log <hours> [description...]",
		Short: "Log worked hours through the duration-based workflow",
		Long: `Log a duration-based work entry, independent of the timer buttons. The
latest entry also serves as an implicit start marker for the normalized
timestamp view.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}

			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid hours value %q: %w", args[0], err)
			}
			description := strings.Join(args[1:], " ")

			ts, err := setup()
			if err != nil {
				return err
			}
			defer ts.Close()

			when, err := parseAt(at)
			if err != nil {
				return err
			}

			if err := ts.LogHours(user, hours, description, when); err != nil {
				return fmt.Errorf("failed to log hours: %w", err)
			}

			fmt.Printf("Logged %.1fh for %s\n", hours, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Creation time to record instead of now (RFC3339)")
	rootCmd.AddCommand(cmd)
}
