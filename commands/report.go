package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/presentation/formatter"
)

func init() {
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-day elapsed hour totals",
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

			summaries, err := ts.Report(user, days)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			views := make([]formatter.DayView, len(summaries))
			for i, summary := range summaries {
				views[i] = formatter.DayView{
					Date:  summary.Day,
					Rows:  summary.Rows,
					Hours: summary.Hours,
				}
			}

			f, err := formatter.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			return f.FormatDays(views)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to include (0 = all)")
	rootCmd.AddCommand(cmd)
}
