package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wbx/go-timer-workbench/internal/config"
	"github.com/wbx/go-timer-workbench/internal/presentation/formatter"
	"github.com/wbx/go-timer-workbench/internal/timesheet"
	"github.com/wbx/go-timer-workbench/internal/util"
)

var (
	// Logging related
	debug bool

	// Data location
	dbPath string

	// Acting user
	userEmail string

	// Output related
	outputFormat string
	timezone     string

	cfg = config.Load()

	rootCmd = &cobra.Command{
		Use:   "go-timer-workbench [flags]",
		Short: "Workday timestamp tracking and normalization",
		Long: `go-timer-workbench records timer button presses (start, split, stop) and
reconstructs a canonical, gap-free view of the workday from them: redundant
stops are dropped, a start while already running becomes a split, a split with
no open run becomes a start, and every retained row carries the elapsed
decimal hours since the previous one.

Without a subcommand it prints the normalized timestamp rows for the user.

Examples:
  go-timer-workbench --user a@example.ch            # Show normalized rows
  go-timer-workbench start --notes "offer #1231"    # Punch in
  go-timer-workbench split                          # Switch tasks
  go-timer-workbench stop                           # Punch out
  go-timer-workbench log 1.5 "customer call"        # Log hours directly
  go-timer-workbench report --days 7                # Per-day elapsed totals
  go-timer-workbench import                         # One-shot spool import
  go-timer-workbench watch                          # Continuous spool import`,
		RunE: runShow,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath,
		"Database file path")
	rootCmd.PersistentFlags().StringVarP(&userEmail, "user", "u", cfg.User,
		"Email of the user the command acts for")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", cfg.Timezone,
		"Timezone setting (e.g. Europe/Zurich, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// setup initializes logging and the time provider, then opens the timesheet.
// Callers own the returned timesheet and must Close it.
func setup() (*timesheet.Timesheet, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, cfg.LogFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	return timesheet.New(&timesheet.Config{
		DBPath:      dbPath,
		SpoolDir:    cfg.SpoolDir,
		Concurrency: cfg.Concurrency,
	})
}

func requireUser() (string, error) {
	if userEmail == "" {
		return "", fmt.Errorf("no user specified (use --user or set WORKBENCH_USER)")
	}
	return userEmail, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	ts, err := setup()
	if err != nil {
		return err
	}
	defer ts.Close()

	rows, err := ts.Rows(user)
	if err != nil {
		return fmt.Errorf("failed to load timestamps: %w", err)
	}

	f, err := formatter.New(outputFormat, os.Stdout)
	if err != nil {
		return err
	}
	return f.FormatRows(formatter.RowViews(rows, util.GetTimeProvider()))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
