// Package timesheet wires the store, the spool import pipeline and the
// normalizer together. It owns the one cross-entity lookup the normalizer
// itself stays free of: turning the latest logged-hours entry into a Seed.
package timesheet

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wbx/go-timer-workbench/internal/core/model"
	"github.com/wbx/go-timer-workbench/internal/core/timer"
	"github.com/wbx/go-timer-workbench/internal/data/parser"
	"github.com/wbx/go-timer-workbench/internal/data/scanner"
	"github.com/wbx/go-timer-workbench/internal/data/store"
	"github.com/wbx/go-timer-workbench/internal/data/watcher"
	"github.com/wbx/go-timer-workbench/internal/util"
)

type Config struct {
	DBPath      string
	SpoolDir    string
	Concurrency int
}

type Timesheet struct {
	config *Config
	store  *store.Store
	parser *parser.Parser
}

// DaySummary is the per-day aggregation consumed by the report command.
type DaySummary struct {
	Day   string
	Rows  int
	Hours float64
}

// ImportStats summarizes one spool import run.
type ImportStats struct {
	Files      int
	Imported   int
	Duplicates int
	Skipped    int
}

func New(config *Config) (*Timesheet, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = 4
	}

	s, err := store.Open(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &Timesheet{
		config: config,
		store:  s,
		parser: parser.NewParser(config.Concurrency),
	}, nil
}

func (t *Timesheet) Close() error {
	return t.store.Close()
}

// RecordTimestamp stores a timer button press for the user, creating the user
// on first use.
func (t *Timesheet) RecordTimestamp(email string, kind model.Kind, at time.Time, notes string) error {
	u, err := t.store.EnsureUser(email)
	if err != nil {
		return err
	}
	if err := t.store.CreateTimestamp(u.ID, kind, at, notes); err != nil {
		return err
	}
	util.LogDebugf("Recorded %s for %s at %s", kind, email, at.Format(time.RFC3339))
	return nil
}

// LogHours stores a work entry from the separate time-entry workflow.
func (t *Timesheet) LogHours(email string, hours float64, description string, at time.Time) error {
	u, err := t.store.EnsureUser(email)
	if err != nil {
		return err
	}
	return t.store.CreateWorkEntry(u.ID, hours, description, at)
}

// Rows returns the normalized timestamp rows for the user. Unknown users have
// no history and yield an empty result, not an error.
func (t *Timesheet) Rows(email string) ([]model.NormalizedRow, error) {
	start := time.Now()

	u, err := t.store.UserByEmail(email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	events, err := t.store.TimestampsForUser(u.ID)
	if err != nil {
		return nil, err
	}

	seed, err := t.seedFor(u.ID)
	if err != nil {
		return nil, err
	}

	rows := timer.Normalize(events, seed)
	util.LogDebugf("Normalized %d events into %d rows for %s in %v",
		len(events), len(rows), email, time.Since(start))
	return rows, nil
}

// seedFor builds the optional normalizer seed from the user's latest
// logged-hours entry.
func (t *Timesheet) seedFor(userID int64) (*timer.Seed, error) {
	latest, err := t.store.LatestWorkEntry(userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return &timer.Seed{
		At:    latest.CreatedAt,
		Notes: "Logbook: " + latest.Description,
	}, nil
}

// Status summarizes the user's current timer state.
type Status struct {
	LastKind       model.Kind // zero value when the user has no rows
	Running        bool
	LatestActivity *time.Time
}

// UserStatus reports whether the user has an open run and when they were last
// active, counting both timestamps and work entries.
func (t *Timesheet) UserStatus(email string) (Status, error) {
	var status Status

	u, err := t.store.UserByEmail(email)
	if err == sql.ErrNoRows {
		return status, nil
	}
	if err != nil {
		return status, err
	}

	rows, err := t.Rows(email)
	if err != nil {
		return status, err
	}
	if len(rows) > 0 {
		status.LastKind = rows[len(rows)-1].Kind
		status.Running = status.LastKind != model.KindStop
	}

	status.LatestActivity, err = t.store.LatestActivity(u.ID)
	return status, err
}

// Report groups the user's normalized rows by calendar day and sums the
// elapsed hours. days limits the result to the most recent N days; zero means
// everything.
func (t *Timesheet) Report(email string, days int) ([]DaySummary, error) {
	rows, err := t.Rows(email)
	if err != nil {
		return nil, err
	}

	tp := util.GetTimeProvider()
	var cutoff string
	if days > 0 {
		cutoff = tp.DayKey(tp.Now().AddDate(0, 0, -(days - 1)))
	}

	byDay := make(map[string]*DaySummary)
	for _, row := range rows {
		day := tp.DayKey(row.Timestamp.CreatedAt)
		if cutoff != "" && day < cutoff {
			continue
		}
		summary, ok := byDay[day]
		if !ok {
			summary = &DaySummary{Day: day}
			byDay[day] = summary
		}
		summary.Rows++
		if row.Elapsed != nil {
			summary.Hours += *row.Elapsed
		}
	}

	summaries := make([]DaySummary, 0, len(byDay))
	for _, summary := range byDay {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Day < summaries[j].Day
	})
	return summaries, nil
}

// Import runs a one-shot import of every spool file in dir.
func (t *Timesheet) Import(dir string) (ImportStats, error) {
	start := time.Now()
	stats := ImportStats{}

	files, err := scanner.NewFileScanner(dir).Scan()
	if err != nil {
		return stats, fmt.Errorf("failed to scan spool directory: %w", err)
	}
	if len(files) == 0 {
		util.LogInfo("No spool files found")
		return stats, nil
	}
	stats.Files = len(files)

	users := make(map[string]int64)
	for result := range t.parser.ParseFiles(files) {
		if result.Error != nil {
			stats.Skipped++
			continue
		}
		for _, event := range result.Events {
			if err := t.importEvent(users, event, &stats); err != nil {
				return stats, err
			}
		}
	}

	util.LogInfof("Spool import finished in %v: %d files, %d imported, %d duplicates",
		time.Since(start), stats.Files, stats.Imported, stats.Duplicates)
	return stats, nil
}

func (t *Timesheet) importEvent(users map[string]int64, event parser.SpoolEvent, stats *ImportStats) error {
	userID, ok := users[event.User]
	if !ok {
		u, err := t.store.EnsureUser(event.User)
		if err != nil {
			return err
		}
		userID = u.ID
		users[event.User] = userID
	}

	inserted, err := t.store.ImportTimestamp(userID, event.Kind, event.CreatedAt, event.Notes)
	if err != nil {
		return err
	}
	if inserted {
		stats.Imported++
	} else {
		stats.Duplicates++
	}
	return nil
}

// Watch imports the spool directory once, then keeps importing files as they
// are written until the context is cancelled.
func (t *Timesheet) Watch(ctx context.Context, dir string) error {
	if _, err := t.Import(dir); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher([]string{dir})
	if err != nil {
		return fmt.Errorf("failed to watch spool directory: %w", err)
	}
	defer fw.Close()

	util.LogInfof("Watching spool directory: %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if !strings.Contains(event.Operation, "CREATE") && !strings.Contains(event.Operation, "WRITE") {
				continue
			}
			if err := t.importFile(event.Path); err != nil {
				util.LogErrorf("Failed to import %s: %v", event.Path, err)
			}
		}
	}
}

func (t *Timesheet) importFile(path string) error {
	// The parser caches by path; a fresh instance sees appended lines.
	events, err := parser.NewParser(1).ParseFile(path)
	if err != nil {
		return err
	}

	stats := ImportStats{}
	users := make(map[string]int64)
	for _, event := range events {
		if err := t.importEvent(users, event, &stats); err != nil {
			return err
		}
	}
	if stats.Imported > 0 {
		util.LogInfof("Imported %d events from %s", stats.Imported, path)
	}
	return nil
}
