// Package store persists users, timestamp events and work entries in an
// embedded sqlite database. Timestamps are append-only: they are inserted by
// the record commands or the import pipeline and only ever read back in bulk,
// ordered, for normalization.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wbx/go-timer-workbench/internal/core/model"
)

const (
	// migration queries
	createUsersTableSQL = `
  CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	createTimestampsTableSQL = `
  CREATE TABLE IF NOT EXISTS timestamps (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  type TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  FOREIGN KEY (user_id) REFERENCES users(id)
  )`

	createTimestampsIndexSQL = `
  CREATE UNIQUE INDEX IF NOT EXISTS idx_timestamps_unique
  ON timestamps(user_id, type, created_at)`

	createWorkEntriesTableSQL = `
  CREATE TABLE IF NOT EXISTS work_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  hours REAL NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id)
  )`

	// user queries
	insertUserSQL     = `INSERT OR IGNORE INTO users (email) VALUES (?)`
	getUserByEmailSQL = `SELECT id, email FROM users WHERE email = ?`

	// timestamp queries
	insertTimestampSQL = `INSERT INTO timestamps (user_id, type, created_at, notes) VALUES (?, ?, ?, ?)`
	importTimestampSQL = `INSERT OR IGNORE INTO timestamps (user_id, type, created_at, notes) VALUES (?, ?, ?, ?)`
	timestampsForUserSQL = `
  SELECT id, user_id, type, created_at, notes
  FROM timestamps WHERE user_id = ?
  ORDER BY created_at, id`
	// MAX() would strip the declared column type and break time.Time
	// scanning, hence ORDER BY ... LIMIT 1.
	latestTimestampAtSQL = `
  SELECT created_at FROM timestamps WHERE user_id = ?
  ORDER BY created_at DESC, id DESC LIMIT 1`

	// work entry queries
	insertWorkEntrySQL = `INSERT INTO work_entries (user_id, hours, description, created_at) VALUES (?, ?, ?, ?)`
	latestWorkEntrySQL = `
  SELECT id, user_id, hours, description, created_at
  FROM work_entries WHERE user_id = ?
  ORDER BY created_at DESC, id DESC LIMIT 1`
	latestWorkEntryAtSQL = `
  SELECT created_at FROM work_entries WHERE user_id = ?
  ORDER BY created_at DESC, id DESC LIMIT 1`
)

// User is a registered owner of timestamp events.
type User struct {
	ID    int64
	Email string
}

type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at dbPath and runs the
// inline migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations() error {
	statements := []string{
		createUsersTableSQL,
		createTimestampsTableSQL,
		createTimestampsIndexSQL,
		createWorkEntriesTableSQL,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// EnsureUser returns the user with the given email, creating it if missing.
func (s *Store) EnsureUser(email string) (User, error) {
	if email == "" {
		return User{}, fmt.Errorf("user email must not be empty")
	}
	if _, err := s.db.Exec(insertUserSQL, email); err != nil {
		return User{}, err
	}
	return s.UserByEmail(email)
}

// UserByEmail looks up a user; sql.ErrNoRows is returned when unknown.
func (s *Store) UserByEmail(email string) (User, error) {
	var u User
	err := s.db.QueryRow(getUserByEmailSQL, email).Scan(&u.ID, &u.Email)
	return u, err
}

// CreateTimestamp records a timer button press.
func (s *Store) CreateTimestamp(userID int64, kind model.Kind, at time.Time, notes string) error {
	_, err := s.db.Exec(insertTimestampSQL, userID, kind.String(), at, notes)
	return err
}

// ImportTimestamp records an externally sourced event. Re-importing the same
// spool line is a no-op thanks to the unique index.
func (s *Store) ImportTimestamp(userID int64, kind model.Kind, at time.Time, notes string) (bool, error) {
	res, err := s.db.Exec(importTimestampSQL, userID, kind.String(), at, notes)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TimestampsForUser returns all of a user's events ordered by creation time,
// ties broken by insertion order. This is the ordering contract the
// normalizer relies on.
func (s *Store) TimestampsForUser(userID int64) ([]model.TimestampEvent, error) {
	rows, err := s.db.Query(timestampsForUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.TimestampEvent
	for rows.Next() {
		var ev model.TimestampEvent
		var kind string
		if err := rows.Scan(&ev.ID, &ev.UserID, &kind, &ev.CreatedAt, &ev.Notes); err != nil {
			return nil, err
		}
		ev.Kind, err = model.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %d: %w", ev.ID, err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CreateWorkEntry records a logged-hours entry from the separate time-entry
// workflow.
func (s *Store) CreateWorkEntry(userID int64, hours float64, description string, at time.Time) error {
	if hours <= 0 {
		return fmt.Errorf("work entry hours must be positive, got %v", hours)
	}
	_, err := s.db.Exec(insertWorkEntrySQL, userID, hours, description, at)
	return err
}

// LatestWorkEntry returns the user's most recent work entry, or nil when the
// user has none.
func (s *Store) LatestWorkEntry(userID int64) (*model.WorkEntry, error) {
	var entry model.WorkEntry
	err := s.db.QueryRow(latestWorkEntrySQL, userID).Scan(
		&entry.ID, &entry.UserID, &entry.Hours, &entry.Description, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// LatestActivity returns the time of the user's most recent timestamp or work
// entry, or nil when the user has neither.
func (s *Store) LatestActivity(userID int64) (*time.Time, error) {
	var latest *time.Time

	for _, query := range []string{latestTimestampAtSQL, latestWorkEntryAtSQL} {
		var at time.Time
		err := s.db.QueryRow(query, userID).Scan(&at)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		if latest == nil || at.After(*latest) {
			t := at
			latest = &t
		}
	}

	return latest, nil
}
