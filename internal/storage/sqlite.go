// Package storage provides SQLite-based persistence for calibration profiles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Profile is the calibration recorded for one capture device.
type Profile struct {
	Device    string
	Min       float64
	Max       float64
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS calibration_profiles (
			device TEXT PRIMARY KEY,
			min_amplitude REAL NOT NULL,
			max_amplitude REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProfile stores the calibration for device, replacing any previous one.
func (s *Store) SaveProfile(device string, min, max float64) error {
	_, err := s.db.Exec(
		`INSERT INTO calibration_profiles (device, min_amplitude, max_amplitude, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(device) DO UPDATE SET
			min_amplitude = excluded.min_amplitude,
			max_amplitude = excluded.max_amplitude,
			updated_at = CURRENT_TIMESTAMP`,
		device, min, max,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// Profile returns the stored calibration for device. The bool is false when
// none exists.
func (s *Store) Profile(device string) (Profile, bool, error) {
	var p Profile
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT device, min_amplitude, max_amplitude, updated_at
		 FROM calibration_profiles
		 WHERE device = ?`,
		device,
	).Scan(&p.Device, &p.Min, &p.Max, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return p, true, nil
}

// Profiles returns every stored calibration ordered by device name.
func (s *Store) Profiles() ([]Profile, error) {
	rows, err := s.db.Query(
		`SELECT device, min_amplitude, max_amplitude, updated_at
		 FROM calibration_profiles
		 ORDER BY device`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var updatedAt any
		if err := rows.Scan(&p.Device, &p.Min, &p.Max, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteProfile removes the calibration for device. It reports whether a
// row was deleted.
func (s *Store) DeleteProfile(device string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM calibration_profiles WHERE device = ?", device)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// ClearProfiles deletes every stored calibration and returns how many were removed.
func (s *Store) ClearProfiles() (int64, error) {
	result, err := s.db.Exec("DELETE FROM calibration_profiles")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear profiles: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// parseTime handles drivers returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
