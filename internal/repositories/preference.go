package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/pictx/internal/shared"
)

// PreferenceRepository stores boolean preferences that survive restarts.
//
// It satisfies the gallery flag store contract: an unknown key reads as false.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Lookup retrieves a preference, returning [shared.ErrPreferenceNotFound] when it was never set.
func (r *PreferenceRepository) Lookup(key string) (bool, error) {
	var value int
	err := r.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", shared.ErrPreferenceNotFound, key)
	}
	if err != nil {
		return false, fmt.Errorf("failed to query preference: %w", err)
	}
	return value == 1, nil
}

// Get reads a preference, treating a missing key as false.
func (r *PreferenceRepository) Get(key string) (bool, error) {
	v, err := r.Lookup(key)
	if errors.Is(err, shared.ErrPreferenceNotFound) {
		return false, nil
	}
	return v, err
}

// Set inserts or overwrites a preference.
func (r *PreferenceRepository) Set(key string, value bool) error {
	if key == "" {
		return fmt.Errorf("%w: empty preference key", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, boolToInt(value), time.Now()); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

// Toggle flips a preference and returns the new value. A missing key toggles to true.
func (r *PreferenceRepository) Toggle(key string) (bool, error) {
	current, err := r.Get(key)
	if err != nil {
		return false, err
	}
	if err := r.Set(key, !current); err != nil {
		return false, err
	}
	return !current, nil
}

// Delete removes a preference.
func (r *PreferenceRepository) Delete(key string) error {
	result, err := r.db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: %s", shared.ErrPreferenceNotFound, key))
}

// List returns every stored preference.
func (r *PreferenceRepository) List() (map[string]bool, error) {
	rows, err := r.db.Query(`SELECT key, value FROM preferences ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	prefs := make(map[string]bool)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs[key] = value == 1
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return prefs, nil
}
