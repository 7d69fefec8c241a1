package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lunchmate/internal/model"
)

// AddExclusion inserts an exclusion entry. Returns false when the
// (name, address) pair already exists.
func AddExclusion(database *sql.DB, name, address, reason string) (bool, error) {
	_, err := database.Exec(
		"INSERT INTO exclusions (restaurant_name, address, reason) VALUES (?, ?, ?)",
		name, address, reason,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add exclusion: %w", err)
	}
	return true, nil
}

// RemoveExclusion deletes an exclusion by its composite key.
func RemoveExclusion(database *sql.DB, name, address string) error {
	_, err := database.Exec(
		"DELETE FROM exclusions WHERE restaurant_name = ? AND address = ?",
		name, address,
	)
	if err != nil {
		return fmt.Errorf("failed to remove exclusion: %w", err)
	}
	return nil
}

// IsExcluded reports whether the (name, address) pair is excluded.
func IsExcluded(database *sql.DB, name, address string) (bool, error) {
	var one int
	err := database.QueryRow(
		"SELECT 1 FROM exclusions WHERE restaurant_name = ? AND address = ?",
		name, address,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check exclusion: %w", err)
	}
	return true, nil
}

// ListExclusions returns all exclusions, newest first.
func ListExclusions(database *sql.DB) ([]model.ExclusionRow, error) {
	rows, err := database.Query(
		"SELECT id, restaurant_name, address, COALESCE(reason,''), created_at FROM exclusions ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list exclusions: %w", err)
	}
	defer rows.Close()

	var results []model.ExclusionRow
	for rows.Next() {
		var e model.ExclusionRow
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Address, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exclusions: %w", err)
	}
	return results, nil
}
