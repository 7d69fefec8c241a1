package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lunchmate/internal/model"
)

// AddFavorite inserts a favorite. Returns false when the (name, address)
// pair already exists.
func AddFavorite(database *sql.DB, name, address, memo string) (bool, error) {
	_, err := database.Exec(
		"INSERT INTO favorites (restaurant_name, address, memo) VALUES (?, ?, ?)",
		name, address, memo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// RemoveFavorite deletes a favorite by its composite key.
func RemoveFavorite(database *sql.DB, name, address string) error {
	_, err := database.Exec(
		"DELETE FROM favorites WHERE restaurant_name = ? AND address = ?",
		name, address,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether the (name, address) pair is a favorite.
func IsFavorite(database *sql.DB, name, address string) (bool, error) {
	var one int
	err := database.QueryRow(
		"SELECT 1 FROM favorites WHERE restaurant_name = ? AND address = ?",
		name, address,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns all favorites, newest first.
func ListFavorites(database *sql.DB) ([]model.FavoriteRow, error) {
	return queryFavorites(database,
		"SELECT id, restaurant_name, address, COALESCE(memo,''), created_at FROM favorites ORDER BY created_at DESC, id DESC")
}

// SearchFavorites returns favorites whose name, address, or memo contains
// the query string.
func SearchFavorites(database *sql.DB, query string) ([]model.FavoriteRow, error) {
	pattern := "%" + query + "%"
	return queryFavorites(database,
		"SELECT id, restaurant_name, address, COALESCE(memo,''), created_at FROM favorites WHERE restaurant_name LIKE ? OR address LIKE ? OR memo LIKE ? ORDER BY created_at DESC, id DESC",
		pattern, pattern, pattern)
}

// ImportFavorites bulk-adds favorites, skipping duplicates. Returns the
// number actually inserted.
func ImportFavorites(database *sql.DB, rows []model.FavoriteRow) (int, error) {
	count := 0
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		added, err := AddFavorite(database, row.Name, row.Address, row.Memo)
		if err != nil {
			return count, err
		}
		if added {
			count++
		}
	}
	return count, nil
}

func queryFavorites(database *sql.DB, query string, args ...interface{}) ([]model.FavoriteRow, error) {
	rows, err := database.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var results []model.FavoriteRow
	for rows.Next() {
		var f model.FavoriteRow
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.Memo, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			f.CreatedAt = t
		}
		results = append(results, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}
	return results, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
