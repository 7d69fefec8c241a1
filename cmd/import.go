package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"lunchmate/internal/db"
	"lunchmate/internal/parser"
)

// ImportFavoritesCSV bulk-loads favorites from an exported sheet. Returns
// the number of newly inserted rows; already-known entries are skipped.
func ImportFavoritesCSV(database *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	rows, err := parser.ReadFavoritesCSV(f)
	if err != nil {
		return 0, err
	}

	return db.ImportFavorites(database, rows)
}

// AddFavoriteFromURL resolves a shared map link and saves the place as a
// favorite. Returns the resolved restaurant name.
func AddFavoriteFromURL(ctx context.Context, database *sql.DB, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	place, err := parser.NewPlaceParser().ParsePlaceURL(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if place == nil {
		return "", fmt.Errorf("could not identify a place in %q", rawURL)
	}

	added, err := db.AddFavorite(database, place.Name, place.Address, place.Category)
	if err != nil {
		return "", err
	}
	if !added {
		return place.Name, fmt.Errorf("%s is already a favorite", place.Name)
	}
	return place.Name, nil
}
