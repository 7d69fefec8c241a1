package db

import (
	"database/sql"
	"fmt"
	"time"

	"lunchmate/internal/model"
)

// AppendHistory records a selected restaurant / reservation attempt.
// The history table is append-only.
func AppendHistory(database *sql.DB, entry model.NewHistoryEntry) error {
	_, err := database.Exec(
		`INSERT INTO search_history
		    (restaurant_name, address, phone, cuisine_type, area,
		     reservation_date, reservation_time, party_size, link)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RestaurantName,
		entry.Address,
		entry.Phone,
		entry.CuisineType,
		entry.Area,
		entry.ReservationDate,
		entry.ReservationTime,
		entry.PartySize,
		entry.Link,
	)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent history records.
func ListHistory(database *sql.DB, limit int) ([]model.HistoryRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(
		`SELECT id, restaurant_name, COALESCE(address,''), COALESCE(phone,''),
		        COALESCE(cuisine_type,''), COALESCE(area,''),
		        COALESCE(reservation_date,''), COALESCE(reservation_time,''),
		        COALESCE(party_size,0), COALESCE(link,''), created_at
		 FROM search_history
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var results []model.HistoryRow
	for rows.Next() {
		var h model.HistoryRow
		var createdAt string
		if err := rows.Scan(&h.ID, &h.RestaurantName, &h.Address, &h.Phone,
			&h.CuisineType, &h.Area, &h.ReservationDate, &h.ReservationTime,
			&h.PartySize, &h.Link, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			h.CreatedAt = t
		}
		results = append(results, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return results, nil
}
