package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"lunchmate/internal/model"
)

// ReadFavoritesCSV parses an exported favorites sheet. The header row may
// use either English or Korean column names; name (식당명) is required,
// address (주소) and memo (메모) are optional. Rows with a blank name are
// skipped.
func ReadFavoritesCSV(r io.Reader) ([]model.FavoriteRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	nameIdx, addrIdx, memoIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "식당명":
			nameIdx = i
		case "address", "주소":
			addrIdx = i
		case "memo", "메모":
			memoIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("csv missing name column (name or 식당명)")
	}

	var rows []model.FavoriteRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		name := field(record, nameIdx)
		if name == "" {
			continue
		}
		rows = append(rows, model.FavoriteRow{
			Name:    name,
			Address: field(record, addrIdx),
			Memo:    field(record, memoIdx),
		})
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
