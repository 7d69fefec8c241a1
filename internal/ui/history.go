package ui

import (
	"fmt"
	"strings"

	"lunchmate/internal/model"
	"lunchmate/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// HistoryModel renders recent lunch selections.
type HistoryModel struct {
	rows   []model.HistoryRow
	cursor int
}

func NewHistoryModel(rows []model.HistoryRow) *HistoryModel {
	return &HistoryModel{rows: rows}
}

func (m *HistoryModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *HistoryModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

func (m *HistoryModel) View(width, height int) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.Render("아직 기록이 없습니다.")
	}

	var lines []string
	for i, row := range m.rows {
		date := row.ReservationDate
		if date == "" {
			date = row.CreatedAt.Format("2006-01-02")
		}
		line := fmt.Sprintf(" %s  %s", date, util.Truncate(row.RestaurantName, 24))
		if row.ReservationTime != "" {
			line += " " + row.ReservationTime
		}
		if row.PartySize > 0 {
			line += fmt.Sprintf(" %d명", row.PartySize)
		}
		if row.CuisineType != "" {
			line += "  " + row.CuisineType
		}

		if i == m.cursor {
			lines = append(lines, SelectedRowStyle.Width(width).Render(line))
		} else {
			lines = append(lines, NormalRowStyle.Render(line))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
