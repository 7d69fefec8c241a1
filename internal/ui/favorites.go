package ui

import (
	"fmt"
	"strings"

	"lunchmate/internal/model"
	"lunchmate/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// FavoritesModel renders the saved favorites.
type FavoritesModel struct {
	rows   []model.FavoriteRow
	cursor int
}

func NewFavoritesModel(rows []model.FavoriteRow) *FavoritesModel {
	return &FavoritesModel{rows: rows}
}

func (m *FavoritesModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *FavoritesModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

func (m *FavoritesModel) Selected() *model.FavoriteRow {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *FavoritesModel) View(width, height int) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.Render("저장된 즐겨찾기가 없습니다.")
	}

	var lines []string
	for i, row := range m.rows {
		line := fmt.Sprintf(" ★ %s", util.Truncate(row.Name, 24))
		if row.Address != "" {
			line += "  " + util.Truncate(row.Address, 32)
		}
		if row.Memo != "" {
			line += "  (" + util.Truncate(row.Memo, 20) + ")"
		}

		if i == m.cursor {
			lines = append(lines, SelectedRowStyle.Width(width).Render(line))
		} else {
			lines = append(lines, NormalRowStyle.Render(line))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
