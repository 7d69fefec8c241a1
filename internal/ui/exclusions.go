package ui

import (
	"fmt"
	"strings"

	"lunchmate/internal/model"
	"lunchmate/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// ExclusionsModel renders the exclusion list.
type ExclusionsModel struct {
	rows   []model.ExclusionRow
	cursor int
}

func NewExclusionsModel(rows []model.ExclusionRow) *ExclusionsModel {
	return &ExclusionsModel{rows: rows}
}

func (m *ExclusionsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ExclusionsModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

func (m *ExclusionsModel) Selected() *model.ExclusionRow {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *ExclusionsModel) View(width, height int) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.Render("제외된 식당이 없습니다.")
	}

	var lines []string
	for i, row := range m.rows {
		line := fmt.Sprintf(" ✕ %s", util.Truncate(row.Name, 24))
		if row.Address != "" {
			line += "  " + util.Truncate(row.Address, 32)
		}
		if row.Reason != "" {
			line += "  (" + util.Truncate(row.Reason, 20) + ")"
		}

		if i == m.cursor {
			lines = append(lines, SelectedRowStyle.Width(width).Render(line))
		} else {
			lines = append(lines, NormalRowStyle.Render(line))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
