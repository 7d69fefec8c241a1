package ui

import (
	"fmt"
	"strings"

	"lunchmate/internal/model"
	"lunchmate/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// ResultsModel renders the ranked search results.
type ResultsModel struct {
	restaurants []model.Restaurant
	radiusUsed  int
	widened     bool
	cursor      int
}

func NewResultsModel(restaurants []model.Restaurant, radiusUsed int, widened bool) *ResultsModel {
	return &ResultsModel{
		restaurants: restaurants,
		radiusUsed:  radiusUsed,
		widened:     widened,
	}
}

func (m *ResultsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ResultsModel) MoveDown() {
	if m.cursor < len(m.restaurants)-1 {
		m.cursor++
	}
}

// Selected returns the restaurant under the cursor, or nil when empty.
func (m *ResultsModel) Selected() *model.Restaurant {
	if len(m.restaurants) == 0 {
		return nil
	}
	return &m.restaurants[m.cursor]
}

// View renders the list.
func (m *ResultsModel) View(width, height int) string {
	if len(m.restaurants) == 0 {
		return EmptyStateStyle.Render(fmt.Sprintf(
			"반경 %dm까지 넓혔지만 결과가 없습니다.\n검색어를 바꾸거나 반경을 넓혀 보세요.", m.radiusUsed))
	}

	var lines []string
	if m.widened {
		lines = append(lines, WarningStyle.Render(
			fmt.Sprintf("요청 반경에 결과가 없어 %dm까지 넓혔습니다", m.radiusUsed)))
		lines = append(lines, "")
	}

	for i, r := range m.restaurants {
		category := shortCategory(r.Category)
		distance := r.DistanceText
		if !r.GeoValid {
			distance = "위치 불명"
		}

		line := fmt.Sprintf(" %2d. %s  %s · %s · %s",
			i+1,
			util.Truncate(r.Name, 24),
			category,
			distance,
			r.WalkingTime)
		if r.Price != "" {
			line += " · " + r.Price
		}

		if i == m.cursor {
			lines = append(lines, SelectedRowStyle.Width(width).Render(line))
		} else {
			lines = append(lines, NormalRowStyle.Render(line))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// shortCategory keeps only the most specific segment of the vendor's
// "음식점>한식>육류" style category path.
func shortCategory(category string) string {
	parts := strings.Split(util.StripHTML(category), ">")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return "기타"
	}
	return last
}
