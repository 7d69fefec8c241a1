package ui

import (
	"fmt"
	"strings"

	"lunchmate/internal/model"
	"lunchmate/internal/util"
)

// DetailModel renders one restaurant with its enrichment data.
type DetailModel struct {
	restaurant model.Restaurant
	favorite   bool
}

func NewDetailModel(r model.Restaurant, favorite bool) *DetailModel {
	return &DetailModel{restaurant: r, favorite: favorite}
}

func (m *DetailModel) SetFavorite(fav bool) {
	m.favorite = fav
}

// View renders the detail panel.
func (m *DetailModel) View(width, height int) string {
	r := m.restaurant
	var b strings.Builder

	title := r.Name
	if m.favorite {
		title += " ★"
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	writeField(&b, "분류", shortCategory(r.Category))
	writeField(&b, "주소", r.Address)
	if r.RoadAddress != "" && r.RoadAddress != r.Address {
		writeField(&b, "도로명", r.RoadAddress)
	}
	writeField(&b, "전화", r.Phone)

	if r.GeoValid {
		writeField(&b, "거리", fmt.Sprintf("%s (%s)", r.DistanceText, r.WalkingTime))
	} else {
		writeField(&b, "거리", "위치 정보 없음")
	}
	writeField(&b, "가격대", r.Price)
	writeField(&b, "지도", r.MapURL)
	writeField(&b, "링크", r.Link)

	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render(util.Truncate(r.Description, 120)))
		b.WriteString("\n")
	}

	if len(r.BlogReviews) > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("블로그 후기"))
		b.WriteString("\n")
		for _, review := range r.BlogReviews {
			b.WriteString("  · " + util.Truncate(review.Title, 40) + "\n")
			if review.Snippet != "" {
				b.WriteString(MutedStyle.Render("    "+util.Truncate(review.Snippet, 60)) + "\n")
			}
		}
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", LabelStyle.Render(label), value))
}
