package search

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lunchmate/internal/util"
)

// pricePattern matches "digits with comma grouping followed by 원",
// e.g. "11,000원" or "9000원".
var pricePattern = regexp.MustCompile(`([0-9,]{3,})원`)

// Plausible per-item menu price bounds in won. Values below the floor are
// typically delivery fees or option prices; values above the ceiling are
// course totals or noise.
const (
	minPlausiblePrice = 3000
	maxPlausiblePrice = 300000
)

// priceLookupTimeout keeps per-result enrichment from dominating total
// request latency.
const priceLookupTimeout = 2 * time.Second

// estimatePrice mines blog snippets for a representative menu price.
// Returns "" when nothing plausible is found; never fails the search.
func (s *Searcher) estimatePrice(ctx context.Context, name string) string {
	ctx, cancel := context.WithTimeout(ctx, priceLookupTimeout)
	defer cancel()

	items, err := s.client.BlogSearch(ctx, name+" 메뉴판 가격", 5)
	if err != nil {
		return ""
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, util.StripHTML(item.Description))
	}

	price, ok := modePrice(minePrices(texts))
	if !ok {
		return ""
	}
	return formatWon(price)
}

// minePrices extracts plausible price values from free text.
func minePrices(texts []string) []int {
	var prices []int
	for _, text := range texts {
		for _, match := range pricePattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(match[1], ",", "")
			value, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			if value < minPlausiblePrice || value > maxPlausiblePrice {
				continue
			}
			prices = append(prices, value)
		}
	}
	return prices
}

// modePrice picks the most frequently occurring value. Headline menu prices
// are repeated across sources more than outliers, so the mode beats the
// mean here. Ties resolve to the value seen first.
func modePrice(prices []int) (int, bool) {
	if len(prices) == 0 {
		return 0, false
	}

	counts := make(map[int]int, len(prices))
	var order []int
	for _, p := range prices {
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best, true
}

// formatWon renders an amount like "11,000원".
func formatWon(value int) string {
	digits := strconv.Itoa(value)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String() + "원"
}
