// Package search implements the restaurant discovery pipeline: federated
// keyword×area queries against the local search API, coordinate
// normalization, distance ranking with fail-open filtering, and best-effort
// enrichment from blog search.
package search

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"

	"lunchmate/internal/geo"
	"lunchmate/internal/model"
	"lunchmate/internal/naver"
	"lunchmate/internal/util"
)

// Excluder is the externally-owned exclusion predicate consulted during
// filtering. The searcher never mutates the underlying store.
type Excluder interface {
	IsExcluded(name, address string) bool
}

// Searcher runs restaurant searches around a fixed center point.
type Searcher struct {
	client             *naver.Client
	centerLat          float64
	centerLng          float64
	areas              []string
	excluder           Excluder
	excludedCategories []string
	reviewCount        int
}

// NewSearcher creates a searcher with the default area configuration. The
// exclusion predicate is injected; pass nil to disable user exclusions.
func NewSearcher(client *naver.Client, excluder Excluder) *Searcher {
	return &Searcher{
		client:             client,
		centerLat:          DefaultCenterLat,
		centerLng:          DefaultCenterLng,
		areas:              SearchAreas,
		excluder:           excluder,
		excludedCategories: ExcludedCategories,
		reviewCount:        3,
	}
}

// SetCenter overrides the distance reference point.
func (s *Searcher) SetCenter(lat, lng float64) {
	s.centerLat = lat
	s.centerLng = lng
}

// SetAreas overrides the federated area list.
func (s *Searcher) SetAreas(areas []string) {
	s.areas = areas
}

// Search runs one federated search and returns the ranked result page.
//
// The pipeline order is a contract: dedupe and cheap filters run on raw
// items, coordinates and distances are computed next, the radius filter's
// fallback decision is made on the filtered (not sorted) set, and only the
// final page is enriched.
func (s *Searcher) Search(ctx context.Context, req model.SearchRequest) ([]model.Restaurant, error) {
	items, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	candidates := s.toCandidates(items)

	filtered := make([]model.Restaurant, 0, len(candidates))
	for _, r := range candidates {
		if r.DistanceM <= float64(req.RadiusM) {
			filtered = append(filtered, r)
		}
	}

	// Fail-open: approximate geometry must never turn a non-empty candidate
	// set into "no results".
	final := filtered
	if len(final) == 0 {
		final = candidates
	}

	sort.SliceStable(final, func(i, j int) bool {
		return final[i].DistanceM < final[j].DistanceM
	})

	display := req.Display
	if display <= 0 {
		display = DefaultDisplay
	}
	if len(final) > display {
		final = final[:display]
	}

	for i := range final {
		s.enrich(ctx, &final[i])
	}

	return final, nil
}

// SearchExpanding retries the search with progressively larger radii until
// something is found, returning the radius actually used. An empty result at
// the maximum radius is returned as-is, never as an error.
func (s *Searcher) SearchExpanding(ctx context.Context, req model.SearchRequest) ([]model.Restaurant, int, error) {
	initial := req.RadiusM
	if initial <= 0 {
		initial = DefaultRadius
	}

	radii := []int{initial}
	if doubled := initial * 2; doubled < MaxRadius {
		radii = append(radii, doubled)
	}
	if radii[len(radii)-1] != MaxRadius {
		radii = append(radii, MaxRadius)
	}

	for _, radius := range radii {
		req.RadiusM = radius
		results, err := s.Search(ctx, req)
		if err != nil {
			return nil, radius, err
		}
		if len(results) > 0 {
			return results, radius, nil
		}
	}

	return nil, MaxRadius, nil
}

// collect issues one API call per (area × keyword token) pair and merges the
// raw items, deduplicating by cleaned name. A failed call contributes an
// empty result; only credential rejection aborts the federation.
func (s *Searcher) collect(ctx context.Context, req model.SearchRequest) ([]naver.LocalItem, error) {
	tokens := strings.Fields(req.Cuisine)
	if len(tokens) == 0 {
		tokens = []string{"맛집"}
	}

	var merged []naver.LocalItem
	seen := make(map[string]bool)

	for _, area := range s.areas {
		for _, token := range tokens {
			parts := []string{area, token}
			if req.Budget != "" {
				parts = append(parts, req.Budget)
			}
			query := strings.Join(parts, " ")

			items, err := s.client.LocalSearch(ctx, query, perCallDisplay)
			if err != nil {
				if errors.Is(err, naver.ErrCredentials) {
					return nil, err
				}
				continue
			}

			for _, item := range items {
				name := util.StripHTML(item.Title)
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				merged = append(merged, item)
			}
		}
	}

	return merged, nil
}

// toCandidates filters raw items and maps the survivors to restaurant
// records with normalized coordinates and distances.
func (s *Searcher) toCandidates(items []naver.LocalItem) []model.Restaurant {
	candidates := make([]model.Restaurant, 0, len(items))

	for _, item := range items {
		name := util.StripHTML(item.Title)
		if name == "" {
			continue
		}

		if s.excluder != nil && s.excluder.IsExcluded(name, item.Address) {
			continue
		}

		category := util.StripHTML(item.Category)
		if s.categoryExcluded(category) {
			continue
		}

		lat, lng := s.centerLat, s.centerLng
		distance := 0.0
		geoValid := false
		if clat, clng, ok := naver.NormalizeCoords(item.MapX, item.MapY); ok {
			lat, lng = clat, clng
			distance = geo.Distance(s.centerLat, s.centerLng, lat, lng)
			geoValid = true
		}

		candidates = append(candidates, model.Restaurant{
			Name:         name,
			Address:      item.Address,
			RoadAddress:  item.RoadAddress,
			Lat:          lat,
			Lng:          lng,
			GeoValid:     geoValid,
			Category:     item.Category,
			Description:  util.StripHTML(item.Description),
			Phone:        item.Telephone,
			Link:         item.Link,
			MapURL:       "https://map.naver.com/v5/search/" + url.PathEscape(name),
			DistanceM:    distance,
			DistanceText: geo.FormatDistance(distance),
			WalkingTime:  geo.WalkingTime(distance),
		})
	}

	return candidates
}

func (s *Searcher) categoryExcluded(category string) bool {
	for _, excluded := range s.excludedCategories {
		if strings.Contains(category, excluded) {
			return true
		}
	}
	return false
}

// enrich attaches blog reviews and a price estimate to one final-page
// result. Enrichment is best-effort; failures leave the fields empty.
func (s *Searcher) enrich(ctx context.Context, r *model.Restaurant) {
	r.BlogReviews = s.fetchBlogReviews(ctx, r.Name)
	if r.Price == "" {
		r.Price = s.estimatePrice(ctx, r.Name)
	}
}

func (s *Searcher) fetchBlogReviews(ctx context.Context, name string) []model.BlogReview {
	items, err := s.client.BlogSearch(ctx, name+" 후기", s.reviewCount)
	if err != nil {
		return nil
	}

	reviews := make([]model.BlogReview, 0, len(items))
	for _, item := range items {
		reviews = append(reviews, model.BlogReview{
			Title:   util.StripHTML(item.Title),
			Link:    item.Link,
			Snippet: util.StripHTML(item.Description),
		})
	}
	return reviews
}
