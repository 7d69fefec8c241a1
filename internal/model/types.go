package model

import "time"

// Restaurant is one search result candidate, immutable once enrichment
// completes.
type Restaurant struct {
	Name        string
	Address     string
	RoadAddress string
	Lat         float64
	Lng         float64
	// GeoValid is false when the vendor coordinates could not be trusted
	// and the request center was substituted (distance 0).
	GeoValid     bool
	Category     string
	Description  string
	Phone        string
	Link         string
	MapURL       string
	DistanceM    float64
	DistanceText string
	WalkingTime  string
	Price        string
	BlogReviews  []BlogReview
}

// BlogReview is a review snippet attached to a restaurant.
type BlogReview struct {
	Title   string
	Link    string
	Snippet string
}

// SearchRequest carries the parameters of a single search invocation.
type SearchRequest struct {
	Cuisine string // may contain several space-separated keywords
	Budget  string // optional query augmentation, e.g. "저렴한"
	RadiusM int
	Display int
}

// FavoriteRow is a persisted favorite entry.
type FavoriteRow struct {
	ID        int64
	Name      string
	Address   string
	Memo      string
	CreatedAt time.Time
}

// ExclusionRow is a persisted exclusion entry.
type ExclusionRow struct {
	ID        int64
	Name      string
	Address   string
	Reason    string
	CreatedAt time.Time
}

// HistoryRow is a persisted search/reservation history record.
type HistoryRow struct {
	ID              int64
	RestaurantName  string
	Address         string
	Phone           string
	CuisineType     string
	Area            string
	ReservationDate string
	ReservationTime string
	PartySize       int
	Link            string
	CreatedAt       time.Time
}

// NewHistoryEntry is the data for appending a history record.
type NewHistoryEntry struct {
	RestaurantName  string
	Address         string
	Phone           string
	CuisineType     string
	Area            string
	ReservationDate string
	ReservationTime string
	PartySize       int
	Link            string
}
