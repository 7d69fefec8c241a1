package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// ConfigErrorMsg is sent when the upstream API rejects the configured
// credentials. Rendered as a configuration problem, never as "no results".
type ConfigErrorMsg struct {
	Err error
}

// SearchResultsMsg is sent when a federated search completes.
type SearchResultsMsg struct {
	Restaurants []Restaurant
	RadiusUsed  int
	Widened     bool // radius was expanded beyond the requested one
}

// FavoritesLoadedMsg is sent when the favorites list is loaded.
type FavoritesLoadedMsg struct {
	Favorites []FavoriteRow
}

// ExclusionsLoadedMsg is sent when the exclusion list is loaded.
type ExclusionsLoadedMsg struct {
	Exclusions []ExclusionRow
}

// HistoryLoadedMsg is sent when history records are loaded.
type HistoryLoadedMsg struct {
	Records []HistoryRow
}

// FavoriteSavedMsg is sent after a favorite add/remove completes.
type FavoriteSavedMsg struct {
	Name  string
	Added bool
}

// ExclusionSavedMsg is sent after an exclusion add/remove completes.
type ExclusionSavedMsg struct {
	Name  string
	Added bool
}

// NotifiedMsg is sent after a Slack notification attempt.
type NotifiedMsg struct {
	OK bool
}

// ReservationDoneMsg is sent when the booking collaborator finishes.
type ReservationDoneMsg struct {
	Status  string
	Message string
}

// Screen represents different app screens.
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenResults
	ScreenDetail
	ScreenFavorites
	ScreenExclusions
	ScreenHistory
)
