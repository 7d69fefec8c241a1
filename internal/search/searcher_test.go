package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lunchmate/internal/model"
	"lunchmate/internal/naver"
)

type fakeItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// fakeAPI simulates the local and blog search endpoints. Local results are
// keyed by the query string; unknown queries return no items.
type fakeAPI struct {
	mu          sync.Mutex
	localByQ    map[string][]fakeItem
	blogByQ     map[string][]map[string]string
	localCalls  []string
	failQueries map[string]int // query -> status code to return
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		localByQ:    make(map[string][]fakeItem),
		blogByQ:     make(map[string][]map[string]string),
		failQueries: make(map[string]int),
	}
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		switch r.URL.Path {
		case "/v1/search/local.json":
			f.mu.Lock()
			f.localCalls = append(f.localCalls, query)
			status := f.failQueries[query]
			items := f.localByQ[query]
			f.mu.Unlock()
			if status != 0 {
				w.WriteHeader(status)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
		case "/v1/search/blog.json":
			f.mu.Lock()
			items := f.blogByQ[query]
			f.mu.Unlock()
			if items == nil {
				items = []map[string]string{}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.localCalls...)
}

// Center is 37.5700, 126.9768. Scaled-WGS84 coordinates for test venues.
var (
	nearItem = fakeItem{ // ~120m north of center
		Title:    "<b>부민옥</b>",
		Address:  "서울특별시 중구 다동 60-1",
		Category: "한식>육류,고기요리",
		MapX:     "1269768000",
		MapY:     "375711000",
	}
	farItem = fakeItem{ // ~550m north of center
		Title:    "광화문집",
		Address:  "서울특별시 종로구 당주동 43",
		Category: "한식>찌개,전골",
		MapX:     "1269768000",
		MapY:     "375750000",
	}
	cafeItem = fakeItem{
		Title:    "어느카페",
		Address:  "서울특별시 중구 무교동 1",
		Category: "카페,디저트>카페",
		MapX:     "1269768000",
		MapY:     "375705000",
	}
	badCoordsItem = fakeItem{
		Title:    "좌표없는집",
		Address:  "서울특별시 중구 무교동 2",
		Category: "한식>국수",
		MapX:     "",
		MapY:     "",
	}
)

type fakeExcluder struct {
	names map[string]bool
}

func (f *fakeExcluder) IsExcluded(name, address string) bool {
	return f.names[name]
}

func newTestSearcher(t *testing.T, api *fakeAPI, excluder Excluder) *Searcher {
	t.Helper()
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	client := naver.NewClient("id", "secret")
	client.SetBaseURL(server.URL)
	return NewSearcher(client, excluder)
}

func TestSearchCallCountAreasTimesTokens(t *testing.T) {
	api := newFakeAPI()
	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	_, err := s.Search(context.Background(), model.SearchRequest{
		Cuisine: "양식 파스타",
		RadiusM: 1000,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	calls := api.calls()
	if len(calls) != 2 {
		t.Fatalf("expected exactly 2 calls (1 area × 2 tokens), got %d: %v", len(calls), calls)
	}
	if calls[0] != "광화문 양식" || calls[1] != "광화문 파스타" {
		t.Errorf("unexpected queries: %v", calls)
	}
}

func TestSearchQueryJoinOrder(t *testing.T) {
	api := newFakeAPI()
	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	_, err := s.Search(context.Background(), model.SearchRequest{
		Cuisine: "한식",
		Budget:  "저렴한",
		RadiusM: 1000,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	calls := api.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0] != "광화문 한식 저렴한" {
		t.Errorf("query = %q, want area cuisine budget join order", calls[0])
	}
}

func TestSearchDeduplicatesByName(t *testing.T) {
	api := newFakeAPI()
	// Same venue surfaces in two areas, with different HTML highlighting.
	api.localByQ["광화문 한식"] = []fakeItem{nearItem}
	duplicate := nearItem
	duplicate.Title = "부민옥"
	duplicate.Address = "다른 주소"
	api.localByQ["시청 한식"] = []fakeItem{duplicate, farItem}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문", "시청"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results after dedupe, got %d", len(results))
	}
	for _, r := range results {
		if r.Name == "부민옥" && r.Address != nearItem.Address {
			t.Error("dedupe must keep the first-seen item")
		}
	}
}

func TestSearchFiltersCategoriesAndExclusions(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["광화문 한식"] = []fakeItem{nearItem, farItem, cafeItem}

	excluder := &fakeExcluder{names: map[string]bool{"광화문집": true}}
	s := newTestSearcher(t, api, excluder)
	s.SetAreas([]string{"광화문"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result after filtering, got %d", len(results))
	}
	if results[0].Name != "부민옥" {
		t.Errorf("unexpected survivor %q", results[0].Name)
	}
}

func TestSearchFallbackOnEmptyRadius(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["광화문 한식"] = []fakeItem{farItem, nearItem}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	// Both venues are well outside 10m; the filter would eliminate
	// everything, so the full list must come back, sorted by distance.
	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 10})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("fallback should return both items, got %d", len(results))
	}
	if results[0].Name != "부민옥" || results[1].Name != "광화문집" {
		t.Errorf("fallback results not sorted by distance: %v, %v", results[0].Name, results[1].Name)
	}
	if results[0].DistanceM > results[1].DistanceM {
		t.Error("results must be ascending by distance")
	}
}

func TestSearchInvalidCoordinatesFailOpen(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["광화문 한식"] = []fakeItem{badCoordsItem}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 500})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("candidate with unparseable coordinates must survive, got %d results", len(results))
	}
	r := results[0]
	if r.DistanceM != 0 {
		t.Errorf("invalid coordinates should yield distance 0, got %v", r.DistanceM)
	}
	if r.GeoValid {
		t.Error("GeoValid should be false for substituted coordinates")
	}
	if r.Lat != DefaultCenterLat || r.Lng != DefaultCenterLng {
		t.Error("invalid coordinates should fall back to the request center")
	}
}

func TestSearchPerCallFailureIsolation(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["시청 한식"] = []fakeItem{nearItem}
	api.failQueries["광화문 한식"] = http.StatusInternalServerError

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문", "시청"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000})
	if err != nil {
		t.Fatalf("one failing call must not abort the federation: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the surviving call's result, got %d", len(results))
	}
}

func TestSearchCredentialErrorPropagates(t *testing.T) {
	api := newFakeAPI()
	api.failQueries["광화문 한식"] = http.StatusUnauthorized

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	_, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000})
	if !errors.Is(err, naver.ErrCredentials) {
		t.Errorf("credential rejection must propagate, got %v", err)
	}
}

func TestSearchTruncatesToDisplay(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["광화문 한식"] = []fakeItem{nearItem, farItem, badCoordsItem}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000, Display: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(results))
	}
}

func TestSearchEnrichesFinalPage(t *testing.T) {
	api := newFakeAPI()
	api.localByQ["광화문 한식"] = []fakeItem{nearItem}
	api.blogByQ["부민옥 후기"] = []map[string]string{
		{"title": "부민옥 <b>후기</b>", "link": "https://blog.example/1", "description": "육개장이 일품"},
	}
	api.blogByQ["부민옥 메뉴판 가격"] = []map[string]string{
		{"description": "육개장 11,000원 수육 11,000원"},
	}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	results, err := s.Search(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 1000})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if len(r.BlogReviews) != 1 || r.BlogReviews[0].Title != "부민옥 후기" {
		t.Errorf("blog reviews not attached: %+v", r.BlogReviews)
	}
	if r.Price != "11,000원" {
		t.Errorf("price = %q, want 11,000원", r.Price)
	}
}

func TestSearchExpandingStopsAtFirstNonEmpty(t *testing.T) {
	api := newFakeAPI()
	// Venue at ~550m: outside the 500m filter, but the rank-stage fallback
	// keeps it, so the first attempt already yields a page.
	api.localByQ["광화문 한식"] = []fakeItem{farItem}

	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	results, radius, err := s.SearchExpanding(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 500})
	if err != nil {
		t.Fatalf("SearchExpanding failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if radius != 500 {
		t.Errorf("radius used = %d, want first attempt's 500", radius)
	}
	if got := len(api.calls()); got != 1 {
		t.Errorf("expected a single sweep, got %d calls", got)
	}
}

func TestSearchExpandingAllEmpty(t *testing.T) {
	api := newFakeAPI()
	s := newTestSearcher(t, api, nil)
	s.SetAreas([]string{"광화문"})

	results, radius, err := s.SearchExpanding(context.Background(), model.SearchRequest{Cuisine: "한식", RadiusM: 500})
	if err != nil {
		t.Fatalf("SearchExpanding must not error on emptiness: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if radius != MaxRadius {
		t.Errorf("radius = %d, want MaxRadius %d", radius, MaxRadius)
	}
	// One sweep each at 500, 1000, and the 2000 cap.
	if got := len(api.calls()); got != 3 {
		t.Errorf("expected 3 sweeps across the radius ladder, got %d calls", got)
	}
}
