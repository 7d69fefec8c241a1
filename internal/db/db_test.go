package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"lunchmate/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestFavoritesRoundtrip(t *testing.T) {
	database := openTestDB(t)

	added, err := AddFavorite(database, "부민옥", "서울특별시 중구 다동 60-1", "육개장")
	if err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if !added {
		t.Fatal("first add should report true")
	}

	fav, err := IsFavorite(database, "부민옥", "서울특별시 중구 다동 60-1")
	if err != nil || !fav {
		t.Errorf("IsFavorite = %v, %v; want true", fav, err)
	}

	if err := RemoveFavorite(database, "부민옥", "서울특별시 중구 다동 60-1"); err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	fav, err = IsFavorite(database, "부민옥", "서울특별시 중구 다동 60-1")
	if err != nil || fav {
		t.Errorf("IsFavorite after remove = %v, %v; want false", fav, err)
	}
}

func TestFavoriteCompositeUniqueness(t *testing.T) {
	database := openTestDB(t)

	if _, err := AddFavorite(database, "부민옥", "다동 60-1", ""); err != nil {
		t.Fatal(err)
	}
	added, err := AddFavorite(database, "부민옥", "다동 60-1", "duplicate")
	if err != nil {
		t.Fatalf("duplicate add should not error: %v", err)
	}
	if added {
		t.Error("duplicate (name, address) should be ignored")
	}

	// Same name at a different address is a distinct entry.
	added, err = AddFavorite(database, "부민옥", "역삼동 1-1", "")
	if err != nil || !added {
		t.Errorf("same name, different address should insert: %v, %v", added, err)
	}
}

func TestSearchFavorites(t *testing.T) {
	database := openTestDB(t)
	mustAddFavorite(t, database, "부민옥", "다동 60-1", "육개장")
	mustAddFavorite(t, database, "광화문집", "당주동 43", "김치찌개")

	results, err := SearchFavorites(database, "김치")
	if err != nil {
		t.Fatalf("SearchFavorites failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "광화문집" {
		t.Errorf("SearchFavorites = %+v, want 광화문집 only", results)
	}
}

func TestImportFavoritesSkipsDuplicatesAndBlanks(t *testing.T) {
	database := openTestDB(t)
	mustAddFavorite(t, database, "부민옥", "다동 60-1", "")

	count, err := ImportFavorites(database, []model.FavoriteRow{
		{Name: "부민옥", Address: "다동 60-1"},
		{Name: "광화문집", Address: "당주동 43"},
		{Name: "   "},
	})
	if err != nil {
		t.Fatalf("ImportFavorites failed: %v", err)
	}
	if count != 1 {
		t.Errorf("imported %d rows, want 1", count)
	}
}

func TestExclusionsPredicate(t *testing.T) {
	database := openTestDB(t)

	if _, err := AddExclusion(database, "어느카페", "무교동 1", "커피만 판다"); err != nil {
		t.Fatal(err)
	}

	store := ExclusionStore{DB: database}
	if !store.IsExcluded("어느카페", "무교동 1") {
		t.Error("excluded entry should be reported")
	}
	if store.IsExcluded("부민옥", "다동 60-1") {
		t.Error("unknown entry should not be reported")
	}

	if err := RemoveExclusion(database, "어느카페", "무교동 1"); err != nil {
		t.Fatal(err)
	}
	if store.IsExcluded("어느카페", "무교동 1") {
		t.Error("removed entry should not be reported")
	}
}

func TestListExclusions(t *testing.T) {
	database := openTestDB(t)
	if _, err := AddExclusion(database, "어느카페", "무교동 1", "reason"); err != nil {
		t.Fatal(err)
	}

	entries, err := ListExclusions(database)
	if err != nil {
		t.Fatalf("ListExclusions failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Reason != "reason" {
		t.Errorf("ListExclusions = %+v", entries)
	}
}

func TestHistoryAppendAndOrder(t *testing.T) {
	database := openTestDB(t)

	for _, name := range []string{"첫번째집", "두번째집", "세번째집"} {
		err := AppendHistory(database, model.NewHistoryEntry{
			RestaurantName:  name,
			CuisineType:     "한식",
			Area:            "광화문",
			ReservationDate: "2026-02-16",
			ReservationTime: "12:00",
			PartySize:       6,
		})
		if err != nil {
			t.Fatalf("AppendHistory failed: %v", err)
		}
	}

	records, err := ListHistory(database, 2)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit 2, got %d", len(records))
	}
	if records[0].RestaurantName != "세번째집" {
		t.Errorf("newest record first, got %q", records[0].RestaurantName)
	}
}

func mustAddFavorite(t *testing.T, database *sql.DB, name, address, memo string) {
	t.Helper()
	if _, err := AddFavorite(database, name, address, memo); err != nil {
		t.Fatalf("AddFavorite(%q) failed: %v", name, err)
	}
}
