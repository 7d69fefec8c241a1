package naver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocalSearch(t *testing.T) {
	var gotQuery, gotDisplay, gotSort string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search/local.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Naver-Client-Id") != "id" || r.Header.Get("X-Naver-Client-Secret") != "secret" {
			t.Error("credential headers missing")
		}
		gotQuery = r.URL.Query().Get("query")
		gotDisplay = r.URL.Query().Get("display")
		gotSort = r.URL.Query().Get("sort")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"title":"<b>부민옥</b>","address":"서울특별시 중구 다동 60-1","mapx":"1269849213","mapy":"375678523","category":"한식>육류,고기요리"}]}`))
	}))
	defer server.Close()

	client := NewClient("id", "secret")
	client.SetBaseURL(server.URL)

	items, err := client.LocalSearch(context.Background(), "광화문 한식 저렴한", 5)
	if err != nil {
		t.Fatalf("LocalSearch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "<b>부민옥</b>" {
		t.Errorf("unexpected title %q", items[0].Title)
	}
	if gotQuery != "광화문 한식 저렴한" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotDisplay != "5" {
		t.Errorf("display = %q, want 5", gotDisplay)
	}
	if gotSort != "comment" {
		t.Errorf("sort = %q, want comment", gotSort)
	}
}

func TestLocalSearchDisplayCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("display"); got != "10" {
			t.Errorf("display = %q, want capped at 10", got)
		}
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := NewClient("id", "secret")
	client.SetBaseURL(server.URL)
	if _, err := client.LocalSearch(context.Background(), "x", 50); err != nil {
		t.Fatalf("LocalSearch failed: %v", err)
	}
}

func TestCredentialsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad", "creds")
	client.SetBaseURL(server.URL)
	_, err := client.LocalSearch(context.Background(), "x", 5)
	if !errors.Is(err, ErrCredentials) {
		t.Errorf("expected ErrCredentials, got %v", err)
	}
}

func TestServerErrorIsNotCredentialsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("id", "secret")
	client.SetBaseURL(server.URL)
	_, err := client.LocalSearch(context.Background(), "x", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrCredentials) {
		t.Error("500 must not map to ErrCredentials")
	}
}

func TestBlogSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search/blog.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("sort"); got != "sim" {
			t.Errorf("sort = %q, want sim", got)
		}
		w.Write([]byte(`{"items":[{"title":"부민옥 <b>후기</b>","link":"https://blog.example/1","description":"육개장 11,000원"}]}`))
	}))
	defer server.Close()

	client := NewClient("id", "secret")
	client.SetBaseURL(server.URL)
	items, err := client.BlogSearch(context.Background(), "부민옥 후기", 3)
	if err != nil {
		t.Fatalf("BlogSearch failed: %v", err)
	}
	if len(items) != 1 || items[0].Description != "육개장 11,000원" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	}))
	defer server.Close()

	client := NewClient("id", "secret")
	client.SetBaseURL(server.URL)
	if _, err := client.LocalSearch(context.Background(), "x", 5); err == nil {
		t.Error("malformed JSON should return an error")
	}
}
