package util

import (
	"testing"
	"time"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<b>맛집</b>", "맛집"},
		{"맛집", "맛집"},
		{`<a href="https://example.com">부민옥</a>`, "부민옥"},
		{"광화문 <b>한식</b> 맛집", "광화문 한식 맛집"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripHTML(c.in); got != c.want {
			t.Errorf("StripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNextMondayOnMonday(t *testing.T) {
	// 2026-02-16 is a Monday.
	monday := time.Date(2026, 2, 16, 10, 30, 0, 0, time.UTC)
	got := NextMonday(monday)
	if got.Year() != 2026 || got.Month() != 2 || got.Day() != 16 {
		t.Errorf("NextMonday on a Monday = %v, want same date", got)
	}
}

func TestNextMondayMidweek(t *testing.T) {
	// 2026-02-18 is a Wednesday; following Monday is 2026-02-23.
	wednesday := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	got := NextMonday(wednesday)
	if got.Year() != 2026 || got.Month() != 2 || got.Day() != 23 {
		t.Errorf("NextMonday on a Wednesday = %v, want 2026-02-23", got)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("NextMonday returned %v, want a Monday", got.Weekday())
	}
}

func TestNextMondayOnSunday(t *testing.T) {
	// 2026-02-22 is a Sunday; next Monday is the following day.
	sunday := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	got := NextMonday(sunday)
	if got.Day() != 23 {
		t.Errorf("NextMonday on a Sunday = %v, want 2026-02-23", got)
	}
}

func TestFormatDateKorean(t *testing.T) {
	d := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	if got := FormatDateKorean(d); got != "2026년 2월 16일 (월)" {
		t.Errorf("FormatDateKorean = %q", got)
	}
}

func TestFormatDateShort(t *testing.T) {
	d := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	if got := FormatDateShort(d); got != "02/16 (월)" {
		t.Errorf("FormatDateShort = %q", got)
	}
}

func TestParseDateInput(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-02-16", "2026-02-16", false},
		{"2026.02.16", "2026-02-16", false},
		{"2/16/2026", "2026-02-16", false},
		{"", "", false},
		{"not a date", "", true},
	}
	for _, c := range cases {
		got, err := ParseDateInput(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDateInput(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateInput(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDateInput(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate should not touch short strings, got %q", got)
	}
	if got := Truncate("한국프레스센터", 5); got != "한국..." {
		t.Errorf("Truncate should count runes, got %q", got)
	}
}
