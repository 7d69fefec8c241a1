package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes HTML tags from vendor-supplied text. Search API titles
// and snippets arrive with <b> highlighting around matched terms.
func StripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

var koreanWeekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

// NextMonday returns the next Monday on or after t. If t is already a
// Monday, t's date is returned unchanged.
func NextMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Weekday() == time.Monday {
		return t
	}
	days := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, days)
}

// FormatDateKorean formats a date like "2026년 2월 16일 (월)".
func FormatDateKorean(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 (%s)",
		t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// FormatDateShort formats a date like "02/16 (월)".
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%02d/%02d (%s)",
		int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// ParseDateInput parses flexible user input and normalizes to ISO (YYYY-MM-DD).
// Empty input is allowed and returns "".
func ParseDateInput(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}

	layouts := []string{
		"2006-01-02",
		"2006.01.02",
		"1/2/2006",
		"01/02/2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("invalid date format")
}

// Truncate truncates a string to maxLen runes and adds "..." if needed.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
