package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome class of a reservation attempt.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusFailed      Status = "failed"
	StatusFull        Status = "full"
	StatusUnavailable Status = "unavailable"
)

// Request describes a single reservation to attempt.
type Request struct {
	RestaurantName string
	PlaceURL       string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	PartySize      int
	RequestName    string
	RequestPhone   string
	Memo           string
}

// Result is what a Booker reports back. Message carries a human-readable
// summary regardless of status. AlternativeTimes is only populated when
// the requested slot was full and the venue offered others.
type Result struct {
	Status            Status
	Message           string
	RestaurantName    string
	Date              string
	Time              string
	PartySize         int
	ReservationNumber string
	ScreenshotPath    string
	AlternativeTimes  []string
}

// Booker performs one reservation attempt. Implementations drive whatever
// channel the venue supports; an error means the attempt itself could not
// be carried out, a Result with StatusFailed means the venue rejected it.
type Booker interface {
	Reserve(ctx context.Context, req Request) (Result, error)
}

// ScreenshotName returns a unique file name for an attempt's evidence
// capture.
func ScreenshotName(req Request) string {
	return fmt.Sprintf("booking_%s_%s.png", req.Date, uuid.NewString())
}

// Retrier wraps a Booker and re-attempts errored or failed reservations.
// Full and unavailable outcomes are terminal: retrying a fully-booked slot
// just burns attempts.
type Retrier struct {
	Inner       Booker
	MaxAttempts int
	Delay       time.Duration
}

// NewRetrier returns a Retrier with the default policy of three attempts
// spaced by a growing delay.
func NewRetrier(inner Booker) *Retrier {
	return &Retrier{Inner: inner, MaxAttempts: 3, Delay: 2 * time.Second}
}

func (r *Retrier) Reserve(ctx context.Context, req Request) (Result, error) {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastResult Result
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return lastResult, ctx.Err()
			case <-time.After(r.Delay * time.Duration(attempt-1)):
			}
		}

		result, err := r.Inner.Reserve(ctx, req)
		if err == nil {
			switch result.Status {
			case StatusSuccess, StatusFull, StatusUnavailable:
				return result, nil
			}
			lastResult, lastErr = result, nil
		} else {
			lastResult, lastErr = result, err
		}
	}

	if lastErr != nil {
		return lastResult, fmt.Errorf("reservation failed after %d attempts: %w", attempts, lastErr)
	}
	return lastResult, nil
}
