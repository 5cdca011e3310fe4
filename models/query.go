package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates in availability queries.
const DateLayout = "2006-01-02"

// AvailabilityQuery describes one availability search from the voice agent.
type AvailabilityQuery struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	PartySize    int      `json:"partySize"`
	ActivityType string   `json:"activityType,omitempty"`
	Platform     string   `json:"platform,omitempty"`
	SessionID    string   `json:"sessionId,omitempty"`
	PriceMin     *float64 `json:"priceMin,omitempty"`
	PriceMax     *float64 `json:"priceMax,omitempty"`
}

// DateRange parses the query's calendar dates and enforces start <= end.
func (q AvailabilityQuery) DateRange() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, q.StartDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", q.StartDate, err)
	}
	end, err := time.ParseInLocation(DateLayout, q.EndDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", q.EndDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", q.EndDate, q.StartDate)
	}
	return start, end, nil
}

// Validate rejects malformed queries before any store or backend is touched.
func (q AvailabilityQuery) Validate() error {
	if q.PartySize <= 0 {
		return fmt.Errorf("party size must be positive, got %d", q.PartySize)
	}
	if _, _, err := q.DateRange(); err != nil {
		return err
	}
	if q.PriceMin != nil && q.PriceMax != nil && *q.PriceMin > *q.PriceMax {
		return fmt.Errorf("price minimum %.2f exceeds maximum %.2f", *q.PriceMin, *q.PriceMax)
	}
	return nil
}

// MatchesPrice reports whether a per-person price passes the optional bounds.
func (q AvailabilityQuery) MatchesPrice(price float64) bool {
	if q.PriceMin != nil && price < *q.PriceMin {
		return false
	}
	if q.PriceMax != nil && price > *q.PriceMax {
		return false
	}
	return true
}

// HasPriceFilter reports whether either price bound is set.
func (q AvailabilityQuery) HasPriceFilter() bool {
	return q.PriceMin != nil || q.PriceMax != nil
}

// CustomerInfo identifies the customer attached to a validated booking.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Validate ensures the fields the payment collaborator requires are present.
func (c CustomerInfo) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if c.Phone == "" {
		return fmt.Errorf("customer phone is required")
	}
	return nil
}
