package models

import (
	"fmt"
	"strings"
)

// BookingState selects a slice of a user's bookings in list queries.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query parameter to a state filter.
// Empty input defaults to ALL.
func ParseBookingState(raw string) (BookingState, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return StateAll, nil
	}
	switch BookingState(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(s), nil
	}
	return "", fmt.Errorf("Unknown state: %s", raw)
}

// PageRequest is offset-based pagination: from is a zero-based offset,
// size a page length. The page index is from/size (integer division).
type PageRequest struct {
	From int
	Size int
}

func (p PageRequest) Validate() error {
	if p.From < 0 {
		return fmt.Errorf("from must not be negative: %d", p.From)
	}
	if p.Size <= 0 {
		return fmt.Errorf("size must be positive: %d", p.Size)
	}
	if p.Size > MaxPageSize {
		return fmt.Errorf("size must not exceed %d: %d", MaxPageSize, p.Size)
	}
	return nil
}

// Page returns the page index the offset falls into.
func (p PageRequest) Page() int {
	if p.Size <= 0 {
		return 0
	}
	return p.From / p.Size
}

// Offset returns the SQL offset for the request.
func (p PageRequest) Offset() int {
	return p.From
}
