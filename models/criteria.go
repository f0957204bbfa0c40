package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCriteria is returned for search input the filter cannot run on.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// AvailabilityRule decides how availability records inside the date window
// qualify an item.
type AvailabilityRule int

const (
	// AnyDay keeps an item when at least one day in the window has inventory.
	AnyDay AvailabilityRule = iota
	// EveryDay keeps an item only when every day in the window has inventory.
	EveryDay
)

// SearchCriteria is the user's current filter input on a catalog page.
type SearchCriteria struct {
	DateRangeStart time.Time
	DateRangeEnd   time.Time
	Guests         int
	RoomsRequested int
	Category       string
	Specialist     string
	FreeText       string
	Rule           AvailabilityRule
}

// HasDateRange reports whether an availability window is active.
func (c SearchCriteria) HasDateRange() bool {
	return !c.DateRangeStart.IsZero() && !c.DateRangeEnd.IsZero()
}

// ClearDates drops the availability window, returning to "show all".
func (c *SearchCriteria) ClearDates() {
	c.DateRangeStart = time.Time{}
	c.DateRangeEnd = time.Time{}
}

// Normalize clamps counts to 1 and truncates the window to calendar days.
func (c SearchCriteria) Normalize() SearchCriteria {
	if c.Guests < 1 {
		c.Guests = 1
	}
	if c.RoomsRequested < 1 {
		c.RoomsRequested = 1
	}
	if !c.DateRangeStart.IsZero() {
		c.DateRangeStart = Day(c.DateRangeStart)
	}
	if !c.DateRangeEnd.IsZero() {
		c.DateRangeEnd = Day(c.DateRangeEnd)
	}
	return c
}

// Validate rejects half-open or inverted date windows.
func (c SearchCriteria) Validate() error {
	if c.DateRangeStart.IsZero() != c.DateRangeEnd.IsZero() {
		return fmt.Errorf("%w: date range needs both start and end", ErrInvalidCriteria)
	}
	if c.HasDateRange() && c.DateRangeEnd.Before(c.DateRangeStart) {
		return fmt.Errorf("%w: date range ends before it starts", ErrInvalidCriteria)
	}
	return nil
}
