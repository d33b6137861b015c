package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// ErrInvalidExclusivityMode is returned when a string is not a known ExclusivityMode
var ErrInvalidExclusivityMode = errors.New("domain: invalid exclusivity mode")

// ExclusivityMode defines how a reservation consumes a resource's capacity on a date
type ExclusivityMode string

const (
	// ModePerUnit each reservation consumes one unit of TotalCapacity
	ModePerUnit ExclusivityMode = "per_unit"
	// ModeWholeResource a single reservation consumes the whole resource for the date
	ModeWholeResource ExclusivityMode = "whole_resource"
)

// TypologyMeetingRooms is the only space typology booked as a whole
const TypologyMeetingRooms = "MEETING_ROOMS"

// ParseExclusivityMode validates s against the closed set of modes.
// Both "per_unit" and "PER_UNIT" spellings are accepted.
func ParseExclusivityMode(s string) (ExclusivityMode, error) {
	switch ExclusivityMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePerUnit:
		return ModePerUnit, nil
	case ModeWholeResource:
		return ModeWholeResource, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidExclusivityMode, s)
	}
}

// ModeForTypology maps a space typology onto an ExclusivityMode.
// Meeting rooms are booked as a whole, every other typology by unit.
func ModeForTypology(typology string) ExclusivityMode {
	if strings.EqualFold(strings.TrimSpace(typology), TypologyMeetingRooms) {
		return ModeWholeResource
	}
	return ModePerUnit
}

// IsValid reports whether m is one of the known modes
func (m ExclusivityMode) IsValid() bool {
	return m == ModePerUnit || m == ModeWholeResource
}

// Resource represents a bookable resource (a space with a number of seats)
type Resource struct {
	ID              int64
	Name            string
	TotalCapacity   int
	ExclusivityMode ExclusivityMode
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the resource invariants
func (r *Resource) Validate() error {
	if r.TotalCapacity < MinTotalCapacity {
		return fmt.Errorf("domain: total capacity must be at least %d, got %d", MinTotalCapacity, r.TotalCapacity)
	}
	if !r.ExclusivityMode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidExclusivityMode, r.ExclusivityMode)
	}
	return nil
}

// EffectiveCapacity returns the number of reservations the resource accepts per date
func (r *Resource) EffectiveCapacity() int {
	if r.ExclusivityMode == ModeWholeResource {
		return 1
	}
	return r.TotalCapacity
}

// Availability computes the availability of date given today's date and the
// number of reservations already held on date. Dates on or before today are
// never available.
func (r *Resource) Availability(date, today types.Date, reserved int) Availability {
	if !date.After(today) {
		return Unavailable()
	}

	remaining := r.EffectiveCapacity() - reserved
	if remaining < 0 {
		remaining = 0
	}

	return Availability{
		Available:         remaining > 0,
		RemainingCapacity: remaining,
	}
}

// AvailableDates returns, in ascending order, the days of window that are
// available. reservedPerDay holds the reservation count per day; missing days count as zero.
func (r *Resource) AvailableDates(window DateWindow, today types.Date, reservedPerDay map[types.Date]int) []types.Date {
	dates := make([]types.Date, 0, window.Len())
	for _, day := range window.Days() {
		if r.Availability(day, today, reservedPerDay[day]).Available {
			dates = append(dates, day)
		}
	}
	return dates
}
