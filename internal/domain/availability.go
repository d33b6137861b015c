package domain

// Availability is the capacity decision for one resource on one date
type Availability struct {
	Available         bool
	RemainingCapacity int
}

// Unavailable is returned for blacked-out dates and missing resources
func Unavailable() Availability {
	return Availability{Available: false, RemainingCapacity: 0}
}
