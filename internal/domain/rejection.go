package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// RejectionReason identifies why a request was refused for business reasons
type RejectionReason string

const (
	ReasonResourceNotFound RejectionReason = "resource_not_found"
	ReasonDateUnavailable  RejectionReason = "date_unavailable"
	ReasonAlreadyBooked    RejectionReason = "already_booked"
)

// Rejection is an expected business outcome returned as a value, not an error.
// Date is set when the rejection concerns a specific date.
type Rejection struct {
	Reason RejectionReason
	Date   *types.Date
}

func ResourceNotFound() *Rejection {
	return &Rejection{Reason: ReasonResourceNotFound}
}

func DateUnavailable(d types.Date) *Rejection {
	return &Rejection{Reason: ReasonDateUnavailable, Date: &d}
}

func AlreadyBooked(d types.Date) *Rejection {
	return &Rejection{Reason: ReasonAlreadyBooked, Date: &d}
}

func (r *Rejection) String() string {
	if r.Date != nil {
		return fmt.Sprintf("%s (%s)", r.Reason, r.Date)
	}
	return string(r.Reason)
}
