package submit_bookings

import (
	"context"

	submitBookings "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/submit_bookings"
)

type SubmitBookingsUseCase interface {
	Execute(ctx context.Context, req *submitBookings.Request) (*submitBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
