package submit_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// validateRequest валидирует входные данные и возвращает даты без повторов
// в порядке первого появления
func validateRequest(req *Request, maxDates int) ([]types.Date, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.OccupantID <= 0 {
		return nil, fmt.Errorf("%w: occupantID must be positive", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	dates := uniqueDates(req.Dates)
	for _, d := range dates {
		if d.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
	}

	if maxDates > 0 && len(dates) > maxDates {
		return nil, fmt.Errorf("%w: at most %d dates per request, got %d", ErrInvalidInput, maxDates, len(dates))
	}

	return dates, nil
}

func uniqueDates(dates []types.Date) []types.Date {
	seen := make(map[types.Date]struct{}, len(dates))
	result := make([]types.Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}
	return result
}
