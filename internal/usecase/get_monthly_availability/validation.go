package get_monthly_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be in 1..12", ErrInvalidInput)
	}

	if req.Year < domain.MinYear || req.Year > domain.MaxYear {
		return fmt.Errorf("%w: year must be in %d..%d", ErrInvalidInput, domain.MinYear, domain.MaxYear)
	}

	return nil
}
