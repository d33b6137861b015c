package check_date_availability

import (
	checkDateAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_date_availability"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// DateAvailabilityResponse HTTP response model
type DateAvailabilityResponse struct {
	Date              string `json:"date"`
	Available         bool   `json:"available"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// ToUseCaseRequest создает запрос use case из параметров пути
func ToUseCaseRequest(resourceID int64, dateStr string) (*checkDateAvailability.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &checkDateAvailability.Request{
		ResourceID: resourceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(date types.Date, resp *checkDateAvailability.Response) *DateAvailabilityResponse {
	return &DateAvailabilityResponse{
		Date:              date.String(),
		Available:         resp.Available,
		RemainingCapacity: resp.RemainingCapacity,
	}
}
