package get_monthly_availability

import (
	"strconv"

	getMonthlyAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/get_monthly_availability"
)

// MonthlyAvailabilityResponse HTTP response model
type MonthlyAvailabilityResponse struct {
	AvailableDates []string `json:"availableDates"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(resourceID int64, yearStr, monthStr string) (*getMonthlyAvailability.Request, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, err
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, err
	}

	return &getMonthlyAvailability.Request{
		ResourceID: resourceID,
		Year:       year,
		Month:      month,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthlyAvailability.Response) *MonthlyAvailabilityResponse {
	dates := make([]string, len(resp.AvailableDates))
	for i, d := range resp.AvailableDates {
		dates[i] = d.String()
	}

	return &MonthlyAvailabilityResponse{AvailableDates: dates}
}
