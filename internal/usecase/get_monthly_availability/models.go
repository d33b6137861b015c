package get_monthly_availability

import (
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Request модель запроса доступных дат месяца
type Request struct {
	ResourceID int64 // ID ресурса
	Year       int   // Год
	Month      int   // Месяц, 1-12
}

// Response доступные даты месяца по возрастанию.
// Rejection заполнен (ReasonResourceNotFound), если ресурса нет; пустой список дат - валидный результат.
type Response struct {
	AvailableDates []types.Date
	Rejection      *domain.Rejection
}
