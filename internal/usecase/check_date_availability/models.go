package check_date_availability

import "github.com/m04kA/SMC-SpaceBookingService/pkg/types"

// Request модель запроса проверки доступности даты
type Request struct {
	ResourceID int64      // ID ресурса
	Date       types.Date // Календарный день
}

// Response доступность даты
type Response struct {
	Available         bool // Можно ли забронировать
	RemainingCapacity int  // Сколько бронирований ещё поместится
}
