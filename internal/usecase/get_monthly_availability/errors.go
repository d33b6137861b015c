package get_monthly_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_monthly_availability: invalid input data")

	// ErrTransientFailure возвращается при сбое хранилища, запрос можно повторить
	ErrTransientFailure = errors.New("get_monthly_availability: transient failure")
)
