package check_date_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_date_availability: invalid input data")

	// ErrTransientFailure возвращается при сбое хранилища, запрос можно повторить
	ErrTransientFailure = errors.New("check_date_availability: transient failure")
)
