package submit_bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_bookings: invalid input data")

	// ErrTransientFailure возвращается при сбое хранилища, таймауте или исчерпании повторов транзакции.
	// Ничего не сохранено, запрос можно повторить целиком.
	ErrTransientFailure = errors.New("submit_bookings: transient failure")

	// errBatchRejected откатывает транзакцию при бизнес-отказе; наружу не возвращается
	errBatchRejected = errors.New("submit_bookings: batch rejected")
)
