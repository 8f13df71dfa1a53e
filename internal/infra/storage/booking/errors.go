package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrVersionMismatch возвращается, когда запись изменена другим запросом
	ErrVersionMismatch = errors.New("booking.repository: version mismatch")

	// ErrOverlap возвращается, когда exclusion constraint отклонил пересекающуюся запись
	ErrOverlap = errors.New("booking.repository: overlapping booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrLockDay возвращается при ошибке взятия advisory lock
	ErrLockDay = errors.New("booking.repository: failed to lock day")
)
