package bookings

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на действие
	ErrAccessDenied = fmt.Errorf("bookings.service: %w", domain.ErrForbidden)

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = fmt.Errorf("bookings.service: invalid booking status: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings.service: %w", domain.ErrValidation)

	// ErrStaleVersion возвращается, когда бронирование изменено после чтения клиентом
	ErrStaleVersion = fmt.Errorf("bookings.service: stale version: %w", domain.ErrConcurrency)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
