package update_booking

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("update_booking: booking %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_booking: %w", domain.ErrValidation)

	// ErrAccessDenied возвращается, когда блокировку редактирует не администратор
	ErrAccessDenied = fmt.Errorf("update_booking: %w", domain.ErrForbidden)

	// ErrConcurrentUpdate возвращается при параллельном изменении бронирования или интервала
	ErrConcurrentUpdate = fmt.Errorf("update_booking: %w", domain.ErrConcurrency)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
