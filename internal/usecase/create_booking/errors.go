package create_booking

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrAccessDenied возвращается, когда блокировку пытается создать не администратор
	ErrAccessDenied = fmt.Errorf("create_booking: %w", domain.ErrForbidden)

	// ErrConcurrentBooking возвращается, когда параллельная запись заняла тот же интервал
	ErrConcurrentBooking = fmt.Errorf("create_booking: %w", domain.ErrConcurrency)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
