package schedules

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = fmt.Errorf("schedules.service: professional %w", domain.ErrNotFound)

	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = fmt.Errorf("schedules.service: unit %w", domain.ErrNotFound)

	// ErrNotAssigned возвращается, когда специалист не привязан к юниту
	ErrNotAssigned = fmt.Errorf("schedules.service: professional assignment %w", domain.ErrNotFound)

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = fmt.Errorf("schedules.service: exception %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = fmt.Errorf("schedules.service: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("schedules.service: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedules.service: internal error")
)
