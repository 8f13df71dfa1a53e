package conversions

import (
	"errors"
	"fmt"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных данных конверсии или неподходящем бронировании
	ErrInvalidInput = fmt.Errorf("conversions.service: %w", domain.ErrValidation)

	// ErrStaleVersion возвращается, когда бронирование изменено после чтения клиентом
	ErrStaleVersion = fmt.Errorf("conversions.service: stale version: %w", domain.ErrConcurrency)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conversions.service: internal error")
)
