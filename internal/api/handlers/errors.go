package handlers

import (
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

// StatusOf возвращает HTTP статус для ошибки по ее доменному виду
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrConcurrency):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError пишет ответ по виду ошибки. message используется для 400/403/404,
// 409 формируется из ошибки, 500 без деталей
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	switch status := StatusOf(err); status {
	case http.StatusConflict:
		RespondConflict(w, err)
	case http.StatusInternalServerError:
		RespondInternalError(w)
	default:
		RespondError(w, status, message)
	}
}
