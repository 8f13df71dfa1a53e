package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	bookingModels "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgConcurrency   = "данные изменились, обновите и повторите запрос"
	msgConflict      = "интервал недоступен"
	msgValidation    = "ошибка валидации"
)

// KindConcurrency значение kind в ответе 409 при конкурентном изменении
const KindConcurrency = "concurrency"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ConflictResponse тело ответа 409
type ConflictResponse struct {
	Kind               string                         `json:"kind"`
	Message            string                         `json:"message"`
	ConflictingBooking *bookingModels.BookingResponse `json:"conflictingBooking,omitempty"`
	GridPoint          *string                        `json:"gridPoint,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondNoContent пишет 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest пишет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidationErrors пишет 400 с ошибками по полям
func RespondValidationErrors(w http.ResponseWriter, fields map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgValidation, Fields: fields})
}

// RespondUnauthorized пишет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound пишет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError пишет 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondConflict пишет 409 для отклоненного черновика или конкурентного изменения
func RespondConflict(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		resp := ConflictResponse{
			Kind:               string(conflictErr.Kind),
			Message:            msgConflict,
			ConflictingBooking: bookingModels.FromDomainBooking(conflictErr.Booking),
		}
		if conflictErr.GridPoint != nil {
			point := conflictErr.GridPoint.String()
			resp.GridPoint = &point
		}
		RespondJSON(w, http.StatusConflict, resp)
		return
	}

	RespondJSON(w, http.StatusConflict, ConflictResponse{Kind: KindConcurrency, Message: msgConcurrency})
}
