package handlers

import (
	"net/http"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/validator"
)

var requestValidator = validator.NewValidator()

// ValidateRequest проверяет теги validate у тела запроса.
// При ошибке пишет 400 с ошибками по полям и возвращает false
func ValidateRequest(w http.ResponseWriter, req interface{}) bool {
	if err := requestValidator.Validate(req); err != nil {
		RespondValidationErrors(w, requestValidator.FormatValidationErrors(err))
		return false
	}
	return true
}
