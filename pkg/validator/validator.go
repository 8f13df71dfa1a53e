package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/types"
)

const dateLayout = "2006-01-02"

// CustomValidator обертка над go-playground/validator с тегами проекта
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор с зарегистрированными тегами hhmm и isodate
// Имена полей в ошибках берутся из json тегов
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})

	return &CustomValidator{validator: v}
}

// Validate проверяет структуру по тегам validate
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors превращает ошибки валидации в map поле -> сообщение
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = "обязательное поле"
			case "gt":
				errors[field] = "должно быть больше " + e.Param()
			case "gte":
				errors[field] = "должно быть не меньше " + e.Param()
			case "lte":
				errors[field] = "должно быть не больше " + e.Param()
			case "max":
				errors[field] = "максимальная длина " + e.Param()
			case "oneof":
				errors[field] = "допустимые значения: " + e.Param()
			case "hhmm":
				errors[field] = "ожидается время в формате HH:MM"
			case "isodate":
				errors[field] = "ожидается дата в формате YYYY-MM-DD"
			default:
				errors[field] = "некорректное значение"
			}
		}
	}

	return errors
}
