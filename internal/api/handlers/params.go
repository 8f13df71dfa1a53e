package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var errNotPositive = errors.New("value must be positive")

// PathID извлекает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(mux.Vars(r)[name])
}

// ParseID разбирает положительный идентификатор
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errNotPositive
	}
	return id, nil
}

// QueryID разбирает опциональный идентификатор из query, nil если параметр не задан
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate разбирает дату YYYY-MM-DD в UTC
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(domain.DateFormat, raw)
}

// ParseOptionalDate разбирает опциональную дату, nil для пустой строки
func ParseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	date, err := ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
