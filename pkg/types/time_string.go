package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time string out of day range")
)

// TimeString время суток в формате "HH:MM" без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", ErrInvalidTimeString
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 {
		return "", ErrInvalidTimeString
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return "", ErrInvalidTimeString
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", ErrTimeOutOfRange
	}

	return TimeString(fmt.Sprintf("%02d:%02d", hours, minutes)), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(total int) (TimeString, error) {
	if total < 0 || total >= MinutesPerDay {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MustTimeString парсит строку и паникует при ошибке. Только для констант и тестов
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(fmt.Sprintf("types: invalid time string %q: %v", s, err))
	}
	return t
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от начала суток, -1 для некорректного значения
func (t TimeString) Minutes() int {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return -1
	}
	s := string(parsed)
	hours, _ := strconv.Atoi(s[0:2])
	minutes, _ := strconv.Atoi(s[3:5])
	return hours*60 + minutes
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal сравнивает два значения без учета формата записи
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// AddMinutes прибавляет минуты, результат должен оставаться в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", ErrInvalidTimeString
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// TruncateToHour отбрасывает минуты
func (t TimeString) TruncateToHour() TimeString {
	m := t.Minutes()
	if m < 0 {
		return t
	}
	return TimeString(fmt.Sprintf("%02d:00", m/60))
}

// OnDate возвращает момент времени на указанную дату
func (t TimeString) OnDate(date time.Time) time.Time {
	y, mo, d := date.Date()
	m := t.Minutes()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location())
}

// Scan реализует sql.Scanner. lib/pq отдает колонки TIME как time.Time или строку
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
