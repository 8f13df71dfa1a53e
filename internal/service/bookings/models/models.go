package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// TransitionRequest запрос на смену статуса бронирования
// Version - версия, которую видел клиент (оптимистичная блокировка)
type TransitionRequest struct {
	Actor   domain.Actor
	Status  string
	Version int
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	ProfessionalID   *int64
	UnitID           *int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ProfessionalID:   r.ProfessionalID,
		UnitID:           r.UnitID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ConversionResponse финансовая запись бронирования
// Суммы передаются строками с двумя знаками после запятой
type ConversionResponse struct {
	Outcome string `json:"outcome"`

	OriginalPrice   string   `json:"originalPrice"`
	DiscountPercent string   `json:"discountPercent"`
	FinalPrice      string   `json:"finalPrice"`
	DownPayment     string   `json:"downPayment"`
	SecondPayment   string   `json:"secondPayment"`
	RemainingDue    string   `json:"remainingDue"`
	ClosedByStaffID *int64   `json:"closedByStaffId,omitempty"`
	ProfessionalID  *int64   `json:"professionalId,omitempty"`
	ClosingReasons  []string `json:"closingReasons"`

	AmountPaid       string  `json:"amountPaid"`
	NonClosingReason *string `json:"nonClosingReason,omitempty"`
	PaymentMethod    *string `json:"paymentMethod,omitempty"`
	Installments     *int    `json:"installments,omitempty"`
	BalanceBefore    string  `json:"balanceBefore"`

	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64   `json:"id"`
	ProfessionalID int64   `json:"professionalId"`
	UnitID         int64   `json:"unitId"`
	ClientID       *int64  `json:"clientId,omitempty"`
	BookingDate    string  `json:"bookingDate"` // "2025-03-05"
	StartTime      string  `json:"startTime"`   // "10:00"
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	Type           string  `json:"type,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	OutstandingBalance string  `json:"outstandingBalance"`
	PaymentMethod      *string `json:"paymentMethod,omitempty"`
	Installments       *int    `json:"installments,omitempty"`

	Conversion ConversionResponse `json:"conversion"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		ProfessionalID:     b.ProfessionalID,
		UnitID:             b.UnitID,
		ClientID:           b.ClientID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		Type:               string(b.Type),
		Notes:              b.Notes,
		OutstandingBalance: money(b.OutstandingBalance),
		PaymentMethod:      b.PaymentMethod,
		Installments:       b.Installments,
		Conversion:         fromDomainConversion(&b.Conversion),
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

func fromDomainConversion(c *domain.Conversion) ConversionResponse {
	outcome := c.Outcome
	if outcome == "" {
		outcome = domain.OutcomeUnset
	}

	reasons := c.ClosingReasons
	if reasons == nil {
		reasons = []string{}
	}

	return ConversionResponse{
		Outcome:          string(outcome),
		OriginalPrice:    money(c.OriginalPrice),
		DiscountPercent:  money(c.DiscountPercent),
		FinalPrice:       money(c.FinalPrice),
		DownPayment:      money(c.DownPayment),
		SecondPayment:    money(c.SecondPayment),
		RemainingDue:     money(c.RemainingDue),
		ClosedByStaffID:  c.ClosedByStaffID,
		ProfessionalID:   c.ProfessionalID,
		ClosingReasons:   reasons,
		AmountPaid:       money(c.AmountPaid),
		NonClosingReason: c.NonClosingReason,
		PaymentMethod:    c.PaymentMethod,
		Installments:     c.Installments,
		BalanceBefore:    money(c.BalanceBefore),
		RecordedAt:       c.RecordedAt,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
