package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	updateBooking "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/update_booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

const validBody = `{"version":2,"professionalId":10,"unitId":20,"bookingDate":"2025-03-05","startTime":"10:30","endTime":"11:30","type":"retorno"}`

func serve(uc UpdateBookingUseCase, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 2, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Updated(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBooking.Request) bool {
		return req.BookingID == 5 && req.Version == 2 &&
			req.StartTime == "10:30" && req.EndTime == "11:30" &&
			req.Type == domain.TypeReturn && req.OutstandingBalance.IsZero()
	})).Return(&models.BookingResponse{ID: 5, Version: 3}, nil)

	rec := serve(uc, "/bookings/5", validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", target: "/bookings/abc", body: validBody, wantStatus: http.StatusBadRequest},
		{name: "missing unit", target: "/bookings/5", body: `{"professionalId":10,"bookingDate":"2025-03-05","startTime":"10:30","endTime":"11:30"}`, wantStatus: http.StatusBadRequest},
		{name: "occupied", target: "/bookings/5", body: validBody, err: &domain.ConflictError{Kind: domain.ConflictOccupied}, wantStatus: http.StatusConflict},
		{name: "stale", target: "/bookings/5", body: validBody, err: updateBooking.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{name: "not found", target: "/bookings/5", body: validBody, err: updateBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "block by staff", target: "/bookings/5", body: validBody, err: updateBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/bookings/5", body: validBody, err: updateBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := serve(uc, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
