package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/domain"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	createBooking "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/create_booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	return req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 2, Role: domain.RoleStaff}))
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"professionalId":     10,
		"unitId":             20,
		"clientId":           77,
		"bookingDate":        "2025-03-05",
		"startTime":          "10:00",
		"endTime":            "11:00",
		"type":               "consulta",
		"outstandingBalance": "150.50",
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.Actor.UserID == 2 && req.StartTime == "10:00" && req.EndTime == "11:00" &&
			req.OutstandingBalance.String() == "150.5" && req.Type == domain.TypeConsultation
	})).Return(&models.BookingResponse{ID: 1, Status: "agendado"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody()))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.ID)
	uc.AssertExpectations(t)
}

func TestHandle_ValidationErrors(t *testing.T) {
	body := validBody()
	body["startTime"] = "25:00"
	delete(body, "unitId")

	rec := httptest.NewRecorder()
	NewHandler(&mockUseCase{}, logger.NewNop()).Handle(rec, newRequest(t, body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Fields, "startTime")
	assert.Contains(t, resp.Fields, "unitId")
}

func TestHandle_Conflict(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &domain.ConflictError{Kind: domain.ConflictOutOfHours})

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody()))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "out_of_hours", resp.Kind)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"forbidden", createBooking.ErrAccessDenied, http.StatusForbidden},
		{"concurrency", createBooking.ErrConcurrentBooking, http.StatusConflict},
		{"validation", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody()))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	NewHandler(&mockUseCase{}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
