package booking_conversion

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
	bookingModels "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions/models"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Record(ctx context.Context, id int64, req *models.RecordConversionRequest) (*bookingModels.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModels.BookingResponse), args.Error(1)
}

func (m *mockService) Clear(ctx context.Context, id int64, req *models.ClearConversionRequest) (*bookingModels.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingModels.BookingResponse), args.Error(1)
}

func serve(svc ConversionService, method, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/conversion", h.HandleRecord).Methods(http.MethodPut)
	router.HandleFunc("/bookings/{bookingId}/conversion", h.HandleClear).Methods(http.MethodDelete)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 2, Role: domain.RoleStaff}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRecord_Converted(t *testing.T) {
	svc := &mockService{}
	svc.On("Record", mock.Anything, int64(7), mock.MatchedBy(func(req *models.RecordConversionRequest) bool {
		return req.Outcome == domain.OutcomeConverted &&
			req.OriginalPrice.String() == "1000" &&
			req.DiscountPercent.String() == "10" &&
			req.DownPayment.String() == "300.5" &&
			req.Version == 4 &&
			len(req.ClosingReasons) == 1
	})).Return(&bookingModels.BookingResponse{ID: 7}, nil)

	body := `{"version":4,"outcome":"converted","originalPrice":"1000","discountPercent":10,"downPayment":"300.50","closingReasons":["preço"]}`
	rec := serve(svc, http.MethodPut, "/bookings/7/conversion", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleRecord_Errors(t *testing.T) {
	t.Run("unknown outcome", func(t *testing.T) {
		rec := serve(&mockService{}, http.MethodPut, "/bookings/7/conversion", `{"outcome":"maybe"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ledger rejection", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Record", mock.Anything, int64(7), mock.Anything).Return(nil, conversions.ErrInvalidInput)

		rec := serve(svc, http.MethodPut, "/bookings/7/conversion", `{"outcome":"converted","discountPercent":"120"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stale version", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Record", mock.Anything, int64(7), mock.Anything).Return(nil, conversions.ErrStaleVersion)

		rec := serve(svc, http.MethodPut, "/bookings/7/conversion", `{"outcome":"unset","version":2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"kind":"concurrency"`)
	})
}

func TestHandleClear(t *testing.T) {
	svc := &mockService{}
	svc.On("Clear", mock.Anything, int64(7), &models.ClearConversionRequest{
		Actor:   domain.Actor{UserID: 2, Role: domain.RoleStaff},
		Version: 5,
	}).Return(&bookingModels.BookingResponse{ID: 7}, nil)

	rec := serve(svc, http.MethodDelete, "/bookings/7/conversion?version=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	rec = serve(&mockService{}, http.MethodDelete, "/bookings/7/conversion?version=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
