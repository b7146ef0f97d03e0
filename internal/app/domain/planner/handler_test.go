package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// MockPlannerService is a mock implementation of Service
type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) CreateSession(ctx context.Context) Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(Snapshot)
}

func (m *MockPlannerService) GetSession(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) UpdateSession(ctx context.Context, id uuid.UUID, params UpdateSessionParams) (Snapshot, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) ExtractAndReconcile(ctx context.Context, id uuid.UUID, text string, profile models.TripProfile) (*ExtractReport, error) {
	args := m.Called(ctx, id, text, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExtractReport), args.Error(1)
}

func (m *MockPlannerService) GenerateItinerary(ctx context.Context, id uuid.UUID, profile models.TripProfile) (*models.DisplayModel, error) {
	args := m.Called(ctx, id, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayModel), args.Error(1)
}

func (m *MockPlannerService) BookingLinks(ctx context.Context, id uuid.UUID) ([]models.BookingLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingLink), args.Error(1)
}

func setupHandlerTest(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service, nil, zap.NewNop())

	r := gin.New()
	r.POST("/sessions", handler.CreateSession)
	r.GET("/sessions/:id", handler.GetSession)
	r.PATCH("/sessions/:id", handler.UpdateSession)
	r.POST("/sessions/:id/extract", handler.Extract)
	r.POST("/sessions/:id/itinerary", handler.Generate)
	r.GET("/sessions/:id/booking-links", handler.BookingLinks)
	return r
}

func TestHandlerCreateSession(t *testing.T) {
	service := new(MockPlannerService)
	service.On("CreateSession", mock.Anything).Return(Snapshot{ID: uuid.New(), Mode: models.ModeQuickForm})

	r := setupHandlerTest(service)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, models.ModeQuickForm, snap.Mode)
}

func TestHandlerErrorMapping(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "Validation error maps to 400",
			err:            &models.ValidationError{Field: "destination", Reason: "destination is required"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown session maps to 404",
			err:            models.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "In-flight generation maps to 409",
			err:            models.ErrGenerationInFlight,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Remote failure maps to 502",
			err:            models.ErrRemoteCallFailure,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockPlannerService)
			service.On("GenerateItinerary", mock.Anything, id, mock.Anything).Return(nil, tt.err)

			r := setupHandlerTest(service)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/sessions/"+id.String()+"/itinerary", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandlerInvalidSessionID(t *testing.T) {
	service := new(MockPlannerService)
	r := setupHandlerTest(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "GetSession")
}

func TestHandlerUpdateSessionPassesOnlyProvidedFields(t *testing.T) {
	id := uuid.New()
	service := new(MockPlannerService)
	service.On("UpdateSession", mock.Anything, id, mock.MatchedBy(func(params UpdateSessionParams) bool {
		return params.Destination != nil && *params.Destination == "Goa" &&
			params.Budget == nil && params.StartDate == nil
	})).Return(Snapshot{ID: id, Destination: "Goa"}, nil)

	r := setupHandlerTest(service)
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"destination": "Goa"}`)
	req := httptest.NewRequest(http.MethodPatch, "/sessions/"+id.String(), body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestHandlerExtract(t *testing.T) {
	id := uuid.New()
	service := new(MockPlannerService)
	service.On("ExtractAndReconcile", mock.Anything, id, "5 days in Goa", mock.Anything).
		Return(&ExtractReport{
			Extraction: &models.ExtractionResult{Destination: "Goa"},
			Outcome:    ReconcileOutcome{AppliedFields: []string{"destination"}},
		}, nil)

	r := setupHandlerTest(service)
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"text": "5 days in Goa"}`)
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+id.String()+"/extract", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var report ExtractReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, []string{"destination"}, report.Outcome.AppliedFields)
}

func TestHandlerBookingLinks(t *testing.T) {
	id := uuid.New()
	service := new(MockPlannerService)
	service.On("BookingLinks", mock.Anything, id).Return([]models.BookingLink{
		{Provider: "Booking.com", Category: CategoryHotels, URL: "https://example.test"},
	}, nil)

	r := setupHandlerTest(service)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id.String()+"/booking-links", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Links []models.BookingLink `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Links, 1)
	assert.Equal(t, "Booking.com", payload.Links[0].Provider)
}
