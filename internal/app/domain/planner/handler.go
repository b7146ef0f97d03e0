package planner

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/models"
	"github.com/tripmitra/tripmitra/internal/app/observability/metrics"
)

type Handler struct {
	service Service
	metrics *metrics.AppMetrics
	log     *zap.Logger
}

// NewHandler wires the planner service to its HTTP surface. metrics may be
// nil in tests.
func NewHandler(service Service, appMetrics *metrics.AppMetrics, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		metrics: appMetrics,
		log:     log,
	}
}

type extractRequest struct {
	Text    string             `json:"text"`
	Profile models.TripProfile `json:"profile"`
}

type generateRequest struct {
	Profile models.TripProfile `json:"profile"`
}

// CreateSession opens a new planning session.
func (h *Handler) CreateSession(c *gin.Context) {
	snapshot := h.service.CreateSession(c.Request.Context())
	if h.metrics != nil {
		h.metrics.SessionsOpenedTotal.Add(c.Request.Context(), 1)
	}
	c.JSON(http.StatusCreated, snapshot)
}

// GetSession returns the current session snapshot.
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	snapshot, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// UpdateSession applies manual field edits; omitted fields are untouched.
func (h *Handler) UpdateSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var params UpdateSessionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.log.Warn("Malformed session update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshot, err := h.service.UpdateSession(c.Request.Context(), id, params)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Extract runs trip-detail extraction over the session's free text and merges
// the result into the session.
func (h *Handler) Extract(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Malformed extract request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.service.ExtractAndReconcile(c.Request.Context(), id, req.Text, req.Profile)
	if h.metrics != nil {
		h.metrics.ExtractionsTotal.Add(c.Request.Context(), 1)
		if err != nil && errors.Is(err, models.ErrRemoteCallFailure) {
			h.metrics.RemoteCallErrorsTotal.Add(c.Request.Context(), 1)
		}
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Generate produces the full itinerary display model for the session.
func (h *Handler) Generate(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Warn("Malformed generate request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	start := time.Now()
	display, err := h.service.GenerateItinerary(c.Request.Context(), id, req.Profile)
	if h.metrics != nil {
		h.metrics.GenerationsTotal.Add(c.Request.Context(), 1)
		h.metrics.GenerationDuration.Record(c.Request.Context(), time.Since(start).Seconds())
		switch {
		case err == nil:
		case errors.Is(err, models.ErrGenerationInFlight):
			h.metrics.GenerationRejectedTotal.Add(c.Request.Context(), 1)
		case errors.Is(err, models.ErrRemoteCallFailure):
			h.metrics.RemoteCallErrorsTotal.Add(c.Request.Context(), 1)
		}
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, display)
}

// BookingLinks returns the deterministic provider link set for the last
// generated itinerary.
func (h *Handler) BookingLinks(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	links, err := h.service.BookingLinks(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.log.Warn("Invalid session ID", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrEmptyTripText), errors.Is(err, models.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrRemoteCallFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.log.Error("Unhandled planner error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
