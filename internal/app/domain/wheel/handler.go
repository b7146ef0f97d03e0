package wheel

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/models"
	"github.com/tripmitra/tripmitra/internal/app/observability/metrics"
)

// Handler exposes one wheel per screen visit. Selectors live in a TTL cache
// alongside the planning sessions; an expired wheel simply gets recreated on
// the next create call.
type Handler struct {
	wheels  *cache.Cache
	metrics *metrics.AppMetrics
	log     *zap.Logger
}

// NewHandler builds the wheel registry. metrics may be nil in tests.
func NewHandler(ttl time.Duration, appMetrics *metrics.AppMetrics, log *zap.Logger) *Handler {
	return &Handler{
		wheels:  cache.New(ttl, 2*ttl),
		metrics: appMetrics,
		log:     log,
	}
}

// CreateWheel opens a fresh selector and returns its ID with the fixed
// category layout.
func (h *Handler) CreateWheel(c *gin.Context) {
	id := uuid.New()
	selector := NewSelector()
	h.wheels.SetDefault(id.String(), selector)

	h.log.Info("Wheel created", zap.String("wheelID", id.String()))
	c.JSON(http.StatusCreated, gin.H{
		"id":    id,
		"state": selector.State(),
	})
}

// GetWheel returns the selector's current state.
func (h *Handler) GetWheel(c *gin.Context) {
	selector, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, selector.State())
}

// Spin triggers one spin and returns the drawn outcome. A spin while one is
// settling is rejected with a conflict.
func (h *Handler) Spin(c *gin.Context) {
	selector, ok := h.lookup(c)
	if !ok {
		return
	}

	outcome, err := selector.Spin()
	if err == nil && h.metrics != nil {
		h.metrics.WheelSpinsTotal.Add(c.Request.Context(), 1)
	}
	if err != nil {
		if errors.Is(err, models.ErrWheelSpinning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Spin failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) lookup(c *gin.Context) (*Selector, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wheel ID"})
		return nil, false
	}
	value, found := h.wheels.Get(id.String())
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "wheel not found or expired"})
		return nil, false
	}
	selector, ok := value.(*Selector)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wheel not found or expired"})
		return nil, false
	}
	return selector, true
}
