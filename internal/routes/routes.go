package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/ai"
	"github.com/tripmitra/tripmitra/internal/app/domain/planner"
	"github.com/tripmitra/tripmitra/internal/app/domain/safety"
	"github.com/tripmitra/tripmitra/internal/app/domain/wheel"
	"github.com/tripmitra/tripmitra/internal/app/observability/metrics"
	"github.com/tripmitra/tripmitra/internal/pkg/config"
)

// AppHandlers aggregates every HTTP handler group.
type AppHandlers struct {
	Planner *planner.Handler
	Wheel   *wheel.Handler
}

// Setup builds the dependency graph and registers all routes.
func Setup(r *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	handlers, err := buildHandlers(cfg, logger)
	if err != nil {
		return err
	}

	registerRoutes(r, handlers)
	return nil
}

func buildHandlers(cfg *config.Config, logger *zap.Logger) (*AppHandlers, error) {
	aiClient, err := ai.NewClient(context.Background(), cfg.AI.GeminiAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating AI client: %w", err)
	}

	safetyService := safety.NewServiceImpl(
		safety.NewOpenMeteoProvider(logger),
		aiClient,
		logger,
	)

	// The AI client backs all three generation capabilities.
	plannerService := planner.NewServiceImpl(
		aiClient,
		aiClient,
		aiClient,
		safetyService,
		cfg.Planner.SessionTTL,
		cfg.Planner.GenerationBudget,
		logger,
	)

	appMetrics := metrics.Get()
	return &AppHandlers{
		Planner: planner.NewHandler(plannerService, appMetrics, logger),
		Wheel:   wheel.NewHandler(cfg.Planner.SessionTTL, appMetrics, logger),
	}, nil
}

func registerRoutes(r *gin.Engine, h *AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	sessions := v1.Group("/planner/sessions")
	{
		sessions.POST("", h.Planner.CreateSession)
		sessions.GET("/:id", h.Planner.GetSession)
		sessions.PATCH("/:id", h.Planner.UpdateSession)
		sessions.POST("/:id/extract", h.Planner.Extract)
		sessions.POST("/:id/itinerary", h.Planner.Generate)
		sessions.GET("/:id/booking-links", h.Planner.BookingLinks)
	}

	wheels := v1.Group("/wheel")
	{
		wheels.POST("", h.Wheel.CreateWheel)
		wheels.GET("/:id", h.Wheel.GetWheel)
		wheels.POST("/:id/spin", h.Wheel.Spin)
	}
}
