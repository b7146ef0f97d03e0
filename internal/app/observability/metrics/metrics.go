package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	SessionsOpenedTotal     metric.Int64Counter
	ExtractionsTotal        metric.Int64Counter
	GenerationsTotal        metric.Int64Counter
	GenerationDuration      metric.Float64Histogram
	GenerationRejectedTotal metric.Int64Counter
	WheelSpinsTotal         metric.Int64Counter
	RemoteCallErrorsTotal   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("tripmitra")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.SessionsOpenedTotal, err = meter.Int64Counter(
			"planner_sessions_opened_total",
			metric.WithDescription("Total number of planning sessions opened"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_sessions_opened_total: %v", err)
		}

		m.ExtractionsTotal, err = meter.Int64Counter(
			"planner_extractions_total",
			metric.WithDescription("Total number of trip-detail extraction calls"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_extractions_total: %v", err)
		}

		m.GenerationsTotal, err = meter.Int64Counter(
			"planner_generations_total",
			metric.WithDescription("Total number of itinerary generations"),
			metric.WithUnit("{generation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_generations_total: %v", err)
		}

		m.GenerationDuration, err = meter.Float64Histogram(
			"planner_generation_duration_seconds",
			metric.WithDescription("Wall-clock duration of itinerary generation"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_generation_duration_seconds: %v", err)
		}

		m.GenerationRejectedTotal, err = meter.Int64Counter(
			"planner_generations_rejected_total",
			metric.WithDescription("Generations rejected because one was already in flight"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_generations_rejected_total: %v", err)
		}

		m.WheelSpinsTotal, err = meter.Int64Counter(
			"wheel_spins_total",
			metric.WithDescription("Total number of category wheel spins"),
			metric.WithUnit("{spin}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create wheel_spins_total: %v", err)
		}

		m.RemoteCallErrorsTotal, err = meter.Int64Counter(
			"remote_call_errors_total",
			metric.WithDescription("Total number of failed remote service calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create remote_call_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. Panics if
// InitAppMetrics was not called at startup.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
