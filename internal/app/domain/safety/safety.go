package safety

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// Forecast is the daily weather outlook for a trip window.
type Forecast struct {
	Days []ForecastDay
}

type ForecastDay struct {
	Date            string
	TempMaxC        float64
	TempMinC        float64
	PrecipitationMM float64
	WindSpeedKmh    float64
	WeatherCode     int
}

// Advisory is the structured risk assessment produced by the advisory
// provider (disasters, travel advisory level, health concerns).
type Advisory struct {
	Disasters      []Disaster     `json:"disasters"`
	TravelAdvisory TravelAdvisory `json:"travel_advisory"`
	HealthAlerts   []string       `json:"health_alerts"`
	GeneralTips    []string       `json:"general_safety_tips"`
}

type Disaster struct {
	Type          string   `json:"type"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	AffectedAreas []string `json:"affected_areas"`
}

type TravelAdvisory struct {
	Level           string   `json:"level"` // safe, caution, avoid
	Reason          string   `json:"reason"`
	Recommendations []string `json:"recommendations"`
}

// Report is the merged safety view for one destination and date range.
type Report struct {
	Score          int                  `json:"safety_score"`
	Rating         string               `json:"safety_rating"`
	Alerts         []models.SafetyAlert `json:"alerts"`
	GeneralTips    []string             `json:"general_safety_tips"`
	BestTimeAdvice string               `json:"best_time_advice"`
}

// ForecastProvider fetches a daily weather forecast for a destination.
type ForecastProvider interface {
	DailyForecast(ctx context.Context, destination, startDate, endDate string) (*Forecast, error)
}

// AdvisoryProvider assesses disaster, advisory and health risks.
type AdvisoryProvider interface {
	Assess(ctx context.Context, destination, startDate, endDate string) (*Advisory, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service defines the safety assessment contract.
type Service interface {
	AssessTrip(ctx context.Context, destination, startDate, endDate string) (*Report, error)
}

type ServiceImpl struct {
	logger   *zap.Logger
	forecast ForecastProvider
	advisory AdvisoryProvider
}

func NewServiceImpl(forecast ForecastProvider, advisory AdvisoryProvider, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		forecast: forecast,
		advisory: advisory,
	}
}

// fallbackTips is used when the advisory provider is unavailable; the report
// still carries practical baseline advice.
var fallbackTips = []string{
	"Keep emergency numbers handy",
	"Share itinerary with family",
	"Have travel insurance",
}

// AssessTrip merges weather-derived alerts with the advisory assessment into
// one scored report. Each provider degrades independently: a failed forecast
// or advisory call narrows the report instead of failing it.
func (s *ServiceImpl) AssessTrip(ctx context.Context, destination, startDate, endDate string) (*Report, error) {
	ctx, span := otel.Tracer("safetyService").Start(ctx, "AssessTrip", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.String("start_date", startDate),
		attribute.String("end_date", endDate),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "AssessTrip"), zap.String("destination", destination))

	score := 100
	var alerts []models.SafetyAlert
	tips := fallbackTips

	forecast, err := s.forecast.DailyForecast(ctx, destination, startDate, endDate)
	if err != nil {
		l.Warn("Weather forecast unavailable, skipping weather alerts", zap.Error(err))
		span.RecordError(err)
	} else {
		weatherAlerts, deduction := AlertsFromForecast(forecast)
		alerts = append(alerts, weatherAlerts...)
		score -= deduction
	}

	advisory, err := s.advisory.Assess(ctx, destination, startDate, endDate)
	if err != nil {
		l.Warn("Advisory assessment unavailable, using fallback tips", zap.Error(err))
		span.RecordError(err)
	} else {
		advisoryAlerts, deduction := AlertsFromAdvisory(advisory)
		alerts = append(alerts, advisoryAlerts...)
		score -= deduction
		if len(advisory.GeneralTips) > 0 {
			tips = advisory.GeneralTips
		}
	}

	if score < 0 {
		score = 0
	}
	SortAlerts(alerts)

	report := &Report{
		Score:          score,
		Rating:         ratingForScore(score),
		Alerts:         alerts,
		GeneralTips:    tips,
		BestTimeAdvice: AdviceForScore(score),
	}

	l.Info("Safety assessment complete", zap.Int("score", score), zap.Int("alerts", len(alerts)))
	span.SetAttributes(attribute.Int("safety.score", score), attribute.Int("safety.alerts", len(alerts)))
	span.SetStatus(codes.Ok, "Safety assessment complete")
	return report, nil
}

// AlertsFromForecast derives weather alerts and the total score deduction
// from one forecast. Thresholds, in order per day: heavy rain above 50 mm
// (high, -15), moderate rain above 20 mm (medium, -5), wind above 40 km/h
// (high, -10), thunderstorm weather codes 95+ (critical, -20).
func AlertsFromForecast(f *Forecast) ([]models.SafetyAlert, int) {
	var alerts []models.SafetyAlert
	deduction := 0

	for _, day := range f.Days {
		switch {
		case day.PrecipitationMM > 50:
			alerts = append(alerts, models.SafetyAlert{
				Type:     "severe_weather",
				Severity: models.SeverityHigh,
				Title:    "Heavy Rain Warning",
				Message:  fmt.Sprintf("Heavy rainfall expected on %s (%.0fmm). Risk of flooding in low-lying areas.", day.Date, day.PrecipitationMM),
				Action:   "Carry raincoat, avoid outdoor activities, check local flood alerts.",
				Date:     day.Date,
			})
			deduction += 15
		case day.PrecipitationMM > 20:
			alerts = append(alerts, models.SafetyAlert{
				Type:     "weather",
				Severity: models.SeverityMedium,
				Title:    "Rainy Day",
				Message:  fmt.Sprintf("Moderate rain expected on %s (%.0fmm).", day.Date, day.PrecipitationMM),
				Action:   "Pack umbrella and waterproof bags.",
				Date:     day.Date,
			})
			deduction += 5
		}

		if day.WindSpeedKmh > 40 {
			alerts = append(alerts, models.SafetyAlert{
				Type:     "severe_weather",
				Severity: models.SeverityHigh,
				Title:    "Strong Wind Warning",
				Message:  fmt.Sprintf("High winds expected on %s (up to %.0f km/h).", day.Date, day.WindSpeedKmh),
				Action:   "Avoid beach activities, secure loose items, be cautious on roads.",
				Date:     day.Date,
			})
			deduction += 10
		}

		if day.WeatherCode >= 95 {
			alerts = append(alerts, models.SafetyAlert{
				Type:     "severe_weather",
				Severity: models.SeverityCritical,
				Title:    "Thunderstorm Alert",
				Message:  fmt.Sprintf("Thunderstorms expected on %s. Lightning risk.", day.Date),
				Action:   "Stay indoors during storms, avoid open areas, unplug electronics.",
				Date:     day.Date,
			})
			deduction += 20
		}
	}

	return alerts, deduction
}

var disasterDeductions = map[string]int{
	models.SeverityLow:      5,
	models.SeverityMedium:   15,
	models.SeverityHigh:     30,
	models.SeverityCritical: 50,
}

// AlertsFromAdvisory converts an advisory assessment into alerts plus its
// total score deduction.
func AlertsFromAdvisory(a *Advisory) ([]models.SafetyAlert, int) {
	var alerts []models.SafetyAlert
	deduction := 0
	tc := cases.Title(language.English)

	for _, disaster := range a.Disasters {
		if disaster.Type == "none" || disaster.Type == "" {
			continue
		}
		areas := "Unknown"
		if len(disaster.AffectedAreas) > 0 {
			areas = ""
			for i, area := range disaster.AffectedAreas {
				if i > 0 {
					areas += ", "
				}
				areas += area
			}
		}
		alerts = append(alerts, models.SafetyAlert{
			Type:     "natural_disaster",
			Severity: disaster.Severity,
			Title:    fmt.Sprintf("%s Alert", tc.String(disaster.Type)),
			Message:  disaster.Description,
			Action:   fmt.Sprintf("Monitor local news, follow evacuation orders if issued. Affected areas: %s", areas),
			Date:     disaster.Date,
		})
		if d, ok := disasterDeductions[disaster.Severity]; ok {
			deduction += d
		} else {
			deduction += 10
		}
	}

	switch a.TravelAdvisory.Level {
	case "avoid":
		alerts = append(alerts, models.SafetyAlert{
			Type:     "travel_advisory",
			Severity: models.SeverityCritical,
			Title:    "Travel Not Recommended",
			Message:  reasonOrDefault(a.TravelAdvisory.Reason, "Safety concerns"),
			Action:   "Consider postponing trip or choosing alternative destination.",
		})
		deduction += 40
	case "caution":
		action := "Stay alert"
		if len(a.TravelAdvisory.Recommendations) > 0 {
			action = ""
			for i, rec := range a.TravelAdvisory.Recommendations {
				if i > 0 {
					action += ", "
				}
				action += rec
			}
		}
		alerts = append(alerts, models.SafetyAlert{
			Type:     "travel_advisory",
			Severity: models.SeverityMedium,
			Title:    "Exercise Caution",
			Message:  reasonOrDefault(a.TravelAdvisory.Reason, "Minor safety concerns"),
			Action:   action,
		})
		deduction += 10
	}

	for _, health := range a.HealthAlerts {
		alerts = append(alerts, models.SafetyAlert{
			Type:     "health",
			Severity: models.SeverityMedium,
			Title:    "Health Advisory",
			Message:  health,
			Action:   "Carry necessary medications, get vaccinations if needed.",
		})
		deduction += 5
	}

	return alerts, deduction
}

var severityOrder = map[string]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
	models.SeverityLow:      3,
}

// SortAlerts orders alerts most urgent first. Unknown severities rank with
// "low". The sort is stable so alerts of equal rank keep arrival order.
func SortAlerts(alerts []models.SafetyAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})
}

func severityRank(severity string) int {
	if rank, ok := severityOrder[severity]; ok {
		return rank
	}
	return severityOrder[models.SeverityLow]
}

// AdviceForScore maps a safety score to the best-time-to-visit line.
func AdviceForScore(score int) string {
	switch {
	case score < 50:
		return "Current conditions are not ideal. Consider rescheduling your trip."
	case score < 70:
		return "Weather conditions may affect your plans. Stay flexible and monitor updates."
	default:
		return "Conditions look good for travel! Have a safe trip."
	}
}

func ratingForScore(score int) string {
	switch {
	case score >= 80:
		return "Safe"
	case score >= 60:
		return "Caution"
	default:
		return "Risk"
	}
}

func reasonOrDefault(reason, fallback string) string {
	if reason == "" {
		return fallback
	}
	return reason
}

