package safety

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// MockForecastProvider is a mock implementation of ForecastProvider
type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) DailyForecast(ctx context.Context, destination, startDate, endDate string) (*Forecast, error) {
	args := m.Called(ctx, destination, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Forecast), args.Error(1)
}

// MockAdvisoryProvider is a mock implementation of AdvisoryProvider
type MockAdvisoryProvider struct {
	mock.Mock
}

func (m *MockAdvisoryProvider) Assess(ctx context.Context, destination, startDate, endDate string) (*Advisory, error) {
	args := m.Called(ctx, destination, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Advisory), args.Error(1)
}

func TestAlertsFromForecast(t *testing.T) {
	tests := []struct {
		name              string
		day               ForecastDay
		expectedDeduction int
		expectedSeverity  string
	}{
		{
			name:              "Heavy rain",
			day:               ForecastDay{Date: "2025-03-01", PrecipitationMM: 60},
			expectedDeduction: 15,
			expectedSeverity:  models.SeverityHigh,
		},
		{
			name:              "Moderate rain",
			day:               ForecastDay{Date: "2025-03-01", PrecipitationMM: 25},
			expectedDeduction: 5,
			expectedSeverity:  models.SeverityMedium,
		},
		{
			name:              "Strong wind",
			day:               ForecastDay{Date: "2025-03-01", WindSpeedKmh: 45},
			expectedDeduction: 10,
			expectedSeverity:  models.SeverityHigh,
		},
		{
			name:              "Thunderstorm",
			day:               ForecastDay{Date: "2025-03-01", WeatherCode: 95},
			expectedDeduction: 20,
			expectedSeverity:  models.SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts, deduction := AlertsFromForecast(&Forecast{Days: []ForecastDay{tt.day}})
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.expectedSeverity, alerts[0].Severity)
			assert.Equal(t, tt.expectedDeduction, deduction)
			assert.Equal(t, "2025-03-01", alerts[0].Date)
		})
	}
}

func TestAlertsFromForecastBelowThresholds(t *testing.T) {
	alerts, deduction := AlertsFromForecast(&Forecast{Days: []ForecastDay{
		{Date: "2025-03-01", PrecipitationMM: 20, WindSpeedKmh: 40, WeatherCode: 80},
	}})
	assert.Empty(t, alerts)
	assert.Zero(t, deduction)
}

func TestAlertsFromForecastStacksPerDay(t *testing.T) {
	// One very bad day: heavy rain, strong wind and a thunderstorm.
	alerts, deduction := AlertsFromForecast(&Forecast{Days: []ForecastDay{
		{Date: "2025-03-01", PrecipitationMM: 70, WindSpeedKmh: 50, WeatherCode: 96},
	}})
	assert.Len(t, alerts, 3)
	assert.Equal(t, 15+10+20, deduction)
}

func TestAlertsFromAdvisory(t *testing.T) {
	advisory := &Advisory{
		Disasters: []Disaster{
			{Type: "flood", Severity: models.SeverityHigh, Description: "Monsoon flooding", AffectedAreas: []string{"Old Town", "Riverside"}},
			{Type: "none"},
		},
		TravelAdvisory: TravelAdvisory{Level: "caution", Reason: "Crowded festival season", Recommendations: []string{"Avoid peak hours"}},
		HealthAlerts:   []string{"Dengue cases reported"},
	}

	alerts, deduction := AlertsFromAdvisory(advisory)

	require.Len(t, alerts, 3)
	assert.Equal(t, "Flood Alert", alerts[0].Title)
	assert.Contains(t, alerts[0].Action, "Old Town, Riverside")
	assert.Equal(t, "Exercise Caution", alerts[1].Title)
	assert.Equal(t, "Avoid peak hours", alerts[1].Action)
	assert.Equal(t, "Health Advisory", alerts[2].Title)

	// 30 (high disaster) + 10 (caution) + 5 (health)
	assert.Equal(t, 45, deduction)
}

func TestAlertsFromAdvisoryTitleCasesDisasterType(t *testing.T) {
	alerts, _ := AlertsFromAdvisory(&Advisory{
		Disasters: []Disaster{
			{Type: "flash flood", Severity: models.SeverityMedium},
			{Type: "cyclone", Severity: models.SeverityHigh},
		},
	})
	require.Len(t, alerts, 2)
	assert.Equal(t, "Flash Flood Alert", alerts[0].Title)
	assert.Equal(t, "Cyclone Alert", alerts[1].Title)
}

func TestAlertsFromAdvisoryAvoidLevel(t *testing.T) {
	alerts, deduction := AlertsFromAdvisory(&Advisory{
		TravelAdvisory: TravelAdvisory{Level: "avoid"},
	})
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "Safety concerns", alerts[0].Message)
	assert.Equal(t, 40, deduction)
}

func TestSortAlerts(t *testing.T) {
	alerts := []models.SafetyAlert{
		{Severity: "unknown", Title: "g"},
		{Severity: models.SeverityLow, Title: "a"},
		{Severity: models.SeverityCritical, Title: "b"},
		{Severity: models.SeverityMedium, Title: "c"},
		{Severity: models.SeverityMedium, Title: "d"},
		{Severity: models.SeverityHigh, Title: "e"},
		{Severity: "unknown", Title: "f"},
	}

	SortAlerts(alerts)

	titles := make([]string, len(alerts))
	for i, a := range alerts {
		titles[i] = a.Title
	}
	// Stable: c stays ahead of d. Unknown severities rank with "low" and
	// keep arrival order among that tie.
	assert.Equal(t, []string{"b", "e", "c", "d", "g", "a", "f"}, titles)
}

func TestAdviceForScore(t *testing.T) {
	assert.Contains(t, AdviceForScore(30), "rescheduling")
	assert.Contains(t, AdviceForScore(49), "rescheduling")
	assert.Contains(t, AdviceForScore(50), "flexible")
	assert.Contains(t, AdviceForScore(69), "flexible")
	assert.Contains(t, AdviceForScore(70), "good for travel")
	assert.Contains(t, AdviceForScore(100), "good for travel")
}

func TestAssessTrip(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockForecastProvider, *MockAdvisoryProvider)
		expectedScore int
		expectedTips  []string
	}{
		{
			name: "Both providers succeed",
			setupMock: func(forecast *MockForecastProvider, advisory *MockAdvisoryProvider) {
				forecast.On("DailyForecast", mock.Anything, "Goa", "2025-03-01", "2025-03-06").
					Return(&Forecast{Days: []ForecastDay{{Date: "2025-03-02", PrecipitationMM: 25}}}, nil)
				advisory.On("Assess", mock.Anything, "Goa", "2025-03-01", "2025-03-06").
					Return(&Advisory{
						TravelAdvisory: TravelAdvisory{Level: "caution"},
						GeneralTips:    []string{"Drink bottled water"},
					}, nil)
			},
			expectedScore: 85, // 100 - 5 (rain) - 10 (caution)
			expectedTips:  []string{"Drink bottled water"},
		},
		{
			name: "Forecast fails, advisory still scores",
			setupMock: func(forecast *MockForecastProvider, advisory *MockAdvisoryProvider) {
				forecast.On("DailyForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("open-meteo unreachable"))
				advisory.On("Assess", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&Advisory{TravelAdvisory: TravelAdvisory{Level: "safe"}}, nil)
			},
			expectedScore: 100,
			expectedTips:  fallbackTips,
		},
		{
			name: "Both providers fail degrades to optimistic report",
			setupMock: func(forecast *MockForecastProvider, advisory *MockAdvisoryProvider) {
				forecast.On("DailyForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("down"))
				advisory.On("Assess", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("down"))
			},
			expectedScore: 100,
			expectedTips:  fallbackTips,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := new(MockForecastProvider)
			advisory := new(MockAdvisoryProvider)
			tt.setupMock(forecast, advisory)

			svc := NewServiceImpl(forecast, advisory, zap.NewNop())
			report, err := svc.AssessTrip(context.Background(), "Goa", "2025-03-01", "2025-03-06")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedScore, report.Score)
			assert.Equal(t, tt.expectedTips, report.GeneralTips)
			assert.NotEmpty(t, report.BestTimeAdvice)
			assert.NotEmpty(t, report.Rating)

			forecast.AssertExpectations(t)
			advisory.AssertExpectations(t)
		})
	}
}

func TestAssessTripScoreFloorsAtZero(t *testing.T) {
	forecast := new(MockForecastProvider)
	advisory := new(MockAdvisoryProvider)

	forecast.On("DailyForecast", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&Forecast{Days: []ForecastDay{
			{Date: "2025-03-01", PrecipitationMM: 70, WindSpeedKmh: 50, WeatherCode: 96},
			{Date: "2025-03-02", PrecipitationMM: 70, WindSpeedKmh: 50, WeatherCode: 96},
		}}, nil)
	advisory.On("Assess", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&Advisory{
			Disasters:      []Disaster{{Type: "cyclone", Severity: models.SeverityCritical, Description: "Cyclone warning"}},
			TravelAdvisory: TravelAdvisory{Level: "avoid"},
		}, nil)

	svc := NewServiceImpl(forecast, advisory, zap.NewNop())
	report, err := svc.AssessTrip(context.Background(), "Goa", "2025-03-01", "2025-03-03")

	require.NoError(t, err)
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, "Risk", report.Rating)
	// Most urgent first after the merge
	require.NotEmpty(t, report.Alerts)
	assert.Equal(t, models.SeverityCritical, report.Alerts[0].Severity)
}
