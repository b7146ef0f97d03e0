package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

func TestComposeDefaultsForPartialResponse(t *testing.T) {
	req := &models.ItineraryRequest{
		Destination:  "Goa",
		DurationDays: 5,
		Budget:       30000,
		StartDate:    "2025-03-01",
	}
	resp := &models.GenerationResponse{
		Success:   true,
		Itinerary: "Day 1: beach.",
	}

	display := Compose(req, resp)

	assert.Equal(t, "Day 1: beach.", display.ItineraryText)
	assert.Equal(t, 100, display.SafetyScore)
	require.NotNil(t, display.Hotels)
	assert.Empty(t, display.Hotels)
	require.NotNil(t, display.SafetyAlerts)
	assert.Empty(t, display.SafetyAlerts)
	assert.Empty(t, display.BestTimeAdvice)
}

func TestComposeHotelOrderPreserved(t *testing.T) {
	req := &models.ItineraryRequest{Destination: "Goa", DurationDays: 3, StartDate: "2025-03-01"}
	resp := &models.GenerationResponse{
		Success: true,
		Hotels: []models.Hotel{
			{Name: "Beach Resort", RelevanceScore: 0.4},
			{Name: "Fort View", RelevanceScore: 0.9},
			{Name: "City Inn", RelevanceScore: 0.7},
		},
	}

	display := Compose(req, resp)

	// The service's ranking is authoritative; composition never re-sorts.
	require.Len(t, display.Hotels, 3)
	assert.Equal(t, "Beach Resort", display.Hotels[0].Name)
	assert.Equal(t, "Fort View", display.Hotels[1].Name)
	assert.Equal(t, "City Inn", display.Hotels[2].Name)
}

func TestComposeSafetyScoreClamped(t *testing.T) {
	tests := []struct {
		name     string
		score    *int
		expected int
	}{
		{name: "Absent defaults to 100", score: nil, expected: 100},
		{name: "Zero kept", score: intPtr(0), expected: 0},
		{name: "Mid-range kept", score: intPtr(65), expected: 65},
		{name: "Negative clamped to 0", score: intPtr(-10), expected: 0},
		{name: "Above 100 clamped", score: intPtr(140), expected: 100},
	}

	req := &models.ItineraryRequest{Destination: "Goa", DurationDays: 3, StartDate: "2025-03-01"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := Compose(req, &models.GenerationResponse{SafetyScore: tt.score})
			assert.Equal(t, tt.expected, display.SafetyScore)
		})
	}
}

func TestComposeBookingParamsEndDateRecomputed(t *testing.T) {
	req := &models.ItineraryRequest{
		Destination:  "Goa",
		DurationDays: 5,
		Budget:       30000,
		StartDate:    "2025-03-01",
	}
	resp := &models.GenerationResponse{
		Success:   true,
		Itinerary: "The trip runs March 1st to March 20th.", // narrative disagrees
	}

	display := Compose(req, resp)

	assert.Equal(t, models.BookingParams{
		Destination:  "Goa",
		StartDate:    "2025-03-01",
		EndDate:      "2025-03-06",
		DurationDays: 5,
		Budget:       30000,
	}, display.BookingParams)
}
