package planner

import (
	"time"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

const (
	defaultInterest     = "general"
	defaultTravelerType = "solo"
)

// BuildItineraryRequest validates a snapshot of the session and produces the
// canonical request payload. Checks run in a fixed order and the first
// failure wins; a partial request is never attempted.
//
// Profile defaults (interests, traveler type) are applied here rather than
// upstream, so one session can be reused for profiles with different
// defaults.
func BuildItineraryRequest(s *Session, profile models.TripProfile) (*models.ItineraryRequest, error) {
	snap := s.Snapshot()

	if snap.Destination == "" {
		return nil, &models.ValidationError{Field: "destination", Reason: "destination is required"}
	}

	if snap.DurationDays < MinDurationDays || snap.DurationDays > MaxDurationDays {
		return nil, &models.ValidationError{Field: "duration_days", Reason: "duration must be between 1 and 30 days"}
	}

	if snap.StartDate == "" {
		return nil, &models.ValidationError{Field: "start_date", Reason: "start date is required"}
	}
	start, ok := parseDate(snap.StartDate)
	if !ok {
		return nil, &models.ValidationError{Field: "start_date", Reason: "start date is not a valid calendar date"}
	}
	// Today, in local calendar terms, is the earliest allowed start.
	today, _ := parseDate(time.Now().Format(DateLayout))
	if start.Before(today) {
		return nil, &models.ValidationError{Field: "start_date", Reason: "start date cannot be in the past"}
	}

	interests := profile.Interests
	if len(interests) == 0 {
		interests = []string{defaultInterest}
	}
	travelerType := profile.TravelerType
	if travelerType == "" {
		travelerType = defaultTravelerType
	}

	return &models.ItineraryRequest{
		Destination:  snap.Destination,
		DurationDays: snap.DurationDays,
		Budget:       snap.Budget,
		StartDate:    snap.StartDate,
		Interests:    interests,
		TravelerType: travelerType,
		UserID:       profile.UserID,
	}, nil
}
