package planner

import (
	"github.com/tripmitra/tripmitra/internal/app/models"
)

// defaultSafetyScore is the optimistic default: absent safety data means
// "assume safe", a deliberate policy rather than a silent bug.
const defaultSafetyScore = 100

// Compose merges one generation response into a renderer-ready DisplayModel.
// Every field has a documented default so a partial response can never
// produce a field-access failure:
//
//   - absent hotels / safety alerts become empty slices
//   - absent safety score becomes 100
//   - hotel order is preserved verbatim; it encodes the service's relevance
//     ranking and is never re-sorted here
//
// BookingParams.EndDate is recomputed from the request's own start date and
// duration, not copied from the response, so it always agrees with what was
// actually requested even if the narrative text disagrees.
func Compose(req *models.ItineraryRequest, resp *models.GenerationResponse) *models.DisplayModel {
	hotels := resp.Hotels
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	alerts := resp.SafetyAlerts
	if alerts == nil {
		alerts = []models.SafetyAlert{}
	}

	score := defaultSafetyScore
	if resp.SafetyScore != nil {
		score = *resp.SafetyScore
		if score < 0 {
			score = 0
		}
		if score > defaultSafetyScore {
			score = defaultSafetyScore
		}
	}

	endDate, _ := ComputeEndDate(req.StartDate, req.DurationDays)

	return &models.DisplayModel{
		ItineraryText:  resp.Itinerary,
		Hotels:         hotels,
		SafetyScore:    score,
		SafetyAlerts:   alerts,
		BestTimeAdvice: resp.BestTimeAdvice,
		BookingParams: models.BookingParams{
			Destination:  req.Destination,
			StartDate:    req.StartDate,
			EndDate:      endDate,
			DurationDays: req.DurationDays,
			Budget:       req.Budget,
		},
	}
}
