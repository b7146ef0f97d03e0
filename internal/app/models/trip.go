package models

// TripMode selects which input modality currently drives the planning screen.
// It never gates which fields are populated; both modalities write into the
// same session state.
type TripMode string

const (
	ModeNaturalLanguage TripMode = "natural_language"
	ModeQuickForm       TripMode = "quick_form"
)

// TripProfile is the slice of the user profile the planner depends on. The
// profile itself is owned by the auth/profile service; it is passed in per
// request so the same session can be reused with different profiles.
type TripProfile struct {
	UserID       string   `json:"user_id"`
	Interests    []string `json:"interests"`
	TravelerType string   `json:"traveler_type"`
}

// ExtractionResult is produced by the remote extraction service from a
// free-text trip description. Consumed, not owned: every field is optional
// except the interpretation summary. Numeric fields are pointers so a genuine
// zero (budget 0) is distinguishable from "not mentioned".
type ExtractionResult struct {
	Destination           string   `json:"destination,omitempty"`
	DestinationConfidence string   `json:"destination_confidence,omitempty"`
	SuggestedDestinations []string `json:"suggested_destinations,omitempty"`
	DurationDays          *int     `json:"duration,omitempty"`
	Budget                *int     `json:"budget,omitempty"`
	StartDate             string   `json:"start_date,omitempty"`
	Interests             []string `json:"interests,omitempty"`
	Vibe                  string   `json:"vibe,omitempty"`
	TravelerType          string   `json:"traveler_type,omitempty"`
	MissingInfo           []string `json:"missing_info,omitempty"`
	Interpretation        string   `json:"ai_interpretation"`
}

// ItineraryRequest is the canonical, validated payload sent to the itinerary
// service. Built once, sent once, never mutated.
type ItineraryRequest struct {
	Destination  string   `json:"destination"`
	DurationDays int      `json:"duration"`
	Budget       int      `json:"budget"`
	StartDate    string   `json:"start_date"`
	Interests    []string `json:"interests"`
	TravelerType string   `json:"traveler_type"`
	UserID       string   `json:"user_id"`
}

// Hotel is one ranked recommendation. Slice order encodes the remote
// service's relevance ranking and must be preserved end to end.
type Hotel struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Rating         float64 `json:"rating"`
	FamousPlace    string  `json:"famous_place"`
	DistanceKm     float64 `json:"distance_to_attraction"`
	PricePerNight  int     `json:"price_per_night"`
	Address        string  `json:"address"`
	RelevanceScore float64 `json:"relevance_score"`
	BookingLink    string  `json:"booking_link"`
}

// Alert severities, most urgent first.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SafetyAlert is a single human-centric warning attached to a trip window.
type SafetyAlert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Action   string `json:"action"`
	Date     string `json:"date,omitempty"`
}

// GenerationResponse is the heterogeneous result of one itinerary generation.
// Optional fields resolve to documented defaults during composition; their
// absence is never an error.
type GenerationResponse struct {
	Success        bool          `json:"success"`
	Itinerary      string        `json:"itinerary"`
	FamousPlaces   []string      `json:"famous_places,omitempty"`
	Hotels         []Hotel       `json:"hotels,omitempty"`
	SafetyAlerts   []SafetyAlert `json:"safety_alerts,omitempty"`
	SafetyScore    *int          `json:"safety_score,omitempty"`
	BestTimeAdvice string        `json:"best_time_advice,omitempty"`
}

// BookingParams carries everything the booking-link generator needs. EndDate
// is always recomputed from StartDate plus DurationDays so the links stay
// consistent with what was actually requested, even when the narrative text
// disagrees.
type BookingParams struct {
	Destination  string `json:"destination"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
	Budget       int    `json:"budget"`
}

// BookingLink is one externally-encoded provider search URL.
type BookingLink struct {
	Provider string `json:"provider"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// DisplayModel is the fully-merged, renderer-ready view of one completed
// generation. Immutable; a new generation replaces it atomically.
type DisplayModel struct {
	ItineraryText  string        `json:"itinerary_text"`
	Hotels         []Hotel       `json:"hotels"`
	SafetyScore    int           `json:"safety_score"`
	SafetyAlerts   []SafetyAlert `json:"safety_alerts"`
	BestTimeAdvice string        `json:"best_time_advice"`
	BookingParams  BookingParams `json:"booking_params"`
}
