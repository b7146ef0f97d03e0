package planner

import (
	"github.com/samber/lo"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// ReconcileOutcome reports what one merge actually did, so the caller can
// surface it without re-deriving anything.
type ReconcileOutcome struct {
	// AppliedFields lists the session fields the extraction filled in,
	// in rule order.
	AppliedFields []string `json:"applied_fields"`
	// SuggestedDestinations is non-empty when the service proposed
	// destinations instead of naming one. The reconciler never picks one
	// itself; the first suggestion is applied only when the user explicitly
	// confirms it through a normal destination edit.
	SuggestedDestinations []string `json:"suggested_destinations,omitempty"`
	// MergedInterests is the union of the profile's interest set and the
	// interests found in the text. The profile set is maintained by the
	// caller, not the session.
	MergedInterests []string `json:"merged_interests,omitempty"`
}

// Reconcile merges an extraction result into the session, field by field, in
// a fixed rule order. A field the user edited after the extraction call was
// issued is never overwritten; user edits always win. Out-of-range values
// are ignored outright, keeping the prior value; nothing is clamped.
//
// Reconcile is only called after a successful extraction. When the remote
// call fails the session is left exactly as it was.
func Reconcile(s *Session, extraction *models.ExtractionResult, profileInterests []string) ReconcileOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := ReconcileOutcome{}

	if extraction.Destination != "" {
		if !s.touched[fieldDestination] {
			s.destination = extraction.Destination
			outcome.AppliedFields = append(outcome.AppliedFields, string(fieldDestination))
		}
	} else if len(extraction.SuggestedDestinations) > 0 {
		outcome.SuggestedDestinations = extraction.SuggestedDestinations
	}

	if d := extraction.DurationDays; d != nil && *d >= MinDurationDays && *d <= MaxDurationDays && !s.touched[fieldDurationDays] {
		s.durationDays = *d
		outcome.AppliedFields = append(outcome.AppliedFields, string(fieldDurationDays))
	}

	if b := extraction.Budget; b != nil && *b >= 0 && !s.touched[fieldBudget] {
		s.budget = *b
		outcome.AppliedFields = append(outcome.AppliedFields, string(fieldBudget))
	}

	if extraction.StartDate != "" && !s.touched[fieldStartDate] {
		if _, ok := parseDate(extraction.StartDate); ok {
			s.startDate = extraction.StartDate
			outcome.AppliedFields = append(outcome.AppliedFields, string(fieldStartDate))
		}
	}

	s.recomputeEndDate()
	s.lastExtraction = extraction

	// Interests are additive: union, never replacement.
	outcome.MergedInterests = lo.Union(profileInterests, extraction.Interests)

	return outcome
}
