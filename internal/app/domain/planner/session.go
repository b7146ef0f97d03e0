package planner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

const (
	// DefaultDurationDays and DefaultBudget pre-fill a fresh session the way
	// the quick form opens.
	DefaultDurationDays = 3
	DefaultBudget       = 20000

	MinDurationDays = 1
	MaxDurationDays = 30
)

type sessionField string

const (
	fieldDestination  sessionField = "destination"
	fieldStartDate    sessionField = "start_date"
	fieldDurationDays sessionField = "duration_days"
	fieldBudget       sessionField = "budget"
)

// Session owns the two input modalities of one planning screen and their
// derived fields. It lives for a single screen visit and is never persisted;
// the registry evicts it on TTL. All access goes through the mutex because
// the HTTP layer may touch one session from concurrent requests, even though
// logically a session has a single owner.
type Session struct {
	mu sync.Mutex

	ID        uuid.UUID
	CreatedAt time.Time

	mode         models.TripMode
	destination  string
	startDate    string
	durationDays int
	budget       int
	endDate      string
	naturalText  string

	lastExtraction *models.ExtractionResult
	lastResult     *models.DisplayModel

	// touched records fields the user edited after the most recent extraction
	// call was issued. Reconciliation never overwrites a touched field.
	touched    map[sessionField]bool
	generating bool
}

// Snapshot is the immutable JSON view of a session.
type Snapshot struct {
	ID                  uuid.UUID                `json:"id"`
	Mode                models.TripMode          `json:"mode"`
	Destination         string                   `json:"destination,omitempty"`
	StartDate           string                   `json:"start_date,omitempty"`
	DurationDays        int                      `json:"duration_days"`
	Budget              int                      `json:"budget"`
	EndDate             string                   `json:"end_date,omitempty"`
	NaturalLanguageText string                   `json:"natural_language_text,omitempty"`
	LastExtraction      *models.ExtractionResult `json:"last_extraction,omitempty"`
	LastResult          *models.DisplayModel     `json:"last_result,omitempty"`
	Generating          bool                     `json:"generating"`
}

// NewSession opens a planning session with the quick-form defaults.
func NewSession() *Session {
	return &Session{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		mode:         models.ModeQuickForm,
		durationDays: DefaultDurationDays,
		budget:       DefaultBudget,
		touched:      make(map[sessionField]bool),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:                  s.ID,
		Mode:                s.mode,
		Destination:         s.destination,
		StartDate:           s.startDate,
		DurationDays:        s.durationDays,
		Budget:              s.budget,
		EndDate:             s.endDate,
		NaturalLanguageText: s.naturalText,
		LastExtraction:      s.lastExtraction,
		LastResult:          s.lastResult,
		Generating:          s.generating,
	}
}

// SetMode switches the driving modality. Populated fields are kept; the mode
// never gates them.
func (s *Session) SetMode(mode models.TripMode) error {
	if mode != models.ModeNaturalLanguage && mode != models.ModeQuickForm {
		return &models.ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

// SetDestination records a manual destination edit.
func (s *Session) SetDestination(destination string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = destination
	s.touched[fieldDestination] = true
}

// SetStartDate records a manual start-date edit and recomputes the end date.
func (s *Session) SetStartDate(startDate string) error {
	if startDate != "" {
		if _, ok := parseDate(startDate); !ok {
			return &models.ValidationError{Field: "start_date", Reason: fmt.Sprintf("%q is not a valid calendar date", startDate)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startDate = startDate
	s.touched[fieldStartDate] = true
	s.recomputeEndDate()
	return nil
}

// SetDurationDays records a manual duration edit. Values outside [1,30] are
// rejected, not clamped.
func (s *Session) SetDurationDays(days int) error {
	if days < MinDurationDays || days > MaxDurationDays {
		return &models.ValidationError{Field: "duration_days", Reason: fmt.Sprintf("duration must be between %d and %d days", MinDurationDays, MaxDurationDays)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.durationDays = days
	s.touched[fieldDurationDays] = true
	s.recomputeEndDate()
	return nil
}

// SetBudget records a manual budget edit. Budget is minor-unit-free and must
// not be negative.
func (s *Session) SetBudget(budget int) error {
	if budget < 0 {
		return &models.ValidationError{Field: "budget", Reason: "budget cannot be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = budget
	s.touched[fieldBudget] = true
	return nil
}

// SetNaturalLanguageText stores the raw free-text description.
func (s *Session) SetNaturalLanguageText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.naturalText = text
}

// recomputeEndDate keeps the derived end date in sync with its inputs. Caller
// holds the lock. The end date is absent whenever either input is invalid.
func (s *Session) recomputeEndDate() {
	if end, ok := ComputeEndDate(s.startDate, s.durationDays); ok {
		s.endDate = end
	} else {
		s.endDate = ""
	}
}

// beginExtraction marks the moment an extraction call is issued. Edits made
// after this point win over the extraction result when it lands.
func (s *Session) beginExtraction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = make(map[sessionField]bool)
}

// beginGeneration flips the in-flight flag. Returns false when a generation
// is already pending; the caller rejects, it never queues.
func (s *Session) beginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

func (s *Session) endGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// setResult atomically replaces the prior display model.
func (s *Session) setResult(result *models.DisplayModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = result
}
