package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tripmitra/tripmitra/internal/app/domain/safety"
	"github.com/tripmitra/tripmitra/internal/app/models"
)

// TripExtractor turns free text into structured trip fields.
type TripExtractor interface {
	ExtractTripDetails(ctx context.Context, text string, profile models.TripProfile) (*models.ExtractionResult, error)
}

// ItineraryGenerator produces the narrative itinerary and the famous places
// it mentions.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, req *models.ItineraryRequest) (itinerary string, famousPlaces []string, err error)
}

// HotelRecommender returns a relevance-ranked hotel list.
type HotelRecommender interface {
	RecommendHotels(ctx context.Context, destination string, budget int, famousPlaces []string) ([]models.Hotel, error)
}

// UpdateSessionParams carries one PATCH worth of manual edits. Nil fields are
// untouched.
type UpdateSessionParams struct {
	Mode                *models.TripMode `json:"mode,omitempty"`
	Destination         *string          `json:"destination,omitempty"`
	StartDate           *string          `json:"start_date,omitempty"`
	DurationDays        *int             `json:"duration_days,omitempty"`
	Budget              *int             `json:"budget,omitempty"`
	NaturalLanguageText *string          `json:"natural_language_text,omitempty"`
}

// ExtractReport is what one extraction round returns to the caller: the raw
// result (retained for display), what the merge applied, and any destination
// suggestions awaiting an explicit user choice.
type ExtractReport struct {
	Extraction *models.ExtractionResult `json:"extraction"`
	Outcome    ReconcileOutcome         `json:"outcome"`
	Session    Snapshot                 `json:"session"`
}

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for planning sessions.
type Service interface {
	CreateSession(ctx context.Context) Snapshot
	GetSession(ctx context.Context, id uuid.UUID) (Snapshot, error)
	UpdateSession(ctx context.Context, id uuid.UUID, params UpdateSessionParams) (Snapshot, error)
	ExtractAndReconcile(ctx context.Context, id uuid.UUID, text string, profile models.TripProfile) (*ExtractReport, error)
	GenerateItinerary(ctx context.Context, id uuid.UUID, profile models.TripProfile) (*models.DisplayModel, error)
	BookingLinks(ctx context.Context, id uuid.UUID) ([]models.BookingLink, error)
}

// ServiceImpl owns the in-memory session registry. Sessions are scoped to a
// screen visit: the TTL cache stands in for "the screen closed" since an
// HTTP server never hears about that directly. Nothing is persisted.
type ServiceImpl struct {
	logger    *zap.Logger
	sessions  *cache.Cache
	extractor TripExtractor
	generator ItineraryGenerator
	hotels    HotelRecommender
	safety    safety.Service

	// generationBudget caps one full generation round including the hotel
	// and safety fan-out. Zero means no cap.
	generationBudget time.Duration
}

func NewServiceImpl(
	extractor TripExtractor,
	generator ItineraryGenerator,
	hotels HotelRecommender,
	safetyService safety.Service,
	sessionTTL time.Duration,
	generationBudget time.Duration,
	logger *zap.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:           logger,
		sessions:         cache.New(sessionTTL, 2*sessionTTL),
		extractor:        extractor,
		generator:        generator,
		hotels:           hotels,
		safety:           safetyService,
		generationBudget: generationBudget,
	}
}

func (s *ServiceImpl) CreateSession(ctx context.Context) Snapshot {
	_, span := otel.Tracer("plannerService").Start(ctx, "CreateSession")
	defer span.End()

	sess := NewSession()
	s.sessions.SetDefault(sess.ID.String(), sess)

	s.logger.Info("Planning session opened", zap.String("sessionID", sess.ID.String()))
	span.SetStatus(codes.Ok, "Planning session opened")
	return sess.Snapshot()
}

func (s *ServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	_, span := otel.Tracer("plannerService").Start(ctx, "GetSession", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	sess, err := s.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return Snapshot{}, err
	}
	span.SetStatus(codes.Ok, "Session found")
	return sess.Snapshot(), nil
}

// UpdateSession applies manual field edits. Every edit marks its field as
// user-touched so a later extraction merge cannot override it.
func (s *ServiceImpl) UpdateSession(ctx context.Context, id uuid.UUID, params UpdateSessionParams) (Snapshot, error) {
	_, span := otel.Tracer("plannerService").Start(ctx, "UpdateSession", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	sess, err := s.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return Snapshot{}, err
	}

	if params.Mode != nil {
		if err := sess.SetMode(*params.Mode); err != nil {
			return Snapshot{}, err
		}
	}
	if params.Destination != nil {
		sess.SetDestination(*params.Destination)
	}
	if params.StartDate != nil {
		if err := sess.SetStartDate(*params.StartDate); err != nil {
			return Snapshot{}, err
		}
	}
	if params.DurationDays != nil {
		if err := sess.SetDurationDays(*params.DurationDays); err != nil {
			return Snapshot{}, err
		}
	}
	if params.Budget != nil {
		if err := sess.SetBudget(*params.Budget); err != nil {
			return Snapshot{}, err
		}
	}
	if params.NaturalLanguageText != nil {
		sess.SetNaturalLanguageText(*params.NaturalLanguageText)
	}

	span.SetStatus(codes.Ok, "Session updated")
	return sess.Snapshot(), nil
}

// ExtractAndReconcile runs the extraction service over the session's free
// text and merges the result. When the remote call fails the session is left
// exactly as it was, so the user can retry without re-entering anything.
func (s *ServiceImpl) ExtractAndReconcile(ctx context.Context, id uuid.UUID, text string, profile models.TripProfile) (*ExtractReport, error) {
	ctx, span := otel.Tracer("plannerService").Start(ctx, "ExtractAndReconcile", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "ExtractAndReconcile"), zap.String("sessionID", id.String()))

	sess, err := s.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return nil, err
	}

	if text == "" {
		text = sess.Snapshot().NaturalLanguageText
	}
	if text == "" {
		return nil, models.ErrEmptyTripText
	}
	sess.SetNaturalLanguageText(text)

	// From this point on, user edits outrank whatever the extraction returns.
	sess.beginExtraction()

	extraction, err := s.extractor.ExtractTripDetails(ctx, text, profile)
	if err != nil {
		l.Error("Extraction failed, session unchanged", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Extraction failed")
		return nil, fmt.Errorf("error extracting trip details: %w", err)
	}

	outcome := Reconcile(sess, extraction, profile.Interests)

	l.Info("Extraction reconciled",
		zap.Strings("applied", outcome.AppliedFields),
		zap.Int("suggestions", len(outcome.SuggestedDestinations)))
	span.SetStatus(codes.Ok, "Extraction reconciled")
	return &ExtractReport{
		Extraction: extraction,
		Outcome:    outcome,
		Session:    sess.Snapshot(),
	}, nil
}

// GenerateItinerary validates the session, sends one canonical request and
// composes the heterogeneous results into a DisplayModel. One generation per
// session at a time: a second request while one is pending is rejected, never
// queued. Hotels and safety are fetched concurrently after the narrative and
// each degrades independently to its documented default.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, id uuid.UUID, profile models.TripProfile) (*models.DisplayModel, error) {
	ctx, span := otel.Tracer("plannerService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "GenerateItinerary"), zap.String("sessionID", id.String()))

	sess, err := s.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return nil, err
	}

	req, err := BuildItineraryRequest(sess, profile)
	if err != nil {
		l.Warn("Request validation failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request validation failed")
		return nil, err
	}

	if !sess.beginGeneration() {
		l.Warn("Generation already in flight")
		span.SetStatus(codes.Error, "Generation already in flight")
		return nil, models.ErrGenerationInFlight
	}
	defer sess.endGeneration()

	if s.generationBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.generationBudget)
		defer cancel()
	}

	itinerary, famousPlaces, err := s.generator.GenerateItinerary(ctx, req)
	if err != nil {
		l.Error("Itinerary generation failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary generation failed")
		return nil, fmt.Errorf("error generating itinerary: %w", err)
	}

	resp := &models.GenerationResponse{
		Success:      true,
		Itinerary:    itinerary,
		FamousPlaces: famousPlaces,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hotels, err := s.hotels.RecommendHotels(gctx, req.Destination, req.Budget, famousPlaces)
		if err != nil {
			l.Warn("Hotel recommendation unavailable, continuing without hotels", zap.Error(err))
			return nil
		}
		resp.Hotels = hotels
		return nil
	})
	g.Go(func() error {
		endDate, ok := ComputeEndDate(req.StartDate, req.DurationDays)
		if !ok {
			return nil
		}
		report, err := s.safety.AssessTrip(gctx, req.Destination, req.StartDate, endDate)
		if err != nil {
			l.Warn("Safety assessment unavailable, using optimistic default", zap.Error(err))
			return nil
		}
		resp.SafetyAlerts = report.Alerts
		resp.SafetyScore = &report.Score
		resp.BestTimeAdvice = report.BestTimeAdvice
		return nil
	})
	_ = g.Wait()

	display := Compose(req, resp)
	sess.setResult(display)

	l.Info("Itinerary composed",
		zap.Int("hotels", len(display.Hotels)),
		zap.Int("safety_alerts", len(display.SafetyAlerts)),
		zap.Int("safety_score", display.SafetyScore))
	span.SetStatus(codes.Ok, "Itinerary composed")
	return display, nil
}

// BookingLinks regenerates the provider link set from the last composed
// result. Deterministic: same params, same bytes.
func (s *ServiceImpl) BookingLinks(ctx context.Context, id uuid.UUID) ([]models.BookingLink, error) {
	_, span := otel.Tracer("plannerService").Start(ctx, "BookingLinks", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	sess, err := s.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return nil, err
	}

	snap := sess.Snapshot()
	if snap.LastResult == nil {
		span.SetStatus(codes.Error, "No itinerary generated yet")
		return nil, fmt.Errorf("%w: no itinerary generated yet", models.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Booking links generated")
	return GenerateBookingLinks(snap.LastResult.BookingParams), nil
}

func (s *ServiceImpl) lookup(id uuid.UUID) (*Session, error) {
	value, found := s.sessions.Get(id.String())
	if !found {
		return nil, models.ErrSessionNotFound
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return sess, nil
}
