package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

const itineraryPromptTemplate = `Create a detailed %d-day travel itinerary for %s.

User Profile:
- Budget: INR %d
- Interests: %s
- Traveler Type: %s

Include:
1. Day-wise schedule with timings (morning, afternoon, evening)
2. Mix of popular attractions AND hidden local gems
3. Street food spots and authentic local restaurants (not just chains)
4. Local transport details (specific bus numbers, metro routes, auto rickshaw fares)
5. Budget accommodation options (hostels for students, mid-range for families)
6. Daily cost breakdown (transport, food, activities, accommodation)
7. Best times to visit each place to avoid crowds
8. Safety tips and local etiquette

IMPORTANT: Clearly mention specific famous places/attractions by name.

Format it clearly with headers for each day. Make it practical, realistic, and budget-friendly.`

const famousPlacesPromptTemplate = `From this itinerary, extract all famous places/attractions mentioned:

%s

Return ONLY a JSON object with format:
{
  "places": ["Place 1", "Place 2", "Place 3"]
}

Extract specific attraction names, monuments, temples, beaches, etc. mentioned in the itinerary.`

// GenerateItinerary produces the narrative itinerary text for one validated
// request, then runs a second low-temperature pass over the text to pull out
// the famous places it names. The place list feeds hotel recommendation; its
// failure degrades to an empty list instead of failing the itinerary.
func (c *Client) GenerateItinerary(ctx context.Context, req *models.ItineraryRequest) (string, []string, error) {
	ctx, span := otel.Tracer("aiClient").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("destination", req.Destination),
		attribute.Int("duration_days", req.DurationDays),
	))
	defer span.End()

	l := c.logger.With(zap.String("method", "GenerateItinerary"), zap.String("destination", req.Destination))
	l.Debug("Generating itinerary")

	prompt := fmt.Sprintf(itineraryPromptTemplate,
		req.DurationDays, req.Destination, req.Budget,
		strings.Join(req.Interests, ", "), req.TravelerType)

	itinerary, err := c.generateText(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.8),
		MaxOutputTokens: 4096,
	})
	if err != nil {
		l.Error("Itinerary generation failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary generation failed")
		return "", nil, fmt.Errorf("%w: %s", models.ErrRemoteCallFailure, err)
	}

	places := c.extractFamousPlaces(ctx, itinerary)

	l.Info("Itinerary generated",
		zap.Int("length", len(itinerary)),
		zap.Int("famous_places", len(places)))
	span.SetAttributes(attribute.Int("famous_places", len(places)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return itinerary, places, nil
}

func (c *Client) extractFamousPlaces(ctx context.Context, itinerary string) []string {
	raw, err := c.generateText(ctx, fmt.Sprintf(famousPlacesPromptTemplate, itinerary), jsonConfig(0.3))
	if err != nil {
		c.logger.Warn("Famous-place extraction failed, continuing without places", zap.Error(err))
		return nil
	}

	var payload struct {
		Places []string `json:"places"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &payload); err != nil {
		c.logger.Warn("Could not parse famous-place response", zap.Error(err))
		return nil
	}
	return payload.Places
}
