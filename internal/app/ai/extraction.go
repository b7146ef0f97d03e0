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

	"github.com/tripmitra/tripmitra/internal/app/models"
)

const extractionPromptTemplate = `You are a travel planning assistant. A user said:

"%s"

Their profile shows they like: %s
Their usual travel style: %s

Analyze their request intelligently:

1. If they mentioned a destination, extract it
2. If they didn't mention destination, suggest 3 destinations based on their interests
3. Understand intent even if vague ("want to chill" = relaxed trip, "adventure" = trekking/activities)
4. Guess duration from context ("weekend" = 2-3 days, "week" = 7 days, "vacation" = 5-7 days)
5. Estimate budget from cues ("cheap" = 15000, "moderate" = 30000, "luxury" = 60000+)
6. Understand dates ("next month" = first week of next month, "December" = early December)

Return JSON:
{
  "destination": "city name or null",
  "destination_confidence": "high/medium/low",
  "suggested_destinations": ["option1", "option2", "option3"] if no destination,
  "duration": number of days or your best guess,
  "budget": amount in INR or your estimate,
  "start_date": "YYYY-MM-DD" or null,
  "interests": [extracted interests from text],
  "vibe": "relaxed/adventure/cultural/party/family/romantic",
  "traveler_type": "solo/couple/family/friends",
  "missing_info": ["what you need to ask user"],
  "ai_interpretation": "summary of what you understood in friendly language"
}

Be conversational and helpful. Make intelligent guesses based on context.`

// ExtractTripDetails turns a free-text trip description into structured
// fields. The model is allowed to guess; ambiguity shows up as suggested
// destinations and missing_info rather than empty output.
func (c *Client) ExtractTripDetails(ctx context.Context, text string, profile models.TripProfile) (*models.ExtractionResult, error) {
	ctx, span := otel.Tracer("aiClient").Start(ctx, "ExtractTripDetails", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
	))
	defer span.End()

	l := c.logger.With(zap.String("method", "ExtractTripDetails"))
	l.Debug("Extracting trip details from text", zap.Int("length", len(text)))

	interests := "general travel"
	if len(profile.Interests) > 0 {
		interests = strings.Join(profile.Interests, ", ")
	}
	travelStyle := profile.TravelerType
	if travelStyle == "" {
		travelStyle = "casual"
	}

	prompt := fmt.Sprintf(extractionPromptTemplate, text, interests, travelStyle)

	raw, err := c.generateText(ctx, prompt, jsonConfig(0.7))
	if err != nil {
		l.Error("Extraction call failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Extraction call failed")
		return nil, fmt.Errorf("%w: %s", models.ErrRemoteCallFailure, err)
	}

	var extracted models.ExtractionResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &extracted); err != nil {
		l.Error("Failed to parse extraction response", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse extraction response")
		return nil, fmt.Errorf("%w: unparseable extraction response: %s", models.ErrRemoteCallFailure, err)
	}

	l.Info("Trip details extracted",
		zap.String("destination", extracted.Destination),
		zap.Int("suggestions", len(extracted.SuggestedDestinations)))
	span.SetStatus(codes.Ok, "Trip details extracted")
	return &extracted, nil
}
