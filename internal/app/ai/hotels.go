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

const hotelsPromptTemplate = `Recommend up to 5 hotels in %s for a traveler with a total trip budget of INR %d.

The traveler plans to visit these attractions:
%s

Rank hotels by how well they fit: proximity to the listed attractions first, then value for the budget. Order the list best match first.

Return ONLY a JSON object with format:
{
  "hotels": [
    {
      "name": "Hotel name",
      "type": "hotel/hostel/resort/guesthouse",
      "rating": 4.2,
      "famous_place": "nearest listed attraction",
      "distance_to_attraction": 1.5,
      "price_per_night": 2500,
      "address": "street address",
      "relevance_score": 0.92
    }
  ]
}

rating is 0-5, distance_to_attraction is in km, relevance_score is 0-1.`

// RecommendHotels returns a ranked hotel list for the destination. The slice
// order is the ranking; callers must preserve it. A failed call is reported
// to the caller, which treats hotels as optional and degrades to an empty
// list.
func (c *Client) RecommendHotels(ctx context.Context, destination string, budget int, famousPlaces []string) ([]models.Hotel, error) {
	ctx, span := otel.Tracer("aiClient").Start(ctx, "RecommendHotels", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.Int("famous_places", len(famousPlaces)),
	))
	defer span.End()

	l := c.logger.With(zap.String("method", "RecommendHotels"), zap.String("destination", destination))

	places := "the city center"
	if len(famousPlaces) > 0 {
		places = "- " + strings.Join(famousPlaces, "\n- ")
	}

	raw, err := c.generateText(ctx, fmt.Sprintf(hotelsPromptTemplate, destination, budget, places), jsonConfig(0.4))
	if err != nil {
		l.Warn("Hotel recommendation call failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hotel recommendation call failed")
		return nil, fmt.Errorf("%w: %s", models.ErrRemoteCallFailure, err)
	}

	var payload struct {
		Hotels []models.Hotel `json:"hotels"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &payload); err != nil {
		l.Warn("Could not parse hotel recommendation response", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not parse hotel recommendation response")
		return nil, fmt.Errorf("%w: unparseable hotel response: %s", models.ErrRemoteCallFailure, err)
	}

	l.Info("Hotel recommendations received", zap.Int("count", len(payload.Hotels)))
	span.SetStatus(codes.Ok, "Hotel recommendations received")
	return payload.Hotels, nil
}
