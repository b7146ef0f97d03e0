package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tripmitra/tripmitra/internal/app/domain/safety"
)

const advisoryPromptTemplate = `Check current natural disaster risks and travel advisories for %s for dates %s to %s.

Consider:
- Recent earthquakes, landslides, floods
- Cyclone/storm warnings
- Political unrest or safety concerns
- Disease outbreaks
- Road closures

Return JSON:
{
  "disasters": [
    {
      "type": "earthquake/flood/landslide/cyclone/none",
      "severity": "low/medium/high/critical",
      "description": "Brief description",
      "date": "when it occurred or expected",
      "affected_areas": ["area1", "area2"]
    }
  ],
  "travel_advisory": {
    "level": "safe/caution/avoid",
    "reason": "explanation",
    "recommendations": ["tip1", "tip2"]
  },
  "health_alerts": ["any disease outbreaks or health concerns"],
  "general_safety_tips": ["tip1", "tip2", "tip3"]
}

If no major concerns, return empty arrays but include general safety tips.`

var _ safety.AdvisoryProvider = (*Client)(nil)

// Assess produces the structured risk assessment consumed by the safety
// service. Low temperature: factual accuracy over creativity.
func (c *Client) Assess(ctx context.Context, destination, startDate, endDate string) (*safety.Advisory, error) {
	ctx, span := otel.Tracer("aiClient").Start(ctx, "Assess", trace.WithAttributes(
		attribute.String("destination", destination),
	))
	defer span.End()

	l := c.logger.With(zap.String("method", "Assess"), zap.String("destination", destination))

	raw, err := c.generateText(ctx, fmt.Sprintf(advisoryPromptTemplate, destination, startDate, endDate), jsonConfig(0.3))
	if err != nil {
		l.Warn("Advisory call failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Advisory call failed")
		return nil, fmt.Errorf("error assessing travel advisory: %w", err)
	}

	var advisory safety.Advisory
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &advisory); err != nil {
		l.Warn("Could not parse advisory response", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not parse advisory response")
		return nil, fmt.Errorf("error parsing travel advisory: %w", err)
	}

	span.SetStatus(codes.Ok, "Advisory assessment complete")
	return &advisory, nil
}
