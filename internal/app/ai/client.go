package ai

import (
	"context"
	"fmt"
	"strings"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client wraps the generative AI SDK behind the planner's capability
// interfaces: trip-detail extraction, itinerary generation, hotel
// recommendation and the safety advisory. Each capability is a documented
// request-in, structured-result-out contract so tests swap the whole client
// for a canned double.
type Client struct {
	logger *zap.Logger
	llm    *generativeAI.LLMChatClient
}

func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	llm, err := generativeAI.NewLLMChatClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("error initializing AI client: %w", err)
	}

	return &Client{
		logger: logger,
		llm:    llm,
	}, nil
}

// generateText sends one prompt and returns the plain response text.
func (c *Client) generateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	response, err := c.llm.GenerateResponse(ctx, prompt, config)
	if err != nil {
		return "", fmt.Errorf("error generating response: %w", err)
	}
	return response.Text(), nil
}

// jsonConfig forces JSON output at the given temperature. Low temperatures
// are used for extraction-style prompts where consistency beats creativity.
func jsonConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](temperature),
		ResponseMIMEType: "application/json",
	}
}

// cleanJSONResponse removes markdown code fences the model sometimes wraps
// around JSON payloads.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
