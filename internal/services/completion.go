package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// CompletionService produces a text completion for a system+user prompt pair.
// Implementations must surface rate-limit conditions distinguishably from
// other failures (see isRateLimited).
type CompletionService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

// Deadline applied to each individual completion attempt so a hung upstream
// call cannot stall the pipeline. Overridable in tests.
var completionTimeout = 15 * time.Second

// completeWithDeadline runs one Complete call under its own timeout
func completeWithDeadline(ctx context.Context, c CompletionService, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()
	return c.Complete(cctx, systemPrompt, userPrompt, temperature, maxTokens)
}

// GeminiCompletion implements CompletionService over the Gemini API
type GeminiCompletion struct {
	client *genai.Client
	model  string
}

// NewGeminiCompletion creates a Gemini-backed completion service
func NewGeminiCompletion(ctx context.Context, apiKey, model string) (*GeminiCompletion, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletion{
		client: client,
		model:  model,
	}, nil
}

// Complete issues a single generation call and returns the response text
func (g *GeminiCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", &UpstreamError{
			Service:   "completion",
			Operation: "complete",
			Message:   "generate content failed",
			Err:       err,
		}
	}

	text := extractResponseText(resp)
	if text == "" {
		return "", &UpstreamError{
			Service:   "completion",
			Operation: "complete",
			Message:   "empty completion response",
		}
	}

	return text, nil
}

// Close releases the underlying client
func (g *GeminiCompletion) Close() error {
	return g.client.Close()
}

func extractResponseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
