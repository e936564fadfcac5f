package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	geminiRequestTimeout = 30 * time.Second
	geminiRetryBackoff   = 2 * time.Second
	geminiMaxRetries     = 1
)

// Gemini implements the Extractor interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Extractor instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Low temperature for consistent structured output
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extractionPrompt)},
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractItems sends the chat transcript to Gemini and parses the
// structured line items out of the response
func (g *Gemini) ExtractItems(ctx context.Context, messages []string) ([]RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiRequestTimeout)
	defer cancel()

	prompt := buildTranscript(messages)

	var resp *genai.GenerateContentResponse
	operation := func() error {
		var err error
		resp, err = g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			if isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	if err := withRetry(ctx, geminiRetryBackoff, operation); err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	// Extract text response
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	items, err := parseItemArray(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing extraction response: %w", err)
	}

	return items, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// buildTranscript tags each message with its positional index so the
// model can distinguish separate conversational turns
func buildTranscript(messages []string) string {
	var b strings.Builder
	b.WriteString("Chat History:\n")
	for i, msg := range messages {
		fmt.Fprintf(&b, "Msg %d: %s\n", i, msg)
	}
	return b.String()
}

// withRetry runs operation with one constant-interval retry, stopping
// early on backoff.Permanent errors or context cancellation
func withRetry(ctx context.Context, wait time.Duration, operation func() error) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), geminiMaxRetries)
	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

// isTransient reports whether an API error is worth retrying
// (rate limits and server-side failures)
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return false
}
