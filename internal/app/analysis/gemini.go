package analysis

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client on the Gemini API. Gemini has no named
// JSON-schema response format, so the schema travels inside the prompt and
// the response MIME type is pinned to JSON.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a structured-rewrite client backed by Gemini.
func NewGeminiClient(client *genai.Client) *GeminiClient {
	return &GeminiClient{client: client}
}

func (c *GeminiClient) RebuildConversation(ctx context.Context, req Request) (Payload, error) {
	var prompt strings.Builder
	prompt.WriteString(systemPrompt)
	prompt.WriteString("\n\n")
	prompt.WriteString(userPrompt(req.Transcript, req.TargetLanguage))
	prompt.WriteString("\n\nThe JSON output must conform to this schema:\n")
	prompt.Write(responseSchema)
	if req.Feedback != nil {
		prompt.WriteString("\n\n")
		prompt.WriteString(correctivePrompt(req.Transcript, *req.Feedback))
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(prompt.String()), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Payload{}, fmt.Errorf("generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Payload{}, fmt.Errorf("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return ParsePayload(text.String()), nil
}
