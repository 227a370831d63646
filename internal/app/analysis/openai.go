package analysis

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client on the OpenAI chat completions API with a
// JSON-schema response format.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a structured-rewrite client backed by OpenAI.
func NewOpenAIClient(client *openai.Client) *OpenAIClient {
	return &OpenAIClient{client: client}
}

func (c *OpenAIClient) RebuildConversation(ctx context.Context, req Request) (Payload, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt(req.Transcript, req.TargetLanguage)},
	}
	if req.Feedback != nil {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: correctivePrompt(req.Transcript, *req.Feedback),
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "meeting_analysis",
				Schema: responseSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return Payload{}, fmt.Errorf("createChatCompletion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Payload{}, fmt.Errorf("empty completion response")
	}
	return ParsePayload(resp.Choices[0].Message.Content), nil
}
