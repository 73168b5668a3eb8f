// Package llm provides the language model client behind the conversational
// assistant.
package llm

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"diner/config"
	"diner/internal/domain/service"
)

// openAIModel implements the ChatModel interface on top of the OpenAI
// chat-completions streaming API. Any OpenAI-compatible endpoint works via
// the BaseURL override.
type openAIModel struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIModel is the constructor for openAIModel.
func NewOpenAIModel(cfg *config.Config) service.ChatModel {
	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}

	return &openAIModel{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.OpenAI.Model,
		maxTokens:   cfg.OpenAI.MaxTokens,
		temperature: cfg.OpenAI.Temperature,
	}
}

// StreamCompletion streams one chat completion, invoking onDelta for every
// content chunk in order. An error from onDelta aborts the stream and is
// returned as-is.
func (m *openAIModel) StreamCompletion(ctx context.Context, messages []service.ChatMessage, onDelta func(delta string) error) error {
	request := openai.ChatCompletionRequest{
		Model:       m.model,
		MaxTokens:   m.maxTokens,
		Temperature: m.temperature,
		Stream:      true,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	stream, err := m.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(response.Choices) == 0 {
			continue
		}
		if delta := response.Choices[0].Delta.Content; delta != "" {
			if err := onDelta(delta); err != nil {
				return err
			}
		}
	}
}
