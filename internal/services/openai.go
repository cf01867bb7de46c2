package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"gadgetfinder-backend/internal/models"
)

const openAIKeyPrefix = "sk-"

type OpenAIService struct {
	client openai.Client
	apiKey string
	params ChatParams
}

// NewOpenAIService builds a client for the chat-completions endpoint at
// baseURL. The key is not validated here; see CheckCredential. Retries are
// disabled so every invocation makes exactly one upstream attempt.
func NewOpenAIService(apiKey, baseURL string, params ChatParams, opts ...option.RequestOption) *OpenAIService {
	apiKey = strings.TrimSpace(apiKey)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &OpenAIService{
		client: openai.NewClient(clientOpts...),
		apiKey: apiKey,
		params: params,
	}
}

func (s *OpenAIService) Name() string { return "openai" }

func (s *OpenAIService) CheckCredential() error {
	return checkKeyShape("OpenAI", s.apiKey, openAIKeyPrefix)
}

func (s *OpenAIService) Complete(ctx context.Context, messages []models.ChatMessage) (models.ChatMessage, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(s.params.Model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(s.params.Temperature),
		MaxTokens:   openai.Int(int64(s.params.MaxTokens)),
	}

	ctx, cancel := s.params.withTimeout(ctx)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return models.ChatMessage{}, &UpstreamError{
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Error(),
			}
		}
		return models.ChatMessage{}, errors.Wrap(err, "openai chat completion")
	}

	return firstChoiceMessage(completion.RawJSON())
}

// firstChoiceMessage extracts choices[0].message from a raw completion body.
// The message object is kept byte for byte in Raw.
func firstChoiceMessage(raw string) (models.ChatMessage, error) {
	msg := gjson.Get(raw, "choices.0.message")
	if !msg.IsObject() {
		return models.ChatMessage{}, ErrEmptyCompletion
	}

	return models.ChatMessage{
		Role:    msg.Get("role").String(),
		Content: msg.Get("content").String(),
		Raw:     json.RawMessage(msg.Raw),
	}, nil
}

func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
