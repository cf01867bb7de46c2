package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"gadgetfinder-backend/internal/config"
	"gadgetfinder-backend/internal/models"
)

// ChatProvider sends one augmented conversation to an upstream
// chat-completion API and returns its first reply.
type ChatProvider interface {
	Name() string
	// CheckCredential reports whether the configured key is present and
	// has the provider's expected shape. It never contacts the upstream.
	CheckCredential() error
	// Complete makes exactly one upstream call. It returns ErrEmptyCompletion
	// when the upstream succeeded without a usable message.
	Complete(ctx context.Context, messages []models.ChatMessage) (models.ChatMessage, error)
}

// ErrEmptyCompletion marks a successful upstream response with no message.
var ErrEmptyCompletion = errors.New("upstream returned no completion message")

// ErrUnsupportedConversation marks a well-formed conversation the provider
// cannot send as is, such as one ending with an assistant turn on Gemini.
var ErrUnsupportedConversation = errors.New("conversation shape not supported by provider")

// CredentialError explains why the configured key was rejected. The reason
// is for server logs only.
type CredentialError struct{ Reason string }

func (e *CredentialError) Error() string { return e.Reason }

// UpstreamError is a non-success HTTP status from the provider. Body holds
// the provider's diagnostic payload and must never reach a client.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// ChatParams are the generation settings shared by every provider. They
// come from configuration and are never taken from the caller.
type ChatParams struct {
	Model       string
	Temperature float64
	MaxTokens   int

	// Timeout bounds the single upstream call; zero means no limit beyond
	// the request context.
	Timeout time.Duration
}

func (p ChatParams) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.Timeout)
}

func checkKeyShape(provider, key, prefix string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &CredentialError{Reason: fmt.Sprintf("%s API key is not set", provider)}
	}
	if !strings.HasPrefix(key, prefix) {
		return &CredentialError{Reason: fmt.Sprintf("%s API key has invalid format (should start with %s)", provider, prefix)}
	}
	return nil
}

// NewChatProvider builds the provider selected by cfg.ChatProvider.
func NewChatProvider(ctx context.Context, cfg *config.Config) (ChatProvider, error) {
	timeout := time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
	switch cfg.ChatProvider {
	case "", "openai":
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, ChatParams{
			Model:       cfg.OpenAIModel,
			Temperature: cfg.ChatTemperature,
			MaxTokens:   cfg.ChatMaxTokens,
			Timeout:     timeout,
		}), nil
	case "gemini":
		svc, err := NewGeminiService(ctx, cfg.GeminiAPIKey, ChatParams{
			Model:       cfg.GeminiModel,
			Temperature: cfg.ChatTemperature,
			MaxTokens:   cfg.ChatMaxTokens,
			Timeout:     timeout,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, errors.Errorf("unknown chat provider %q", cfg.ChatProvider)
	}
}
