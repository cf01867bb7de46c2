package services

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"gadgetfinder-backend/internal/models"
)

const geminiKeyPrefix = "AIza"

type GeminiService struct {
	client *genai.Client
	apiKey string
	params ChatParams
}

// NewGeminiService creates the Gemini client. A missing or malformed key
// leaves the client unset; the chat handler reports it per request.
func NewGeminiService(ctx context.Context, apiKey string, params ChatParams, opts ...option.ClientOption) (*GeminiService, error) {
	s := &GeminiService{
		apiKey: strings.TrimSpace(apiKey),
		params: params,
	}
	if s.CheckCredential() != nil {
		return s, nil
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(s.apiKey)}, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}
	s.client = client
	return s, nil
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) CheckCredential() error {
	return checkKeyShape("Gemini", s.apiKey, geminiKeyPrefix)
}

func (s *GeminiService) Complete(ctx context.Context, messages []models.ChatMessage) (models.ChatMessage, error) {
	if s.client == nil {
		return models.ChatMessage{}, errors.New("gemini client not initialized")
	}

	system, history, last, err := splitForGemini(messages)
	if err != nil {
		return models.ChatMessage{}, err
	}

	model := s.client.GenerativeModel(s.params.Model)
	model.SetTemperature(float32(s.params.Temperature))
	model.SetMaxOutputTokens(int32(s.params.MaxTokens))
	if system != nil {
		model.SystemInstruction = system
	}

	ctx, cancel := s.params.withTimeout(ctx)
	defer cancel()

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return models.ChatMessage{}, classifyGeminiError(err)
	}

	text := extractText(resp)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyCompletion
	}
	return models.ChatMessage{Role: models.RoleAssistant, Content: text}, nil
}

// splitForGemini maps the augmented conversation onto Gemini's shape:
// system entries, in order, become one system instruction; the final turn
// is what gets sent and the rest becomes chat history. A conversation with
// only system entries sends their text as the user turn. The final turn
// must come from the user, since a chat session always sends a user turn.
func splitForGemini(messages []models.ChatMessage) (*genai.Content, []*genai.Content, *genai.Content, error) {
	var system []string
	var turns []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
		case models.RoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	joined := strings.Join(system, "\n\n")
	if len(turns) == 0 {
		return nil, nil, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(joined)}}, nil
	}

	last := turns[len(turns)-1]
	if last.Role != "user" {
		return nil, nil, nil, errors.Wrap(ErrUnsupportedConversation, "gemini: conversation ends with an assistant turn")
	}

	var instruction *genai.Content
	if len(system) > 0 {
		instruction = &genai.Content{Parts: []genai.Part{genai.Text(joined)}}
	}
	return instruction, turns[:len(turns)-1], last, nil
}

func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return ErrEmptyCompletion
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
		return &UpstreamError{StatusCode: apiErr.HTTPCode(), Body: apiErr.Error()}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &UpstreamError{StatusCode: gErr.Code, Body: gErr.Body}
	}

	return errors.Wrap(err, "gemini chat completion")
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
