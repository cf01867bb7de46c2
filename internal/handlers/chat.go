package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"gadgetfinder-backend/internal/logging"
	"gadgetfinder-backend/internal/middleware"
	"gadgetfinder-backend/internal/models"
	"gadgetfinder-backend/internal/services"
)

const maxChatBodyBytes = 1 << 20

// Error codes returned in the envelope's code field.
const (
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeServerConfiguration = "SERVER_CONFIGURATION_ERROR"
	CodeInvalidPayload      = "INVALID_PAYLOAD"
	CodeMissingMessages     = "MISSING_MESSAGES"
	CodeUpstream            = "UPSTREAM_ERROR"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
)

var (
	errMissingMessages = errors.New("messages must be a non-empty array")
	errInvalidMessage  = errors.New("every message needs a known role and string content")
)

// systemPolicy supplies the instruction prepended to every conversation.
type systemPolicy interface {
	Message() models.ChatMessage
}

type ChatHandler struct {
	provider services.ChatProvider
	policy   systemPolicy
}

func NewChatHandler(provider services.ChatProvider, policy systemPolicy) *ChatHandler {
	return &ChatHandler{
		provider: provider,
		policy:   policy,
	}
}

// Handle proxies one chat turn to the upstream provider. It accepts every
// method so that preflight and method errors are answered here rather than
// by the router.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context()).WithField("provider", h.provider.Name())
	middleware.SetCORSHeaders(w.Header())

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("state", "InternalError").Errorf("panic while handling chat: %v", rec)
			writeJSON(w, http.StatusInternalServerError, errorResp(CodeInternal, "Server error", r))
		}
	}()

	switch r.Method {
	case http.MethodOptions:
		middleware.SetPreflightHeaders(w.Header())
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		log.WithField("state", "MethodRejected").Info("chat called with unsupported method")
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorResp(CodeMethodNotAllowed, "Method Not Allowed", r))
		return
	}

	// Checked before the body is read so no work is done without a usable key.
	if err := h.provider.CheckCredential(); err != nil {
		log.WithField("state", "ConfigInvalid").WithError(err).Error("chat provider credential rejected")
		writeJSON(w, http.StatusInternalServerError, errorResp(CodeServerConfiguration, "Server configuration error", r))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err != nil {
		log.WithField("state", "ParseFailed").WithError(err).Warn("failed to read chat body")
		writeJSON(w, http.StatusBadRequest, errorResp(CodeInvalidPayload, "Invalid JSON", r))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		log.WithField("state", "ParseFailed").Warn("chat body is not valid JSON")
		writeJSON(w, http.StatusBadRequest, errorResp(CodeInvalidPayload, "Invalid JSON", r))
		return
	}

	req, err := parseChatRequest(body)
	switch {
	case errors.Is(err, errMissingMessages):
		log.WithField("state", "ShapeInvalid").Warn("chat body has no messages")
		writeJSON(w, http.StatusBadRequest, errorResp(CodeMissingMessages, "Missing messages", r))
		return
	case err != nil:
		log.WithField("state", "ShapeInvalid").WithError(err).Warn("chat body has a malformed message")
		writeJSON(w, http.StatusBadRequest, errorResp(CodeInvalidPayload, "Invalid message", r))
		return
	}

	conversation := augment(h.policy.Message(), req.Messages)
	log.WithFields(logrus.Fields{
		"state":    "UpstreamCalled",
		"messages": len(conversation),
	}).Debug("forwarding conversation upstream")

	reply, err := h.provider.Complete(r.Context(), conversation)
	if err != nil {
		var upErr *services.UpstreamError
		switch {
		case errors.Is(err, services.ErrEmptyCompletion):
			log.WithField("state", "UpstreamAccepted").Warn("upstream returned no message, sending fallback reply")
			reply = models.FallbackReply
		case errors.Is(err, services.ErrUnsupportedConversation):
			log.WithField("state", "ShapeInvalid").WithError(err).Warn("provider cannot send this conversation")
			writeJSON(w, http.StatusBadRequest, errorResp(CodeInvalidPayload, "Invalid message", r))
			return
		case errors.As(err, &upErr):
			log.WithFields(logrus.Fields{
				"state":           "UpstreamRejected",
				"upstream_status": upErr.StatusCode,
				"upstream_body":   upErr.Body,
			}).Error("upstream chat API error")
			writeJSON(w, http.StatusBadGateway, errorResp(CodeUpstream, "AI service temporarily unavailable", r))
			return
		default:
			log.WithField("state", "InternalError").WithError(err).Error("chat proxy failed")
			writeJSON(w, http.StatusInternalServerError, errorResp(CodeInternal, "Server error", r))
			return
		}
	}

	log.WithField("state", "ResponseShaped").Debug("chat reply sent")
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// augment prepends the system message. A caller-supplied system message is
// kept as is.
func augment(system models.ChatMessage, messages []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(messages)+1)
	out = append(out, system)
	return append(out, messages...)
}

// parseChatRequest reads only the messages field; other fields are ignored.
// When the key is repeated the last occurrence wins.
func parseChatRequest(body []byte) (models.ChatRequest, error) {
	var field gjson.Result
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		if key.Type == gjson.String && key.Str == "messages" {
			field = value
		}
		return true
	})
	if !field.IsArray() {
		return models.ChatRequest{}, errMissingMessages
	}
	items := field.Array()
	if len(items) == 0 {
		return models.ChatRequest{}, errMissingMessages
	}

	req := models.ChatRequest{Messages: make([]models.ChatMessage, 0, len(items))}
	for i, item := range items {
		role := item.Get("role")
		content := item.Get("content")
		if !item.IsObject() || role.Type != gjson.String || content.Type != gjson.String || !models.ValidRole(role.Str) {
			return models.ChatRequest{}, errors.Wrapf(errInvalidMessage, "message %d", i)
		}
		req.Messages = append(req.Messages, models.ChatMessage{Role: role.Str, Content: content.Str})
	}
	return req, nil
}
