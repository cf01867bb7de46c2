package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"gadgetfinder-backend/internal/catalog"
	"gadgetfinder-backend/internal/handlers"
	"gadgetfinder-backend/internal/models"
	"gadgetfinder-backend/internal/services"
)

type fixedPolicy struct{}

func (fixedPolicy) Message() models.ChatMessage {
	return models.ChatMessage{Role: models.RoleSystem, Content: "policy"}
}

type echoProvider struct{}

func (echoProvider) Name() string { return "echo" }
func (echoProvider) CheckCredential() error { return nil }
func (echoProvider) Complete(ctx context.Context, m []models.ChatMessage) (models.ChatMessage, error) {
	return models.ChatMessage{Role: models.RoleAssistant, Content: m[len(m)-1].Content}, nil
}

var _ services.ChatProvider = echoProvider{}

func newTestRouter() http.Handler {
	log, _ := logtest.NewNullLogger()
	return New(
		log,
		handlers.NewChatHandler(echoProvider{}, fixedPolicy{}),
		handlers.NewCatalogHandler(catalog.New(models.SiteSettings{ReviewSafe: true}, models.Affiliates{}, nil)),
	)
}

func TestRouter_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_ChatPaths(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/chat", "/api/v1/chat", "/.netlify/functions/ai-chat"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"messages":[{"role":"user","content":"hello"}]}`)))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"reply":{"role":"assistant","content":"hello"}}`, rr.Body.String())

			rr = httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))

			rr = httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Contains(t, rr.Body.String(), "Method Not Allowed")
		})
	}
}

func TestRouter_Site(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/site", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"reviewSafe":true`)
}
