package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gadgetfinder-backend/internal/config"
)

func TestNewChatProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewChatProvider(ctx, &config.Config{ChatProvider: "openai", OpenAIAPIKey: "sk-x"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.NoError(t, p.CheckCredential())

	p, err = NewChatProvider(ctx, &config.Config{ChatProvider: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
	assert.Error(t, p.CheckCredential())

	_, err = NewChatProvider(ctx, &config.Config{ChatProvider: "bard"})
	assert.Error(t, err)
}

func TestUpstreamError_MessageOmitsBody(t *testing.T) {
	err := &UpstreamError{StatusCode: 401, Body: "invalid api key sk-abc"}
	assert.Equal(t, "upstream returned status 401", err.Error())
}
