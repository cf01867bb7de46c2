package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsFloatOrDefault(t *testing.T) {
	t.Setenv("TEST_FLOAT_1", "0.25")
	t.Setenv("TEST_FLOAT_2", "warm")

	assert.Equal(t, 0.25, getEnvAsFloatOrDefault("TEST_FLOAT_1", 0.9))
	assert.Equal(t, 0.9, getEnvAsFloatOrDefault("TEST_FLOAT_2", 0.9))
	assert.Equal(t, 0.9, getEnvAsFloatOrDefault("TEST_FLOAT_UNSET", 0.9))
}

func TestLoad_MissingCredentialDoesNotPanic(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CHAT_PROVIDER", "OpenAI")

	cfg := Load()

	assert.Equal(t, "", cfg.OpenAIAPIKey)
	assert.Equal(t, "openai", cfg.ChatProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 0.9, cfg.ChatTemperature)
	assert.Equal(t, 600, cfg.ChatMaxTokens)
}
