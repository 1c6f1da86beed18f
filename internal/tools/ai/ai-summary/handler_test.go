package aisummary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func createValidConfig(baseURL string) *Config {
	return &Config{
		Enabled:      true,
		Timeout:      5 * time.Second,
		BaseURL:      baseURL,
		Model:        "gemini-2.5-flash",
		APIKeySecret: "genai_api_key",
	}
}

func createHandler(t *testing.T, baseURL string) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(baseURL),
		Logger:       logger.NewTestLogger(t),
		Secrets:      secrets.Static{"genai_api_key": "test-key"},
	})
	require.NoError(t, err)
	return h
}

type generateServer struct {
	calls   atomic.Int32
	prompts []string
}

func (g *generateServer) handler(t *testing.T, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		g.prompts = append(g.prompts, req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{
				CustomConfig: createValidConfig("http://localhost"),
				Secrets:      secrets.Static{},
			},
		},
		{
			name: "missing model",
			opts: HandlerOptions{
				CustomConfig: &Config{Enabled: true, Timeout: time.Second, BaseURL: "http://x", APIKeySecret: "k"},
				Secrets:      secrets.Static{},
			},
			wantErr: true,
			errMsg:  "model is required",
		},
		{
			name:    "missing secrets provider",
			opts:    HandlerOptions{CustomConfig: createValidConfig("http://localhost")},
			wantErr: true,
			errMsg:  "secrets provider is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, handler)
				return
			}
			require.NoError(t, err)
			assert.True(t, handler.IsEnabled())
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		Tools: map[string]config.ToolConfig{ToolName: {Enabled: false, Timeout: 1500}},
	}
	appCfg.Integrations.GenAI.BaseURL = "https://genai.internal"
	appCfg.Integrations.GenAI.Model = "gemini-pro"

	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "https://genai.internal", cfg.BaseURL)
	assert.Equal(t, "gemini-pro", cfg.Model)
	assert.Equal(t, "genai_api_key", cfg.APIKeySecret)
}

// ==========================
// Prompt Tests
// ==========================

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"You are an expert in Web Series. Give a summary, studio, and rate the web series titled 'Arcane' on story, "+
			"animation, characters, soundtrack, and say whether you recommend it or not.",
		BuildPrompt("Web Series", "Arcane"))
}

// ==========================
// Handle Tests
// ==========================

func TestHandler_Handle_SingleCallTextVerbatim(t *testing.T) {
	titles := []struct{ category, title string }{
		{"Anime", "Cowboy Bebop"},
		{"Manga", "Berserk"},
		{"Movie", "Spirited Away"},
		{"Web Series", "Arcane"},
	}

	for _, tc := range titles {
		t.Run(tc.category, func(t *testing.T) {
			reply := "  **" + tc.title + "**\nStudio: X\nStory: 9/10\n"
			body, _ := json.Marshal(map[string]interface{}{
				"candidates": []interface{}{map[string]interface{}{
					"content":      map[string]interface{}{"parts": []interface{}{map[string]string{"text": reply}}},
					"finishReason": "STOP",
				}},
			})

			gs := &generateServer{}
			server := httptest.NewServer(gs.handler(t, http.StatusOK, string(body)))
			defer server.Close()

			h := createHandler(t, server.URL)
			outcome, err := h.Handle(context.Background(), toolkit.Form{"category": tc.category, "title": tc.title})
			require.NoError(t, err)

			assert.Equal(t, int32(1), gs.calls.Load())
			assert.Equal(t, toolkit.StatusSuccess, outcome.Status)
			assert.Equal(t, reply, outcome.Message)
			assert.Equal(t, BuildPrompt(tc.category, tc.title), gs.prompts[0])
		})
	}
}

func TestHandler_Handle_JoinsParts(t *testing.T) {
	gs := &generateServer{}
	server := httptest.NewServer(gs.handler(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"Part one. "},{"text":"Part two."}]}}]}`))
	defer server.Close()

	outcome, err := createHandler(t, server.URL).Handle(context.Background(),
		toolkit.Form{"category": "Anime", "title": "Mushishi"})
	require.NoError(t, err)
	assert.Equal(t, "Part one. Part two.", outcome.Message)
}

func TestHandler_Handle_ErrorVerbatim(t *testing.T) {
	gs := &generateServer{}
	server := httptest.NewServer(gs.handler(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	defer server.Close()

	_, err := createHandler(t, server.URL).Handle(context.Background(),
		toolkit.Form{"category": "Movie", "title": "Heat"})
	require.Error(t, err)
	assert.Equal(t, int32(1), gs.calls.Load())

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamRejected, stdErr.Code)
	assert.Equal(t, "Gemini Error: API key not valid. Please pass a valid API key.", errors.ToOutcomeMessage(err))
}

func TestHandler_Handle_NoCandidates(t *testing.T) {
	gs := &generateServer{}
	server := httptest.NewServer(gs.handler(t, http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`))
	defer server.Close()

	_, err := createHandler(t, server.URL).Handle(context.Background(),
		toolkit.Form{"category": "Anime", "title": "Akira"})
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeExternalService, stdErr.Code)
	assert.Contains(t, stdErr.Details, "SAFETY")
}

func TestHandler_Handle_ValidationNeverCalls(t *testing.T) {
	tests := []struct {
		name string
		form toolkit.Form
	}{
		{"missing title", toolkit.Form{"category": "Anime"}},
		{"missing category", toolkit.Form{"title": "Akira"}},
		{"unknown category", toolkit.Form{"category": "Podcast", "title": "Akira"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := &generateServer{}
			server := httptest.NewServer(gs.handler(t, http.StatusOK, `{}`))
			defer server.Close()

			_, err := createHandler(t, server.URL).Handle(context.Background(), tt.form)
			require.Error(t, err)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			assert.Equal(t, int32(0), gs.calls.Load())
		})
	}
}

func TestHandler_Handle_MissingSecret(t *testing.T) {
	gs := &generateServer{}
	server := httptest.NewServer(gs.handler(t, http.StatusOK, `{}`))
	defer server.Close()

	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(server.URL),
		Logger:       logger.NewNoOpLogger(),
		Secrets:      secrets.Static{},
	})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), toolkit.Form{"category": "Anime", "title": "Akira"})
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSecretUnavailable, stdErr.Code)
	assert.Equal(t, int32(0), gs.calls.Load())
}

func TestHandler_Descriptor(t *testing.T) {
	d := createHandler(t, "http://localhost").Descriptor()
	assert.Equal(t, ToolName, d.Name)
	assert.Equal(t, "Get Summary and Ratings", d.SubmitLabel)
	assert.Equal(t, []string{"category", "title"}, d.FieldNames())
	assert.Len(t, d.Fields[0].Options, 4)
}
