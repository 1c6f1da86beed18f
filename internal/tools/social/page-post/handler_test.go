package pagepost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/common/toolkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func createValidConfig(baseURL string) *Config {
	return &Config{
		Enabled:     true,
		Timeout:     5 * time.Second,
		BaseURL:     baseURL,
		TokenSecret: "graph_page_token",
	}
}

func createHandler(t *testing.T, baseURL string, store secrets.Provider) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(baseURL),
		Logger:       logger.NewTestLogger(t),
		Secrets:      store,
	})
	require.NoError(t, err)
	return h
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "posted",
			status:     http.StatusOK,
			body:       `{"id":"123_456"}`,
			wantOutput: "Posted!",
		},
		{
			name:       "expired token",
			status:     http.StatusBadRequest,
			body:       `{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`,
			wantErr:    true,
			wantOutput: `Facebook Error: {"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`,
		},
		{
			name:       "created is not ok",
			status:     http.StatusCreated,
			body:       `{"id":"1"}`,
			wantErr:    true,
			wantOutput: `Facebook Error: {"id":"1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/my.page/feed", r.URL.Path)
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "hello page", r.PostForm.Get("message"))
				assert.Equal(t, "page-token", r.PostForm.Get("access_token"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			h := createHandler(t, server.URL, secrets.Static{"graph_page_token": "page-token"})
			outcome, err := h.Handle(context.Background(), toolkit.Form{"page_id": "my.page", "message": "hello page"})
			assert.Equal(t, int32(1), calls.Load())

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantOutput, errors.ToOutcomeMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, outcome.Message)
		})
	}
}

func TestHandler_Handle_ValidationAndSecrets(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	h := createHandler(t, server.URL, secrets.Static{"graph_page_token": "t"})
	for _, form := range []toolkit.Form{
		{"message": "hi"},
		{"page_id": "p"},
		{"page_id": "../me", "message": "hi"},
	} {
		_, err := h.Handle(context.Background(), form)
		require.Error(t, err)
	}

	noToken := createHandler(t, server.URL, secrets.Static{})
	_, err := noToken.Handle(context.Background(), toolkit.Form{"page_id": "p", "message": "hi"})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSecretUnavailable, stdErr.Code)

	assert.Equal(t, int32(0), calls.Load())
}

func TestHandler_Handle_RepeatedSubmissionPostsTwice(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer server.Close()

	h := createHandler(t, server.URL, secrets.Static{"graph_page_token": "t"})
	for i := 0; i < 2; i++ {
		_, err := h.Handle(context.Background(), toolkit.Form{"page_id": "p", "message": "same text"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestHandler_Handle_UnreadablePostBodyIsLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(server.URL),
		Logger:       logger.NewZapAdapter(zap.New(core)),
		Secrets:      secrets.Static{"graph_page_token": "page-token"},
	})
	require.NoError(t, err)

	outcome, err := h.Handle(context.Background(), toolkit.Form{"page_id": "my.page", "message": "hello page"})
	require.NoError(t, err)
	assert.Equal(t, "Posted!", outcome.Message)

	entries := logs.FilterMessage("Post response carried no readable id").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}
