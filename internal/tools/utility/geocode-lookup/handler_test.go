package geocodelookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createHandler(t *testing.T, baseURL string) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{
			Enabled:   true,
			Timeout:   5 * time.Second,
			BaseURL:   baseURL,
			UserAgent: "dashboard-test/1.0",
		},
		Logger: logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func TestHandler_Handle_FirstResult(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "São Paulo & Rio", r.URL.Query().Get("q"))
		assert.Equal(t, "dashboard-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[
			{"lat":"-23.5506507","lon":"-46.6333824","display_name":"São Paulo, Brasil"},
			{"lat":"-22.9","lon":"-43.2","display_name":"Rio"}
		]`))
	}))
	defer server.Close()

	outcome, err := createHandler(t, server.URL).Handle(context.Background(), toolkit.Form{"place": "São Paulo & Rio"})
	require.NoError(t, err)
	assert.Equal(t, toolkit.StatusSuccess, outcome.Status)
	assert.Equal(t, "📍 Latitude: -23.5506507 | Longitude: -46.6333824", outcome.Message)
	assert.Equal(t, "São Paulo, Brasil", outcome.Detail)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandler_Handle_NoResultsMakesNoFurtherCalls(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	outcome, err := createHandler(t, server.URL).Handle(context.Background(), toolkit.Form{"place": "Atlantis"})
	require.NoError(t, err)
	assert.Equal(t, toolkit.StatusWarning, outcome.Status)
	assert.Equal(t, "No results found.", outcome.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandler_Handle_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   errors.ErrorCode
	}{
		{"rate limited", http.StatusTooManyRequests, "Too Many Requests", errors.ErrCodeUpstreamRejected},
		{"not json", http.StatusOK, "<html></html>", errors.ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := createHandler(t, server.URL).Handle(context.Background(), toolkit.Form{"place": "Paris"})
			require.Error(t, err)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}

func TestHandler_Handle_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, Timeout: 50 * time.Millisecond, BaseURL: server.URL, UserAgent: "t"},
		Logger:       logger.NewNoOpLogger(),
	})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), toolkit.Form{"place": "Paris"})
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTimeout, stdErr.Code)
}

func TestHandler_Handle_MissingPlace(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := createHandler(t, server.URL).Handle(context.Background(), toolkit.Form{})
	require.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{}
	appCfg.Integrations.Geocoding.UserAgent = "my-dashboard/2.0 (ops@example.com)"

	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.Equal(t, "my-dashboard/2.0 (ops@example.com)", cfg.UserAgent)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.BaseURL)
}
