package containercontrol

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Runner Implementation
// ==========================

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, args ...string) (*container.Result, error) {
	called := m.Called(ctx, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*container.Result), called.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func createValidConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 5 * time.Second,
		Binary:  "docker",
	}
}

func createHandler(t *testing.T, runner container.Runner) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createValidConfig(),
		Logger:       logger.NewTestLogger(t),
		Runner:       runner,
	})
	require.NoError(t, err)
	return h
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	_, err := NewHandler(HandlerOptions{CustomConfig: &Config{Enabled: true, Timeout: time.Second}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary is required")

	h, err := NewHandler(HandlerOptions{CustomConfig: createValidConfig()})
	require.NoError(t, err)
	assert.True(t, h.IsEnabled())
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		Tools: map[string]config.ToolConfig{ToolName: {Enabled: true, Timeout: 9000}},
	}
	appCfg.Integrations.Container.Binary = "podman"

	cfg := createConfigFromAppConfig(appCfg, nil)
	assert.Equal(t, "podman", cfg.Binary)
	assert.Equal(t, 9*time.Second, cfg.Timeout)
}

// ==========================
// Argument Building Tests
// ==========================

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected []string
		errCode  errors.ErrorCode
	}{
		{"launch", Input{Operation: OpLaunch, Name: "web1", Image: "nginx"}, []string{"run", "-dit", "--name", "web1", "nginx"}, ""},
		{"launch tagged image", Input{Operation: OpLaunch, Name: "db", Image: "library/postgres:16"}, []string{"run", "-dit", "--name", "db", "library/postgres:16"}, ""},
		{"start", Input{Operation: OpStart, Name: "web1"}, []string{"start", "web1"}, ""},
		{"stop", Input{Operation: OpStop, Name: "web1"}, []string{"stop", "web1"}, ""},
		{"remove", Input{Operation: OpRemove, Name: "web1"}, []string{"rm", "-f", "web1"}, ""},
		{"list images ignores name", Input{Operation: OpListImages, Name: "ignored"}, []string{"images"}, ""},
		{"launch without image", Input{Operation: OpLaunch, Name: "web1"}, nil, errors.ErrCodeValidationFailed},
		{"stop without name", Input{Operation: OpStop}, nil, errors.ErrCodeValidationFailed},
		{"name starting with dash", Input{Operation: OpStart, Name: "-rf"}, nil, errors.ErrCodeInvalidArgument},
		{"name with shell metacharacters", Input{Operation: OpStop, Name: "web1;rm"}, nil, errors.ErrCodeInvalidArgument},
		{"image flag injection", Input{Operation: OpLaunch, Name: "web1", Image: "--privileged"}, nil, errors.ErrCodeInvalidArgument},
		{"unknown operation", Input{Operation: "exec", Name: "web1"}, nil, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BuildArgs(&tt.input)
			if tt.errCode != "" {
				require.Error(t, err)
				stdErr, ok := errors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, stdErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

// ==========================
// Handle Tests
// ==========================

func TestHandler_Handle_LaunchReportsSuccessDespiteExitError(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"run", "-dit", "--name", "web1", "nginx"}).
		Return(&container.Result{
			Args:     []string{"run", "-dit", "--name", "web1", "nginx"},
			Stderr:   `docker: Error response from daemon: Conflict. The container name "/web1" is already in use.`,
			ExitCode: 125,
		}, fmt.Errorf("exit status 125")).Once()

	outcome, err := createHandler(t, runner).Handle(context.Background(),
		toolkit.Form{"operation": "launch", "name": "web1", "image": "nginx"})
	require.NoError(t, err)

	assert.Equal(t, toolkit.StatusSuccess, outcome.Status)
	assert.Equal(t, "Launch New Container executed.", outcome.Message)
	assert.Contains(t, outcome.Detail, "already in use")
	assert.Contains(t, outcome.Detail, "exit status 125")
	runner.AssertExpectations(t)
}

func TestHandler_Handle_LifecycleOperations(t *testing.T) {
	tests := []struct {
		op      string
		args    []string
		message string
	}{
		{"start", []string{"start", "web1"}, "Start Container executed."},
		{"stop", []string{"stop", "web1"}, "Stop Container executed."},
		{"remove", []string{"rm", "-f", "web1"}, "Remove Container executed."},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			runner := new(MockRunner)
			runner.On("Run", mock.Anything, tt.args).
				Return(&container.Result{Args: tt.args, Stdout: "web1\n"}, nil).Once()

			outcome, err := createHandler(t, runner).Handle(context.Background(),
				toolkit.Form{"operation": tt.op, "name": "web1"})
			require.NoError(t, err)
			assert.Equal(t, tt.message, outcome.Message)
			assert.Equal(t, "web1", outcome.Detail)
			runner.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_ListImagesVerbatim(t *testing.T) {
	listing := "REPOSITORY   TAG       IMAGE ID       CREATED       SIZE\nnginx        latest    a6bd71f48f68   2 weeks ago   187MB"
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"images"}).
		Return(&container.Result{Args: []string{"images"}, Stdout: listing + "\n"}, nil).Once()

	outcome, err := createHandler(t, runner).Handle(context.Background(), toolkit.Form{"operation": "list-images"})
	require.NoError(t, err)
	assert.Equal(t, listing, outcome.Detail)
	assert.Equal(t, "List Docker Images", outcome.Message)
	runner.AssertExpectations(t)
}

func TestHandler_Handle_ListImagesFailure(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"images"}).
		Return(&container.Result{Stderr: "Cannot connect to the Docker daemon", ExitCode: 1}, fmt.Errorf("exit status 1")).Once()

	_, err := createHandler(t, runner).Handle(context.Background(), toolkit.Form{"operation": "list-images"})
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeContainerCommandFailed, stdErr.Code)
}

func TestHandler_Handle_BinaryMissing(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"stop", "web1"}).
		Return(nil, fmt.Errorf(`exec: "docker": executable file not found in $PATH`)).Once()

	_, err := createHandler(t, runner).Handle(context.Background(), toolkit.Form{"operation": "stop", "name": "web1"})
	require.Error(t, err)
	assert.Contains(t, errors.ToOutcomeMessage(err), "executable file not found")
}

func TestHandler_Handle_InvalidFormNeverRuns(t *testing.T) {
	forms := []toolkit.Form{
		{},
		{"operation": "launch", "name": "web1"},
		{"operation": "start"},
		{"operation": "pause", "name": "web1"},
	}

	for _, form := range forms {
		runner := new(MockRunner)
		_, err := createHandler(t, runner).Handle(context.Background(), form)
		require.Error(t, err)
		runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	}
}

func TestHandler_Handle_RepeatedSubmissionRunsTwice(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"run", "-dit", "--name", "web1", "nginx"}).
		Return(&container.Result{Stdout: "3f2a"}, nil).Twice()

	h := createHandler(t, runner)
	form := toolkit.Form{"operation": "launch", "name": "web1", "image": "nginx"}
	for i := 0; i < 2; i++ {
		_, err := h.Handle(context.Background(), form)
		require.NoError(t, err)
	}
	runner.AssertNumberOfCalls(t, "Run", 2)
}
