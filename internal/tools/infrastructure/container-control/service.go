package containercontrol

import (
	"context"
	"fmt"
	"strings"

	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
)

type Service struct {
	config *Config
	logger logger.Logger
	runner container.Runner
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	runner := deps.Runner
	if runner == nil {
		runner = container.NewCLIRunner(config.Binary)
	}
	return &Service{
		config: config,
		logger: deps.Logger,
		runner: runner,
	}
}

// BuildArgs returns the literal argument array for an operation.
func BuildArgs(input *Input) ([]string, error) {
	if missing := missingFields(input); len(missing) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if input.Operation != OpListImages {
		if err := container.ValidateName(input.Name); err != nil {
			return nil, errors.NewInvalidArgumentError("name", err.Error())
		}
	}

	switch input.Operation {
	case OpLaunch:
		if err := container.ValidateImage(input.Image); err != nil {
			return nil, errors.NewInvalidArgumentError("image", err.Error())
		}
		return []string{"run", "-dit", "--name", input.Name, input.Image}, nil
	case OpStart:
		return []string{"start", input.Name}, nil
	case OpStop:
		return []string{"stop", input.Name}, nil
	case OpRemove:
		return []string{"rm", "-f", input.Name}, nil
	case OpListImages:
		return []string{"images"}, nil
	default:
		return nil, errors.NewInvalidArgumentError("operation", fmt.Sprintf("unknown operation %q", input.Operation))
	}
}

func missingFields(input *Input) []string {
	values := map[string]string{"name": input.Name, "image": input.Image}
	var missing []string
	for _, field := range requiredFields(input.Operation) {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Execute runs exactly one container CLI command. Lifecycle operations never
// fail on a non-zero exit; the exit error is reported alongside the output.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	args, err := BuildArgs(input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Running container command", map[string]interface{}{
		"operation": string(input.Operation),
		"args":      args,
	})

	result, runErr := s.runner.Run(ctx, args...)
	if result == nil {
		if runErr == nil {
			runErr = fmt.Errorf("runner returned no result")
		}
		return nil, errors.NewContainerCommandError(strings.Join(args, " "), runErr)
	}

	output := &Output{
		Operation: input.Operation,
		Args:      args,
		Output:    result.Output(),
		ExitCode:  result.ExitCode,
	}

	if runErr != nil {
		if input.Operation == OpListImages {
			return nil, errors.NewContainerCommandError(strings.Join(args, " "), runErr)
		}
		output.ExitError = runErr.Error()
		s.logger.Warn("Container command exited with error", map[string]interface{}{
			"operation": string(input.Operation),
			"exitCode":  result.ExitCode,
			"error":     runErr.Error(),
		})
	}

	return output, nil
}
