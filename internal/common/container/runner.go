// Package container runs the local container CLI with literal subcommands and
// argument arrays. No shell is involved.
package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Result is the captured outcome of one CLI invocation.
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Output joins stdout and stderr the way a terminal would show them.
func (r *Result) Output() string {
	out := strings.TrimSpace(r.Stdout)
	if errOut := strings.TrimSpace(r.Stderr); errOut != "" {
		if out != "" {
			out += "\n"
		}
		out += errOut
	}
	return out
}

// Runner executes one container CLI command.
type Runner interface {
	Run(ctx context.Context, args ...string) (*Result, error)
}

// allowedSubcommands are the only verbs the dashboard may issue.
var allowedSubcommands = map[string]bool{
	"run":    true,
	"start":  true,
	"stop":   true,
	"rm":     true,
	"images": true,
}

// CLIRunner invokes the configured binary (docker, podman, ...).
type CLIRunner struct {
	binary string
}

func NewCLIRunner(binary string) *CLIRunner {
	if binary == "" {
		binary = "docker"
	}
	return &CLIRunner{binary: binary}
}

// Run executes binary with args. A non-zero exit returns the populated Result
// together with an error carrying the exit status.
func (r *CLIRunner) Run(ctx context.Context, args ...string) (*Result, error) {
	if len(args) == 0 || !allowedSubcommands[args[0]] {
		return nil, fmt.Errorf("container subcommand not allowed: %v", args)
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Args:   append([]string{r.binary}, args...),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result, fmt.Errorf("%s: %w", strings.Join(result.Args, " "), err)
	}

	return result, nil
}

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
	imagePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._/:@-]*$`)
)

// ValidateName checks the container-name grammar. Leading dashes are
// rejected so a name can never be read as a flag.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("container name is required")
	}
	if len(name) > 128 || !namePattern.MatchString(name) {
		return fmt.Errorf("invalid container name %q", name)
	}
	return nil
}

// ValidateImage checks a lower-case image reference such as nginx,
// library/nginx:1.27 or ghcr.io/org/app@sha256:...
func ValidateImage(image string) error {
	if image == "" {
		return fmt.Errorf("image is required")
	}
	if len(image) > 255 || !imagePattern.MatchString(image) {
		return fmt.Errorf("invalid image reference %q", image)
	}
	return nil
}
