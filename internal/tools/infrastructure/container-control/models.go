package containercontrol

import (
	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/logger"
)

type Operation string

const (
	OpLaunch     Operation = "launch"
	OpStart      Operation = "start"
	OpStop       Operation = "stop"
	OpRemove     Operation = "remove"
	OpListImages Operation = "list-images"
)

// operationLabels are the user-facing names, in menu order.
var operationLabels = []struct {
	Op    Operation
	Label string
}{
	{OpLaunch, "Launch New Container"},
	{OpStart, "Start Container"},
	{OpStop, "Stop Container"},
	{OpRemove, "Remove Container"},
	{OpListImages, "List Docker Images"},
}

func Operations() []string {
	ops := make([]string, len(operationLabels))
	for i, o := range operationLabels {
		ops[i] = string(o.Op)
	}
	return ops
}

func (o Operation) Label() string {
	for _, l := range operationLabels {
		if l.Op == o {
			return l.Label
		}
	}
	return string(o)
}

type Input struct {
	Operation Operation `json:"operation"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
}

type Output struct {
	Operation Operation `json:"operation"`
	Args      []string  `json:"args"`
	Output    string    `json:"output"`
	ExitCode  int       `json:"exitCode"`
	// ExitError is set when the command ran but did not exit cleanly.
	ExitError string `json:"exitError,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
	Runner container.Runner
}
