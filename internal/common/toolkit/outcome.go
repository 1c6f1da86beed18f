package toolkit

import (
	"tool-dashboard/internal/common/errors"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Outcome is what the page shows after a submit.
type Outcome struct {
	Tool      string `json:"tool"`
	Status    Status `json:"status"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	Preview   string `json:"preview,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

func Success(tool, message string) *Outcome {
	return &Outcome{Tool: tool, Status: StatusSuccess, Message: message}
}

func Warning(tool, message string) *Outcome {
	return &Outcome{Tool: tool, Status: StatusWarning, Message: message}
}

// Failure renders err verbatim for the user.
func Failure(tool string, err error) *Outcome {
	out := &Outcome{
		Tool:    tool,
		Status:  StatusError,
		Message: errors.ToOutcomeMessage(err),
	}
	if stdErr, ok := errors.AsStandardError(err); ok {
		out.ErrorCode = string(stdErr.Code)
	} else {
		out.ErrorCode = string(errors.ErrCodeInternal)
	}
	return out
}

// WithDetail attaches raw command output or a raw response body.
func (o *Outcome) WithDetail(detail string) *Outcome {
	o.Detail = detail
	return o
}

func (o *Outcome) WithPreview(markup string) *Outcome {
	o.Preview = markup
	return o
}

func (o *Outcome) Failed() bool {
	return o.Status == StatusError
}
