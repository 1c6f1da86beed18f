// Package audit records one entry per tool submission. Entries hold field
// names only, never values or credentials, and are never read back to
// deduplicate submissions.
package audit

import (
	"context"
	"time"

	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/metrics"

	"github.com/google/uuid"
)

type Record struct {
	ID          string    `json:"id"`
	Tool        string    `json:"tool"`
	Status      string    `json:"status"`
	ErrorCode   string    `json:"errorCode,omitempty"`
	Fields      []string  `json:"fields"`
	DurationMs  int64     `json:"durationMs"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewRecord stamps a record with a fresh id.
func NewRecord(tool, status, errorCode string, fields []string, duration time.Duration, at time.Time) Record {
	if fields == nil {
		fields = []string{}
	}
	return Record{
		ID:          uuid.NewString(),
		Tool:        tool,
		Status:      status,
		ErrorCode:   errorCode,
		Fields:      fields,
		DurationMs:  duration.Milliseconds(),
		SubmittedAt: at.UTC(),
	}
}

// Sink stores records somewhere durable.
type Sink interface {
	Name() string
	Write(ctx context.Context, rec Record) error
}

// HistoryReader lists the most recent records, newest first.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Recorder fans a record out to every sink. Sink failures are logged and
// counted; they never fail the submission that produced the record.
type Recorder struct {
	sinks   []Sink
	logger  logger.Logger
	timeout time.Duration
}

func NewRecorder(log logger.Logger, sinks ...Sink) *Recorder {
	return &Recorder{
		sinks:   sinks,
		logger:  log,
		timeout: 2 * time.Second,
	}
}

func (r *Recorder) Record(ctx context.Context, rec Record) {
	if r == nil || len(r.sinks) == 0 {
		return
	}

	// the submission context may already be cancelled by its tool timeout
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	for _, sink := range r.sinks {
		if err := sink.Write(writeCtx, rec); err != nil {
			metrics.AuditWritesFailed.WithLabelValues(sink.Name()).Inc()
			if r.logger != nil {
				r.logger.Warn("Audit write failed", map[string]interface{}{
					"sink":  sink.Name(),
					"tool":  rec.Tool,
					"id":    rec.ID,
					"error": err.Error(),
				})
			}
		}
	}
}

// Sinks reports the configured sink names.
func (r *Recorder) Sinks() []string {
	names := make([]string, len(r.sinks))
	for i, s := range r.sinks {
		names[i] = s.Name()
	}
	return names
}
