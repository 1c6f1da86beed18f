// Package router dispatches a submitted form to exactly one tool and records
// what happened.
package router

import (
	"context"
	"fmt"
	"time"

	"tool-dashboard/internal/common/audit"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/metrics"
	"tool-dashboard/internal/common/observability"
	"tool-dashboard/internal/common/toolkit"
	"tool-dashboard/pkg/registry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Router struct {
	tools      map[string]toolkit.Tool
	order      []string
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	recorder   *audit.Recorder
	obs        *observability.Observability
}

type Options struct {
	Logger        logger.Logger
	Recorder      *audit.Recorder
	Observability *observability.Observability
}

// enabler is implemented by tools that can be switched off in config.
type enabler interface {
	IsEnabled() bool
}

func New(tools []toolkit.Tool, opts Options) (*Router, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := opts.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}

	r := &Router{
		tools:      make(map[string]toolkit.Tool, len(tools)),
		order:      make([]string, 0, len(tools)),
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
		recorder:   opts.Recorder,
		obs:        obs,
	}

	for _, tool := range tools {
		name := tool.Descriptor().Name
		if name == "" {
			return nil, fmt.Errorf("tool without a name")
		}
		if _, dup := r.tools[name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", name)
		}
		r.tools[name] = tool
		r.order = append(r.order, name)
	}

	return r, nil
}

// Descriptors lists the enabled tools in menu order.
func (r *Router) Descriptors() []toolkit.Descriptor {
	descriptors := make([]toolkit.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		if r.enabled(name) {
			descriptors = append(descriptors, r.tools[name].Descriptor())
		}
	}
	return descriptors
}

// Lookup returns the descriptor of an enabled tool.
func (r *Router) Lookup(name string) (toolkit.Descriptor, bool) {
	tool, ok := r.tools[name]
	if !ok || !r.enabled(name) {
		return toolkit.Descriptor{}, false
	}
	return tool.Descriptor(), true
}

func (r *Router) enabled(name string) bool {
	if e, ok := r.tools[name].(enabler); ok {
		return e.IsEnabled()
	}
	return true
}

// Dispatch runs one submission. It always returns an outcome; tool failures
// become error outcomes carrying the raw error text.
func (r *Router) Dispatch(ctx context.Context, name string, form toolkit.Form) *toolkit.Outcome {
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("Unknown tool requested", map[string]interface{}{
			"tool": name,
		})
		return toolkit.Failure(name, errors.NewToolNotFoundError(name))
	}
	if !r.enabled(name) {
		return toolkit.Failure(name, errors.NewToolDisabledError(name))
	}

	startTime := time.Now()
	metrics.ToolSubmissionsActive.WithLabelValues(name).Inc()
	defer metrics.ToolSubmissionsActive.WithLabelValues(name).Dec()

	ctx, span := r.obs.StartSpan(ctx, "dispatch "+name,
		attribute.String("tool", name),
		attribute.StringSlice("fields", form.Names()),
	)
	defer span.End()

	r.logger.Info("Processing submission", map[string]interface{}{
		"tool":   name,
		"fields": form.Names(),
	})

	outcome, err := tool.Handle(ctx, form)
	if err == nil && outcome == nil {
		err = errors.NewInternalError(fmt.Errorf("%s returned no outcome", name))
	}
	if err != nil {
		stdErr := r.errHandler.HandleToolError(name, err)
		outcome = toolkit.Failure(name, stdErr)
		metrics.ToolSubmissionsFailed.WithLabelValues(name, string(stdErr.Code)).Inc()
		span.SetStatus(codes.Error, string(stdErr.Code))
	}
	outcome.Tool = name

	duration := time.Since(startTime)
	status := string(outcome.Status)

	metrics.ToolSubmissions.WithLabelValues(name, status).Inc()
	metrics.ToolSubmissionDuration.WithLabelValues(name).Observe(duration.Seconds())
	r.obs.RecordSubmission(ctx, name, status)
	r.obs.RecordDuration(ctx, name, duration, status)

	r.recorder.Record(ctx, audit.NewRecord(name, status, outcome.ErrorCode, form.Names(), duration, startTime))

	r.logger.Info("Submission handled", map[string]interface{}{
		"tool":     name,
		"status":   status,
		"duration": duration.String(),
	})

	return outcome
}

// Catalog describes every registered tool, enabled or not.
func (r *Router) Catalog(version string) (*registry.ToolCatalog, error) {
	catalog := &registry.ToolCatalog{
		Version:     version,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Tools:       make([]registry.ToolEntry, 0, len(r.order)),
	}

	for _, name := range r.order {
		d := r.tools[name].Descriptor()

		schema, err := d.Schema.ToMap()
		if err != nil {
			return nil, fmt.Errorf("failed to export schema for %s: %w", name, err)
		}

		fields := make([]registry.FieldEntry, len(d.Fields))
		for i, f := range d.Fields {
			entry := registry.FieldEntry{Name: f.Name, Label: f.Label, Kind: string(f.Kind), Required: f.Required}
			for _, o := range f.Options {
				entry.Options = append(entry.Options, o.Value)
			}
			fields[i] = entry
		}

		catalog.Tools = append(catalog.Tools, registry.ToolEntry{
			ID:          d.Name,
			DisplayName: d.Label,
			Description: d.Description,
			Category:    d.Category,
			SubmitLabel: d.SubmitLabel,
			Enabled:     r.enabled(name),
			Fields:      fields,
			InputSchema: schema,
			Secrets:     d.Secrets,
		})
	}

	return catalog, nil
}
