// Package toolkit holds the contract shared by the form router and every tool.
package toolkit

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/validation"
)

// FieldKind selects the input widget rendered for a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldEmail    FieldKind = "email"
	FieldURL      FieldKind = "url"
	FieldTel      FieldKind = "tel"
)

type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Descriptor is everything the router needs to render and dispatch a tool.
type Descriptor struct {
	Name        string                `json:"name"`
	Label       string                `json:"label"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	SubmitLabel string                `json:"submitLabel"`
	Fields      []Field               `json:"fields"`
	// Secrets names the credentials the tool resolves. Never values.
	Secrets     []string              `json:"secrets,omitempty"`
	Schema      validation.JSONSchema `json:"-"`
}

// FieldNames lists the descriptor's field names in display order.
func (d Descriptor) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// Tool is one dashboard action handler.
type Tool interface {
	Descriptor() Descriptor
	Handle(ctx context.Context, form Form) (*Outcome, error)
}

// Form is the request form of one submission: field name to raw text value.
// It lives for a single request.
type Form map[string]string

// FormFromValues keeps the first value of each descriptor field. Blank values
// are dropped. Single-line values are trimmed; textarea text is kept as typed.
// Unlisted fields are dropped.
func FormFromValues(values url.Values, fields []Field) Form {
	form := make(Form, len(fields))
	for _, f := range fields {
		if v, ok := f.normalize(values.Get(f.Name)); ok {
			form[f.Name] = v
		}
	}
	return form
}

// FormFromMap is FormFromValues for JSON bodies.
func FormFromMap(values map[string]string, fields []Field) Form {
	form := make(Form, len(fields))
	for _, f := range fields {
		if v, ok := f.normalize(values[f.Name]); ok {
			form[f.Name] = v
		}
	}
	return form
}

func (f Field) normalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if f.Kind == FieldTextarea {
		return raw, true
	}
	return trimmed, true
}

func (f Form) Get(name string) string {
	return f[name]
}

// Names returns the submitted field names, sorted. Values are never exposed.
func (f Form) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the form against the descriptor schema and returns a
// VALIDATION_FAILED error naming every offending field.
func (f Form) Validate(schema validation.JSONSchema) error {
	result := validation.ValidateForm(f, schema)
	if result.Valid {
		return nil
	}
	stdErr := errors.NewValidationError(result.Summary())
	stdErr.Metadata = map[string]interface{}{
		"missingFields": result.MissingFields(),
	}
	return stdErr
}
