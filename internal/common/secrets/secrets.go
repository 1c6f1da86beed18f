// Package secrets resolves tool credentials by name. Values never come from
// form input or source text.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a provider has no value for a name.
var ErrNotFound = errors.New("secret not found")

// Provider resolves a named credential.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// Static serves fixed values. Tests and the catalog exporter use it.
type Static map[string]string

func (s Static) Get(_ context.Context, name string) (string, error) {
	if v, ok := s[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}
