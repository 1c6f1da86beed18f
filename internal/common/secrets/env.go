package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProvider reads <PREFIX><NAME> from the process environment, upper-cased.
// genai_api_key with prefix DASHBOARD_ resolves DASHBOARD_GENAI_API_KEY.
type EnvProvider struct {
	prefix string
	lookup func(string) (string, bool)
}

func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix, lookup: os.LookupEnv}
}

func (p *EnvProvider) Get(_ context.Context, name string) (string, error) {
	key := p.Key(name)
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Key returns the environment variable name for a secret.
func (p *EnvProvider) Key(name string) string {
	replacer := strings.NewReplacer("-", "_", ".", "_")
	return strings.ToUpper(p.prefix + replacer.Replace(name))
}
