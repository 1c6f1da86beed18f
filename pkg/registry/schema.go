// pkg/registry/schema.go
package registry

// ToolCatalog is the published list of dashboard tools and their form schemas.
type ToolCatalog struct {
	Version     string      `json:"version" yaml:"version"`
	LastUpdated string      `json:"lastUpdated" yaml:"lastUpdated"`
	Tools       []ToolEntry `json:"tools" yaml:"tools"`
}

type ToolEntry struct {
	ID          string                 `json:"id" yaml:"id"`
	DisplayName string                 `json:"displayName" yaml:"displayName"`
	Description string                 `json:"description" yaml:"description"`
	Category    string                 `json:"category" yaml:"category"`
	SubmitLabel string                 `json:"submitLabel" yaml:"submitLabel"`
	Enabled     bool                   `json:"enabled" yaml:"enabled"`
	Fields      []FieldEntry           `json:"fields" yaml:"fields"`
	InputSchema map[string]interface{} `json:"inputSchema" yaml:"inputSchema"`
	Secrets     []string               `json:"secrets,omitempty" yaml:"secrets,omitempty"`
}

type FieldEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Label    string   `json:"label" yaml:"label"`
	Kind     string   `json:"kind" yaml:"kind"`
	Required bool     `json:"required" yaml:"required"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
}
