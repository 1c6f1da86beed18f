// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a catalog in JSON, or YAML when the path ends in .yaml/.yml.
func LoadCatalog(path string) (*ToolCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog ToolCatalog
	if isYAML(path) {
		err = yaml.Unmarshal(data, &catalog)
	} else {
		err = json.Unmarshal(data, &catalog)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &catalog, nil
}

// SaveCatalog writes the catalog, creating the directory if needed.
func SaveCatalog(catalog *ToolCatalog, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(catalog)
	} else {
		data, err = json.MarshalIndent(catalog, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Validate checks ids are unique and every entry has what the UI needs.
func (c *ToolCatalog) Validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("catalog contains no tools")
	}

	ids := make(map[string]bool)
	for _, tool := range c.Tools {
		if tool.ID == "" {
			return fmt.Errorf("tool missing required field: ID")
		}
		if ids[tool.ID] {
			return fmt.Errorf("duplicate tool ID: %s", tool.ID)
		}
		ids[tool.ID] = true

		if tool.DisplayName == "" {
			return fmt.Errorf("tool %s missing required field: DisplayName", tool.ID)
		}
		if tool.Category == "" {
			return fmt.Errorf("tool %s missing required field: Category", tool.ID)
		}
		if len(tool.Fields) == 0 {
			return fmt.Errorf("tool %s declares no fields", tool.ID)
		}
	}
	return nil
}

func (c *ToolCatalog) Find(id string) (*ToolEntry, bool) {
	for i := range c.Tools {
		if c.Tools[i].ID == id {
			return &c.Tools[i], true
		}
	}
	return nil, false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
