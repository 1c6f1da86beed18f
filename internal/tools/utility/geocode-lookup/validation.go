package geocodelookup

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"place"},
		Properties: map[string]validation.Property{
			"place": {
				Type:        "string",
				Description: "Free-text place name",
				MaxLength:   validation.IntPtr(300),
			},
		},
		AdditionalProperties: false,
	}
}
