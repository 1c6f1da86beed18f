package markuppreview

import "tool-dashboard/internal/common/validation"

func GetInputSchema(maxLength int) validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"markup"},
		Properties: map[string]validation.Property{
			"markup": {
				Type:        "string",
				Description: "HTML to render in the sandboxed preview frame",
				MaxLength:   validation.IntPtr(maxLength),
			},
		},
		AdditionalProperties: false,
	}
}
