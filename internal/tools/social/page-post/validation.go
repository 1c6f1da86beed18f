package pagepost

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"page_id", "message"},
		Properties: map[string]validation.Property{
			"page_id": {
				Type:        "string",
				Description: "Page identifier",
				Pattern:     validation.StringPtr(`^[A-Za-z0-9_.-]+$`),
				MaxLength:   validation.IntPtr(128),
			},
			"message": {
				Type:        "string",
				Description: "Text to publish on the page feed",
				MaxLength:   validation.IntPtr(63206),
			},
		},
		AdditionalProperties: false,
	}
}
