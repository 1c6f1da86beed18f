package imagepost

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"account_id", "image_url", "caption"},
		Properties: map[string]validation.Property{
			"account_id": {
				Type:        "string",
				Description: "Business account identifier",
				Pattern:     validation.StringPtr(`^[0-9]+$`),
				MaxLength:   validation.IntPtr(64),
			},
			"image_url": {
				Type:        "string",
				Description: "Public URL of the image to publish",
				Pattern:     validation.StringPtr(`^https?://`),
				MaxLength:   validation.IntPtr(2048),
			},
			"caption": {
				Type:        "string",
				Description: "Post caption",
				MaxLength:   validation.IntPtr(2200),
			},
		},
		AdditionalProperties: false,
	}
}
