package aisummary

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"category", "title"},
		Properties: map[string]validation.Property{
			"category": {
				Type:        "string",
				Description: "Kind of title to review",
				Enum:        Categories,
			},
			"title": {
				Type:        "string",
				Description: "Name of the anime, manga, movie or web series",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(200),
			},
		},
		AdditionalProperties: false,
	}
}
