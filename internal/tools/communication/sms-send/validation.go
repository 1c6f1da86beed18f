package smssend

import "tool-dashboard/internal/common/validation"

// numbersPattern accepts a comma separated list of phone numbers.
const numbersPattern = `^\+?[0-9]{7,15}(\s*,\s*\+?[0-9]{7,15})*$`

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"numbers", "message"},
		Properties: map[string]validation.Property{
			"numbers": {
				Type:        "string",
				Description: "Recipient number(s), comma separated",
				Pattern:     validation.StringPtr(numbersPattern),
				MaxLength:   validation.IntPtr(2000),
			},
			"message": {
				Type:        "string",
				Description: "Message text",
				MaxLength:   validation.IntPtr(765),
			},
		},
		AdditionalProperties: false,
	}
}
