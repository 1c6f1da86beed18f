package voicecall

import "tool-dashboard/internal/common/validation"

// e164Pattern matches a +-prefixed international number.
const e164Pattern = `^\+[1-9]\d{6,14}$`

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"from", "to"},
		Properties: map[string]validation.Property{
			"from": {
				Type:        "string",
				Description: "Caller number owned by the account, E.164",
				Pattern:     validation.StringPtr(e164Pattern),
			},
			"to": {
				Type:        "string",
				Description: "Number to call, E.164",
				Pattern:     validation.StringPtr(e164Pattern),
			},
		},
		AdditionalProperties: false,
	}
}
