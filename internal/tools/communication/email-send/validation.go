package emailsend

import "tool-dashboard/internal/common/validation"

// headerSafe rejects CR and LF so a field cannot add headers.
const headerSafe = `^[^\r\n]*$`

// bareAddress accepts local@domain only, without a display name.
const bareAddress = `^[^\s<>"(),;:@]+@[^\s<>"(),;:@]+$`

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"from", "to", "subject", "body"},
		Properties: map[string]validation.Property{
			"from": {
				Type:        "string",
				Description: "Sender address, also the SMTP login when no username is configured",
				Format:      "email",
				Pattern:     validation.StringPtr(bareAddress),
			},
			"to": {
				Type:        "string",
				Description: "Recipient address",
				Format:      "email",
				Pattern:     validation.StringPtr(bareAddress),
			},
			"subject": {
				Type:        "string",
				Description: "Subject line",
				Pattern:     validation.StringPtr(headerSafe),
				MaxLength:   validation.IntPtr(998),
			},
			"body": {
				Type:        "string",
				Description: "Plain text message",
				MaxLength:   validation.IntPtr(100000),
			},
		},
		AdditionalProperties: false,
	}
}
