package containercontrol

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"operation"},
		Properties: map[string]validation.Property{
			"operation": {
				Type:        "string",
				Description: "Container operation to run",
				Enum:        Operations(),
			},
			"name": {
				Type:        "string",
				Description: "Container name",
				Pattern:     validation.StringPtr(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`),
				MaxLength:   validation.IntPtr(128),
			},
			"image": {
				Type:        "string",
				Description: "Image reference",
				Pattern:     validation.StringPtr(`^[a-z0-9][a-z0-9._/:@-]*$`),
				MaxLength:   validation.IntPtr(255),
			},
		},
		AdditionalProperties: false,
	}
}

// requiredFields lists the fields each operation needs beyond the operation itself.
func requiredFields(op Operation) []string {
	switch op {
	case OpLaunch:
		return []string{"name", "image"}
	case OpStart, OpStop, OpRemove:
		return []string{"name"}
	default:
		return nil
	}
}
