package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema describes the fields a tool form accepts.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
	Format      string   `json:"format,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	CodeSchemaInvalid        = "SCHEMA_INVALID"
)

// ValidateForm checks trimmed form values against schema. A blank value counts as missing.
func ValidateForm(form map[string]string, schema JSONSchema) *ValidationResult {
	document := make(map[string]interface{}, len(form))
	for name, value := range form {
		if value = strings.TrimSpace(value); value != "" {
			document[name] = value
		}
	}
	return ValidateInput(document, schema)
}

// ValidateInput validates input against schema using gojsonschema.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(schema)",
				Message: err.Error(),
				Code:    CodeSchemaInvalid,
			}},
		}
	}

	errors := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, toValidationError(desc))
	}
	sort.SliceStable(errors, func(i, j int) bool { return errors[i].Field < errors[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errors,
	}
}

func toValidationError(desc gojsonschema.ResultError) ValidationError {
	if desc.Type() == "required" {
		field, _ := desc.Details()["property"].(string)
		return ValidationError{
			Field:   field,
			Message: "required field missing",
			Code:    CodeRequiredFieldMissing,
		}
	}
	field := desc.Field()
	if property, ok := desc.Details()["property"].(string); ok && field == "(root)" {
		// object-level errors name the offending property in their details
		field = property
	}
	return ValidationError{
		Field:   field,
		Message: desc.Description(),
		Code:    strings.ToUpper(desc.Type()),
	}
}

// GetSchemaFromJSON parses JSON schema from string
func GetSchemaFromJSON(schemaJSON string) (JSONSchema, error) {
	var schema JSONSchema
	err := json.Unmarshal([]byte(schemaJSON), &schema)
	return schema, err
}

// ToMap renders the schema as a generic JSON document.
func (s JSONSchema) ToMap() (map[string]interface{}, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// MissingFields lists required fields that were absent or blank.
func (vr *ValidationResult) MissingFields() []string {
	var fields []string
	for _, err := range vr.Errors {
		if err.Code == CodeRequiredFieldMissing {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

// Summary renders the errors as one line for the user.
func (vr *ValidationResult) Summary() string {
	if vr.Valid {
		return ""
	}
	var parts []string
	if missing := vr.MissingFields(); len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	for _, err := range vr.Errors {
		if err.Code != CodeRequiredFieldMissing {
			parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
		}
	}
	return strings.Join(parts, "; ")
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	urlPattern := regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
	return urlPattern.MatchString(url)
}

// IntPtr and StringPtr help build Property literals.
func IntPtr(i int) *int { return &i }

func StringPtr(s string) *string { return &s }
