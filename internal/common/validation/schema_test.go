package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"category": {
				Type: "string",
				Enum: []string{"Anime", "Manga"},
			},
			"title": {
				Type:      "string",
				MinLength: IntPtr(1),
				MaxLength: IntPtr(10),
			},
			"name": {
				Type:    "string",
				Pattern: StringPtr(`^[a-z0-9]+$`),
			},
		},
		Required:             []string{"category", "title"},
		AdditionalProperties: false,
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name        string
		form        map[string]string
		wantValid   bool
		wantMissing []string
		wantField   string
	}{
		{
			name:      "valid form",
			form:      map[string]string{"category": "Anime", "title": "Naruto"},
			wantValid: true,
		},
		{
			name:        "blank value counts as missing",
			form:        map[string]string{"category": "Anime", "title": "   "},
			wantMissing: []string{"title"},
		},
		{
			name:        "all required missing",
			form:        map[string]string{},
			wantMissing: []string{"category", "title"},
		},
		{
			name:      "enum violation",
			form:      map[string]string{"category": "Opera", "title": "Carmen"},
			wantField: "category",
		},
		{
			name:      "max length violation",
			form:      map[string]string{"category": "Manga", "title": "a very long title"},
			wantField: "title",
		},
		{
			name:      "pattern violation",
			form:      map[string]string{"category": "Manga", "title": "Berserk", "name": "x;y"},
			wantField: "name",
		},
		{
			name:      "extra field rejected",
			form:      map[string]string{"category": "Manga", "title": "Berserk", "other": "1"},
			wantField: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateForm(tt.form, testSchema())
			require.NotNil(t, result)
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantMissing != nil {
				assert.ElementsMatch(t, tt.wantMissing, result.MissingFields())
				assert.Contains(t, result.Summary(), "missing required fields")
			}
			if tt.wantField != "" {
				assert.NotEmpty(t, result.Errors)
				assert.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestValidateForm_ValidHasEmptySummary(t *testing.T) {
	result := ValidateForm(map[string]string{"category": "Anime", "title": "Mushishi"}, testSchema())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Summary())
	assert.Empty(t, result.MissingFields())
}

func TestSchemaToMap(t *testing.T) {
	m, err := testSchema().ToMap()
	require.NoError(t, err)
	assert.Equal(t, "object", m["type"])
	assert.Contains(t, m, "properties")
	assert.Equal(t, false, m["additionalProperties"])
}

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{"type":"object","properties":{"a":{"type":"string"}},"required":["a"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, schema.Required)
	assert.Equal(t, "string", schema.Properties["a"].Type)
}

func TestHelpers(t *testing.T) {
	assert.True(t, ValidateEmail("me@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.True(t, ValidateURL("https://example.com/a.png"))
	assert.False(t, ValidateURL("javascript:alert(1)"))
	assert.True(t, ValidatePhone("+91 98765 43210"))
	assert.False(t, ValidatePhone("12"))
}
