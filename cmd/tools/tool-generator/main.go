// cmd/tools/tool-generator/main.go
package main

import (
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
)

// ToolData holds data for templates
type ToolData struct {
	Name        string
	PackageName string
	Label       string
	Category    string
	Description string
	SubmitLabel string
	Fields      []FieldData
}

type FieldData struct {
	Name     string
	GoName   string
	Label    string
	Kind     string
	Required bool
}

func (d ToolData) RequiredNames() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

var validKinds = map[string]bool{
	"text": true, "textarea": true, "select": true, "email": true, "url": true, "tel": true,
}

var kindConstants = map[string]string{
	"text":     "toolkit.FieldText",
	"textarea": "toolkit.FieldTextarea",
	"select":   "toolkit.FieldSelect",
	"email":    "toolkit.FieldEmail",
	"url":      "toolkit.FieldURL",
	"tel":      "toolkit.FieldTel",
}

// parseFields reads "name:kind[:required],..." e.g. "place:text:required,notes:textarea".
func parseFields(spec string) ([]FieldData, error) {
	var fields []FieldData
	seen := make(map[string]bool)

	for _, raw := range strings.Split(spec, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("field %q: want name:kind[:required]", raw)
		}

		name, kind := parts[0], parts[1]
		if !isIdentifier(name) {
			return nil, fmt.Errorf("field %q: name must be lower_snake_case", name)
		}
		if !validKinds[kind] {
			return nil, fmt.Errorf("field %q: unknown kind %q", name, kind)
		}
		if seen[name] {
			return nil, fmt.Errorf("field %q declared twice", name)
		}
		seen[name] = true

		required := false
		if len(parts) == 3 {
			if parts[2] != "required" {
				return nil, fmt.Errorf("field %q: third part must be \"required\"", name)
			}
			required = true
		}

		fields = append(fields, FieldData{
			Name:     name,
			GoName:   goName(name),
			Label:    labelFor(name),
			Kind:     kind,
			Required: required,
		})
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}
	return fields, nil
}

func isIdentifier(s string) bool {
	if s == "" || !unicode.IsLower(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !(unicode.IsLower(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}

// goName turns image_url into ImageURL.
func goName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		switch upper := strings.ToUpper(part); upper {
		case "ID", "URL", "API", "SMS":
			b.WriteString(upper)
		default:
			b.WriteString(upper[:1] + part[1:])
		}
	}
	return b.String()
}

func labelFor(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func packageName(tool string) string {
	return strings.ReplaceAll(tool, "-", "")
}

const configTemplate = `package {{ .PackageName }}

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled bool          {{ tag "mapstructure" "enabled" }}
	Timeout time.Duration {{ tag "mapstructure" "timeout" }}
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
`

const modelsTemplate = `package {{ .PackageName }}

import "tool-dashboard/internal/common/logger"

type Input struct {
{{- range .Fields }}
	{{ .GoName }} string {{ tag "json" .Name }}
{{- end }}
}

type Output struct {
	Message string {{ tag "json" "message" }}
}

type ServiceDependencies struct {
	Logger logger.Logger
}
`

const validationTemplate = `package {{ .PackageName }}

import "tool-dashboard/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{ {{- range $i, $n := .RequiredNames }}{{ if $i }}, {{ end }}{{ printf "%q" $n }}{{ end -}} },
		Properties: map[string]validation.Property{
{{- range .Fields }}
			{{ printf "%q" .Name }}: {Type: "string"},
{{- end }}
		},
		AdditionalProperties: false,
	}
}
`

const serviceTemplate = `package {{ .PackageName }}

import (
	"context"

	"tool-dashboard/internal/common/logger"
)

type Service struct {
	logger logger.Logger
	config *Config
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		logger: deps.Logger,
		config: config,
	}
}

// Execute performs the tool's single external call.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Output{Message: {{ printf "%q" (printf "%s done." .Label) }}}, nil
}
`

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"
	"fmt"
	"time"

	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"
)

const ToolName = "{{ .Name }}"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	toolConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := toolConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ToolName, err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config: toolConfig,
		logger: loggerInstance,
	}
	handler.service = NewService(ServiceDependencies{Logger: loggerInstance}, handler.config)

	return handler, nil
}

func (h *Handler) Descriptor() toolkit.Descriptor {
	return toolkit.Descriptor{
		Name:        ToolName,
		Label:       {{ printf "%q" .Label }},
		Category:    {{ printf "%q" .Category }},
		Description: {{ printf "%q" .Description }},
		SubmitLabel: {{ printf "%q" .SubmitLabel }},
		Fields: []toolkit.Field{
{{- range .Fields }}
			{Name: {{ printf "%q" .Name }}, Label: {{ printf "%q" .Label }}, Kind: {{ kind .Kind }}, Required: {{ .Required }}},
{{- end }}
		},
		Schema: GetInputSchema(),
	}
}

func (h *Handler) Handle(ctx context.Context, form toolkit.Form) (*toolkit.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(form)
	if err != nil {
		return nil, err
	}

	output, err := h.service.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	return toolkit.Success(ToolName, output.Message), nil
}

func (h *Handler) parseInput(form toolkit.Form) (*Input, error) {
	if err := form.Validate(GetInputSchema()); err != nil {
		return nil, err
	}
	return &Input{
{{- range .Fields }}
		{{ .GoName }}: form.Get({{ printf "%q" .Name }}),
{{- end }}
	}, nil
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if toolCfg, exists := appConfig.Tools[ToolName]; exists {
			cfg.Enabled = toolCfg.Enabled
			if toolCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(toolCfg.Timeout) * time.Millisecond
			}
		}
	}
	return cfg
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
{{ if .RequiredNames }}
	"tool-dashboard/internal/common/errors"
{{- end }}
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	return h
}

func TestHandle_Success(t *testing.T) {
	h := newTestHandler(t)

	outcome, err := h.Handle(context.Background(), toolkit.Form{
{{- range .Fields }}
		{{ printf "%q" .Name }}: "value",
{{- end }}
	})
	require.NoError(t, err)
	assert.Equal(t, toolkit.StatusSuccess, outcome.Status)
}
{{ if .RequiredNames }}
func TestHandle_MissingRequiredField(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Handle(context.Background(), toolkit.Form{})
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
}
{{ end -}}
`

func render(name, text string, data ToolData) ([]byte, error) {
	funcs := template.FuncMap{
		"tag": func(key, value string) string {
			return fmt.Sprintf("`%s:\"%s\"`", key, value)
		},
		"kind": func(k string) string {
			return kindConstants[k]
		},
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, err
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("generated %s does not parse: %w", name, err)
	}
	return src, nil
}

func generate(data ToolData, dir string) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	templates := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"validation.go":   validationTemplate,
		"service.go":      serviceTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}

	var written []string
	for file, text := range templates {
		src, err := render(file, text, data)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, file)
		if err := os.WriteFile(path, src, 0644); err != nil {
			return written, fmt.Errorf("error writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func main() {
	name := flag.String("name", "", "Tool name (e.g., currency-convert)")
	group := flag.String("group", "utility", "Package group under internal/tools (ai, communication, infrastructure, social, utility)")
	label := flag.String("label", "", "Menu label")
	category := flag.String("category", "", "Category shown in the catalog; defaults to the group")
	description := flag.String("description", "", "One-line description")
	submit := flag.String("submit", "Submit", "Submit button label")
	fieldSpec := flag.String("fields", "", "Fields as name:kind[:required], comma separated")
	outputDir := flag.String("output", "./internal/tools/", "Output root")
	flag.Parse()

	if *name == "" || *label == "" || *fieldSpec == "" {
		fmt.Println("Usage: tool-generator --name <tool> --label <label> --fields <spec> [--group <group>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/tool-generator --name currency-convert --label \"Currency Converter\" \\")
		fmt.Println("    --fields amount:text:required,from:text:required,to:text:required")
		os.Exit(1)
	}

	fields, err := parseFields(*fieldSpec)
	if err != nil {
		fmt.Printf("Error parsing fields: %v\n", err)
		os.Exit(1)
	}

	cat := *category
	if cat == "" {
		cat = labelFor(*group)
	}

	data := ToolData{
		Name:        *name,
		PackageName: packageName(*name),
		Label:       *label,
		Category:    cat,
		Description: *description,
		SubmitLabel: *submit,
		Fields:      fields,
	}

	dir := filepath.Join(*outputDir, *group, *name)
	written, err := generate(data, dir)
	if err != nil {
		fmt.Printf("Error generating tool: %v\n", err)
		os.Exit(1)
	}

	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}
	fmt.Printf("Generated %s. Register it in internal/tools/tools.go and add it to configs/config.yaml.\n", *name)
}
