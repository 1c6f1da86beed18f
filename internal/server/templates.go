package server

import (
	"html/template"

	"tool-dashboard/internal/common/toolkit"
)

// pageData feeds the dashboard page.
type pageData struct {
	Title   string
	Tools   []toolkit.Descriptor
	Active  *toolkit.Descriptor
	Values  map[string]string
	Outcome *toolkit.Outcome
}

func (p pageData) Value(name string) string {
	return p.Values[name]
}

// previewHeight is the fixed height of the markup preview frame, in pixels.
const previewHeight = 400

var pageFuncs = template.FuncMap{
	"previewHeight": func() int { return previewHeight },
	"isSelected": func(current, option string) bool {
		return current == option
	},
}

// The preview frame is sandboxed with no capabilities: scripts, forms and
// same-origin access are all off.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
nav { width: 16rem; padding: 1rem; background: #f3f3f3; min-height: 100vh; }
nav a { display: block; padding: .25rem 0; }
nav a.active { font-weight: bold; }
main { flex: 1; padding: 1rem 2rem; }
label { display: block; margin-top: .75rem; }
input, select, textarea { width: 100%; max-width: 40rem; }
.outcome { margin-top: 1.5rem; padding: .75rem; border-radius: 4px; }
.success { background: #e6f4ea; }
.warning { background: #fff4e5; }
.error { background: #fdecea; }
pre { white-space: pre-wrap; }
</style>
</head>
<body>
<nav>
<h2>{{.Title}}</h2>
{{- $active := .Active}}
{{- range .Tools}}
<a href="/?tool={{.Name}}"{{if and $active (eq $active.Name .Name)}} class="active"{{end}}>{{.Label}}</a>
{{- end}}
</nav>
<main>
{{- if .Active}}
<h1>{{.Active.Label}}</h1>
{{- if .Active.Description}}
<p>{{.Active.Description}}</p>
{{- end}}
<form method="post" action="/tools/{{.Active.Name}}">
{{- range .Active.Fields}}
<label for="{{.Name}}">{{.Label}}</label>
{{- $value := $.Value .Name}}
{{- if eq .Kind "textarea"}}
<textarea id="{{.Name}}" name="{{.Name}}" rows="8"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Required}} required{{end}}>{{$value}}</textarea>
{{- else if eq .Kind "select"}}
<select id="{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}>
{{- range .Options}}
<option value="{{.Value}}"{{if isSelected $value .Value}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{- else}}
<input id="{{.Name}}" name="{{.Name}}" type="{{.Kind}}" value="{{$value}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Required}} required{{end}}>
{{- end}}
{{- if .Help}}
<small>{{.Help}}</small>
{{- end}}
{{- end}}
<p><button type="submit">{{if .Active.SubmitLabel}}{{.Active.SubmitLabel}}{{else}}Submit{{end}}</button></p>
</form>
{{- else}}
<h1>Choose a tool</h1>
{{- end}}
{{- with .Outcome}}
<section class="outcome {{.Status}}" data-status="{{.Status}}">
<p>{{.Message}}</p>
{{- if .Detail}}
<pre>{{.Detail}}</pre>
{{- end}}
{{- if .Preview}}
<iframe sandbox srcdoc="{{.Preview}}" width="100%" height="{{previewHeight}}" title="Preview"></iframe>
{{- end}}
</section>
{{- end}}
</main>
</body>
</html>
`

func parsePage() (*template.Template, error) {
	return template.New("page").Funcs(pageFuncs).Parse(pageTemplate)
}
