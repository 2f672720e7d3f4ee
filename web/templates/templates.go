// Package templates renders the embedded web UI.
package templates

import (
	"embed"
	"html/template"
	"io"
)

//go:embed index.html.tmpl
var files embed.FS

var index = template.Must(
	template.New("index.html.tmpl").Funcs(template.FuncMap{
		"alertClass": alertClass,
	}).ParseFS(files, "index.html.tmpl"),
)

// Flash is a one-shot message shown at the top of the page.
// Category is one of "ok", "warn", or "err".
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ExamplePaths holds per-OS example base paths for the help modal.
type ExamplePaths struct {
	Linux string
	Mac   string
	Win   string
}

// IndexData is everything the index page needs.
type IndexData struct {
	AppName    string
	Version    string
	BasePath   string
	Scanned    bool
	Results    []string
	ScanError  string
	Truncated  bool
	MaxResults int
	Flashes    []Flash
	CSRFToken  string
	Examples   ExamplePaths
}

// RenderIndex writes the index page to w.
func RenderIndex(w io.Writer, data IndexData) error {
	return index.Execute(w, data)
}

// alertClass maps a flash category to a Bootstrap alert class suffix.
func alertClass(category string) string {
	switch category {
	case "warn":
		return "warning"
	case "err":
		return "danger"
	default:
		return "success"
	}
}

// DefaultExamples returns the example paths shown in the help modal.
func DefaultExamples() ExamplePaths {
	return ExamplePaths{
		Linux: "/home/<user>/projects  or  /opt",
		Mac:   "/Users/<user>/dev  or  /Applications",
		Win:   `C:\Users\<user>\Projects  or  D:\dev`,
	}
}
