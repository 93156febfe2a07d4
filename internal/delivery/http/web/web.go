package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"last": func(i, n int) bool {
		return i == n-1
	},
}

// Templates parses the page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

// Static serves the page script and stylesheet
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
