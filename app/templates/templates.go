// Package templates holds the HTML pages served by the API
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var fs embed.FS

func Load() *template.Template {
	return template.Must(template.ParseFS(fs, "*.html"))
}
