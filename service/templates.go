package service

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const indexTemplate = "index.html.tmpl"

// IndexData is rendered into the index page
type IndexData struct {
	Application string
	RunPath     string
}

// getHTMLTemplate returns the named template from the embedded filesystem
func getHTMLTemplate(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}
