package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/david/civic-connect/internal/i18n"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// Renderer executes one page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		key := strings.TrimPrefix(name, "templates/")
		tmpl, err := template.New(key).Funcs(templateFuncs).ParseFS(templatesFS, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", key, err)
		}
		r.pages[key] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

type language struct {
	Code string
	Name string
}

// page is the value every template receives.
type page struct {
	Lang      string
	Languages []language
	Data      any

	catalog *i18n.Catalog
}

func (p page) T(key string) template.HTML {
	return p.catalog.T(p.Lang, key)
}
