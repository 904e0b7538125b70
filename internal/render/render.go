// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Every page template is parsed once, paired with the shared base layout.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"thearchives/internal/markdown"
	"thearchives/internal/route"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title       string         // Page title for <title> tag
	Description string         // meta description
	Section     string         // Active nav section (e.g., "destinations", "hidden-gems")
	Query       string         // Search box prefill
	Data        map[string]any // Page-specific data
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. When devMode is true, pages load Tailwind from the CDN
// instead of the compiled stylesheet.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"isDev": func() bool { return devMode },
			"activeClass": func(current, target string) string {
				if current == target {
					return "text-forest font-semibold"
				}
				return "text-stone-600 hover:text-forest"
			},
			"prose":            markdown.Prose,
			"year":             func() int { return time.Now().Year() },
			"homePath":         route.Home,
			"allDistrictsPath": route.HomeAllDistricts,
			"districtPath":     route.District,
			"destinationsPath": route.Destinations,
			"destinationPath":  route.Destination,
			"hiddenGemsPath":   route.HiddenGems,
			"locationGemsPath": route.LocationGems,
			"productPath":      route.Product,
			"submitPath":       route.SubmitGem,
			"galleryPath":      route.Gallery,
			"locGalleryPath":   route.LocationGallery,
			"aboutPath":        route.About,
			"searchPath":       route.Search,
			"matchPath":        route.For,
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Has reports whether a page template with the given name was parsed.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Render executes the named page into w.
func (rn *Renderer) Render(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Bytes renders the named page into memory, for callers that cache output.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Page renders a full page with the given status. Output is buffered so a
// template error still produces a clean 500.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	out, err := rn.Bytes(name, data)
	if err != nil {
		slog.Error("render page failed", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	WriteHTML(w, status, out)
}

// WriteHTML writes a rendered page with the HTML content type.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
