package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"moviehub/pkg/utils"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"dashboard", "movie_detail", "login", "register"}

var funcMap = template.FuncMap{
	"truncateWords": utils.TruncateWords,
	// stars maps a 1-10 rating onto five glyphs
	"stars": func(rating float64) string {
		filled := int(rating/2 + 0.5)
		if filled > 5 {
			filled = 5
		}
		out := ""
		for i := 0; i < 5; i++ {
			if i < filled {
				out += "★"
			} else {
				out += "☆"
			}
		}
		return out
	},
}

// ParseTemplates builds one template set per page, each sharing the layout
func ParseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	for _, page := range pages {
		tmpl, err := template.New("layout.html").
			Funcs(funcMap).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return templates, nil
}

// StaticHandler serves the embedded static assets under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
