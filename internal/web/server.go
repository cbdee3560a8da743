// Package web serves the study browser UI. The page is a single embedded
// template that talks to the REST API and listens for reload events over
// the WebSocket endpoint.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/FocuswithJustin/ScofieldStudy/core/errors"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData feeds the index template.
type PageData struct {
	Title string
}

// Handler returns the UI handler, or an error if templates fail to parse.
func Handler() (http.Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.html", PageData{
			Title: "Connected Scofield Bible",
		}); err != nil {
			logging.Error("template render failed", "error", err)
		}
	})
	return mux, nil
}
