// Package docs serves the OpenAPI description of the API, a Swagger UI page
// that renders it, and the landing page.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

var landingPage = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
  <h1>{{.Title}}</h1>
  <a href="{{.DocsURL}}">Documentation</a>
</body>
</html>
`))

// Handler serves the documentation routes under the base path given to
// NewHandler.
type Handler struct {
	basePath string
	specJSON []byte
}

// NewHandler converts the embedded YAML document to JSON once, so a broken
// document fails at startup rather than on first request.
func NewHandler(basePath string) (*Handler, error) {
	specJSON, err := yamlToJSON(openAPIYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	return &Handler{basePath: basePath, specJSON: specJSON}, nil
}

// Landing serves GET /.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, landingPage, map[string]string{
		"Title":   "Jobs API",
		"DocsURL": h.basePath,
	})
}

// SwaggerUI serves the interactive documentation page.
func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	h.render(w, swaggerPage, map[string]string{
		"Title":   "Jobs API documentation",
		"SpecURL": h.basePath + "/openapi.json",
	})
}

// SpecYAML serves the OpenAPI document as written.
func (h *Handler) SpecYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIYAML)
}

// SpecJSON serves the OpenAPI document as JSON.
func (h *Handler) SpecJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.specJSON)
}

func (h *Handler) render(w http.ResponseWriter, tmpl *template.Template, data map[string]string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func yamlToJSON(in []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
