package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed admin.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(dashboardFS, "admin.html"))

// Dashboard handles GET /admin. It renders the server-side admin page, which
// polls the JSON endpoints for data. Access control is applied by the router.
func (h *ApplicationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, nil); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}
