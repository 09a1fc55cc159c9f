package web

import (
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/web/handlers"
	"github.com/kozaktomas/passport-photo/internal/web/static"
)

func (s *Server) setupRoutes(catalog *passport.Catalog) {
	optionsHandler := handlers.NewOptionsHandler(catalog, s.provider.Name())
	photoHandler := handlers.NewPhotoHandler(s.provider, s.pipeline, catalog, s.store, s.config.AI.Timeout())

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", optionsHandler.Get)

		r.Post("/photos/analyze", photoHandler.Analyze)
		r.Post("/photos", photoHandler.Generate)
		r.Get("/photos/{id}", photoHandler.Download)
		r.Get("/photos/{id}/sheet", photoHandler.Sheet)
		r.Get("/photos/{id}/web", photoHandler.Web)
		r.Delete("/photos/{id}", photoHandler.Delete)
	})

	// Serve the embedded frontend
	s.router.Get("/*", s.serveSPA)
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

// serveSPA serves the single-page application, falling back to index.html.
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	if !static.HasDist() {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "frontend not built\n")
		return
	}

	fs := static.GetFileSystem()
	p := r.URL.Path
	if p == "/" {
		p = "/index.html"
	}

	f, err := fs.Open(p)
	if err != nil {
		p = "/index.html"
		if f, err = fs.Open(p); err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
	}
	defer f.Close()

	if stat, err := f.Stat(); err != nil || stat.IsDir() {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	contentType, ok := contentTypes[path.Ext(p)]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}
