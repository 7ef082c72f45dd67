// Package api exposes label rendering and batch management over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/labelforge/labelforge/config"
	"github.com/labelforge/labelforge/label"
	"github.com/labelforge/labelforge/sheet"
	"github.com/labelforge/labelforge/store"
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Config  *config.Config
	Store   *store.BatchStore
	Fonts   label.FontSet
	Layout  sheet.Layout
	Log     *slog.Logger
	Version string
}

// NewRouter returns a fully configured chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.Log))

	// Status & capabilities
	r.Get("/status", s.handleStatus)
	r.Get("/symbologies", s.handleSymbologies)

	// Single label rendering
	r.Get("/label.png", s.handleLabelPNG)

	// Batch management & export
	r.Get("/batch/items", s.handleListItems)
	r.Post("/batch/items", s.handleAddItems)
	r.Patch("/batch/items/{id}", s.handleUpdateItem)
	r.Delete("/batch/items/{id}", s.handleDeleteItem)
	r.Delete("/batch/items", s.handleClearItems)
	r.Post("/batch/export", s.handleExport)

	return r
}

// renderOptions builds the per-request render settings from the loaded
// config and preloaded fonts.
func (s *Server) renderOptions() label.RenderOptions {
	return label.RenderOptions{
		Encode: label.EncodeOptions{
			BarcodeWidth:  s.Config.Label.BarcodeWidth,
			BarcodeHeight: s.Config.Label.BarcodeHeight,
			QRSize:        s.Config.Label.QRSize,
		},
		Currency: s.Config.Currency,
		LogoPath: s.Config.LogoPath,
		Fonts:    s.Fonts,
	}
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// --- middleware --------------------------------------------------------------

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}
