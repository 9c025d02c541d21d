// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/formbuilder/cliparse"
	"github.com/danielhkuo/formbuilder/handlers"
	"github.com/danielhkuo/formbuilder/metrics"
	"github.com/danielhkuo/formbuilder/middleware"
	"github.com/danielhkuo/formbuilder/render"
	"github.com/danielhkuo/formbuilder/store"
)

// NewRouter builds the full HTTP surface over s, wrapped with CORS and
// request metrics.
func NewRouter(s store.Store, cfg cliparse.Config) (http.Handler, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	s = metrics.InstrumentStore(s)
	formHandler := handlers.NewFormHandler(s)
	pageHandler := handlers.NewPageHandler(s, renderer)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// JSON API
	mux.HandleFunc("GET /api/forms", middleware.WithLogging(formHandler.ListForms))
	mux.HandleFunc("POST /api/forms", middleware.WithLogging(formHandler.CreateForm))
	mux.HandleFunc("GET /api/forms/{id}", middleware.WithLogging(formHandler.GetForm))
	mux.HandleFunc("PUT /api/forms/{id}", middleware.WithLogging(formHandler.UpdateForm))
	mux.HandleFunc("DELETE /api/forms/{id}", middleware.WithLogging(formHandler.DeleteForm))
	mux.HandleFunc("POST /api/forms/{id}/submit", middleware.WithLogging(formHandler.SubmitForm))
	mux.HandleFunc("GET /api/forms/{id}/submissions", middleware.WithLogging(formHandler.ListSubmissions))

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Home))
	mux.HandleFunc("POST /forms", middleware.WithLogging(pageHandler.CreateForm))
	mux.HandleFunc("POST /forms/{id}/delete", middleware.WithLogging(pageHandler.DeleteForm))
	mux.HandleFunc("GET /forms/{id}", middleware.WithLogging(pageHandler.FillForm))
	mux.HandleFunc("POST /forms/{id}", middleware.WithLogging(pageHandler.SubmitForm))

	// Builder
	mux.HandleFunc("GET /forms/{id}/builder", middleware.WithLogging(pageHandler.Builder))
	mux.HandleFunc("POST /forms/{id}/builder/title", middleware.WithLogging(pageHandler.SetTitle))
	mux.HandleFunc("POST /forms/{id}/builder/inputs", middleware.WithLogging(pageHandler.AddInput))
	mux.HandleFunc("POST /forms/{id}/builder/inputs/{inputID}/delete", middleware.WithLogging(pageHandler.DeleteInput))
	mux.HandleFunc("POST /forms/{id}/builder/sections", middleware.WithLogging(pageHandler.AddSection))
	mux.HandleFunc("POST /forms/{id}/builder/sections/{sectionID}", middleware.WithLogging(pageHandler.RenameSection))
	mux.HandleFunc("POST /forms/{id}/builder/reorder", middleware.WithLogging(pageHandler.Reorder))

	return metrics.InstrumentHandler(middleware.CORS(cfg.CORSOrigin)(mux)), nil
}
