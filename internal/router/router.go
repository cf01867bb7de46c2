package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"gadgetfinder-backend/internal/handlers"
	"gadgetfinder-backend/internal/middleware"
)

func New(
	log logrus.FieldLogger,
	chatHandler *handlers.ChatHandler,
	catalogHandler *handlers.CatalogHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The chat handler answers every method itself (preflight, 405).
	r.HandleFunc("/chat", chatHandler.Handle)
	r.HandleFunc("/.netlify/functions/ai-chat", chatHandler.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		r.HandleFunc("/chat", chatHandler.Handle)

		// ──── Static site documents ────
		if catalogHandler != nil {
			r.Get("/site", catalogHandler.Site)
			r.Get("/affiliates", catalogHandler.Affiliates)
			r.Get("/quick-pick", catalogHandler.QuickPick)
		}
	})

	return r
}
