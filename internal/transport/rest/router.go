package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/nicdiaze/Finances/internal/transaction"
	"github.com/nicdiaze/Finances/internal/transport/middleware"
	"github.com/nicdiaze/Finances/internal/transport/swagger"
)

// RegisterAllRoutes mounts the API under /api/v1 plus the health and
// swagger endpoints at root.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, transactionHandler *transaction.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and swagger UI at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if transactionHandler != nil {
			r.Get("/categories", transactionHandler.GetCategories)

			r.Route("/transactions", func(tr chi.Router) {
				tr.Get("/", transactionHandler.ListTransactions)
				tr.Post("/", transactionHandler.CreateTransaction)
				// stats before {id} so the literal path wins
				tr.Get("/stats", transactionHandler.GetStats)
				tr.Get("/{id}", transactionHandler.GetTransaction)
				tr.Put("/{id}", transactionHandler.UpdateTransaction)
				tr.Delete("/{id}", transactionHandler.DeleteTransaction)
			})
		}
	})
}
