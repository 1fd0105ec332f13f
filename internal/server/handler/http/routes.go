package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bigprints/docgen/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the stub webhook.
//
// Routes:
//
//	POST /webhook/*  → webhookHandler.Receive
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON requests
//  2. WithRequestLogging(logger)           — logs incoming requests
//
// The wildcard mount lets a client configured with any path under
// /webhook/ reach the stub, mirroring the path-shaped URLs of the
// production automation service.
func NewRouter(webhookHandler *WebhookHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/webhook/*", webhookHandler.Receive)

	return r
}
