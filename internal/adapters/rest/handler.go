package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shantanugsharp/chatbot-be/internal/app"
)

// Handler manages the HTTP interface of the assistant.
type Handler struct {
	app    *app.App
	router chi.Router
}

// endpoints is the route summary returned by the info and not-found bodies.
var endpoints = map[string]string{
	"health":       "GET /health - Check server health",
	"chat":         "POST /chat - Send messages to MIRA",
	"stats":        "GET /stats - Get track statistics",
	"reset":        "POST /reset - Reset conversation",
	"conversation": "GET /conversation - Get conversation history",
	"init":         "POST /init - Reload the track catalog",
	"metrics":      "GET /metrics - Prometheus metrics",
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(a *app.App) *Handler {
	h := &Handler{
		app:    a,
		router: chi.NewRouter(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	srv := h.app.Config.Server

	h.router.Use(requestID)
	h.router.Use(chimiddleware.RealIP)
	h.router.Use(chimiddleware.Recoverer)
	h.router.Use(corsHandler(srv.CORSOrigins))
	h.router.Use(accessLog)

	h.router.NotFound(h.notFound)
	h.router.MethodNotAllowed(h.methodNotAllowed)

	h.router.Get("/", h.Info)
	h.router.Get("/health", h.HealthCheck)
	h.router.Handle("/metrics", promhttp.Handler())

	h.router.Group(func(r chi.Router) {
		r.Use(rateLimit(srv.RateLimitRequests, srv.RateLimitWindow))
		r.Post("/chat", h.Chat)
		r.Post("/reset", h.Reset)
		r.Get("/conversation", h.Conversation)
		r.Get("/stats", h.Stats)
		r.Post("/init", h.Init)
	})
}

// Info handles GET /.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	status := "active"
	if h.app.Engine.Stats().Total == 0 {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   h.app.Engine.Name() + " API",
		"version":   app.Version,
		"status":    status,
		"provider":  h.app.Engine.ProviderName(),
		"endpoints": endpoints,
	})
}

// HealthCheck handles GET /health. A server without tracks is degraded but
// still answers conversational messages.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	tracks := h.app.Engine.Stats().Total
	status := "healthy"
	if tracks == 0 {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        status,
		"bot_name":      h.app.Engine.Name(),
		"tracks_loaded": tracks,
		"server_time":   time.Now().Unix(),
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success":             false,
		"error":               "Endpoint not found",
		"available_endpoints": endpoints,
	})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success":             false,
		"error":               "Method not allowed",
		"available_endpoints": endpoints,
	})
}
