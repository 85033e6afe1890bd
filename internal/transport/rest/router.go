package rest

import (
	"net/http"

	"github.com/heartmarshall/coaching-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts. Metrics may be nil.
type Handlers struct {
	Health      *HealthHandler
	Clients     *ClientHandler
	Artifacts   *ArtifactHandler
	Generations *GenerationHandler
	Timeline    *TimelineHandler
	Metrics     http.Handler
}

// NewRouter registers every route on a fresh mux. generateLimit guards the
// generator endpoint; pass nil to leave it unlimited.
func NewRouter(h Handlers, generateLimit middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("POST /api/clients", h.Clients.CreateClient)
	mux.HandleFunc("GET /api/clients", h.Clients.ListClients)
	mux.HandleFunc("GET /api/clients/{clientID}", h.Clients.GetClient)
	mux.HandleFunc("PATCH /api/clients/{clientID}/status", h.Clients.SetStatus)
	mux.HandleFunc("POST /api/programs", h.Clients.CreateProgram)
	mux.HandleFunc("GET /api/programs", h.Clients.ListPrograms)

	mux.HandleFunc("POST /api/clients/{clientID}/artifacts/{kind}", h.Artifacts.Apply)
	mux.HandleFunc("GET /api/clients/{clientID}/artifacts/{kind}", h.Artifacts.GetCurrent)
	mux.HandleFunc("GET /api/clients/{clientID}/artifacts/{kind}/history", h.Artifacts.GetHistory)

	var generate http.Handler = http.HandlerFunc(h.Generations.Generate)
	if generateLimit != nil {
		generate = generateLimit(generate)
	}
	mux.HandleFunc("POST /api/clients/{clientID}/generation-logs", h.Generations.Append)
	mux.HandleFunc("GET /api/clients/{clientID}/generation-logs", h.Generations.List)
	mux.Handle("POST /api/clients/{clientID}/generations", generate)
	mux.HandleFunc("GET /api/generation-logs/{logID}", h.Generations.Get)
	mux.HandleFunc("DELETE /api/generation-logs/{logID}", h.Generations.Delete)

	mux.HandleFunc("POST /api/clients/{clientID}/timeline", h.Timeline.Append)
	mux.HandleFunc("GET /api/clients/{clientID}/timeline", h.Timeline.List)
	mux.HandleFunc("DELETE /api/events/{eventID}", h.Timeline.Delete)

	return mux
}
