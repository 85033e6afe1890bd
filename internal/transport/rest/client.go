package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/client"
	"github.com/heartmarshall/coaching-backend/internal/service/program"
)

type clientService interface {
	CreateClient(ctx context.Context, input client.CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
	ListClients(ctx context.Context, limit int) ([]domain.Client, error)
	SetStatus(ctx context.Context, input client.SetStatusInput) (*domain.Client, error)
}

type programService interface {
	CreateProgram(ctx context.Context, input program.CreateProgramInput) (*domain.ProgramTemplate, error)
	ListPrograms(ctx context.Context) ([]domain.ProgramTemplate, error)
}

// ClientHandler serves client roster and program catalog endpoints.
type ClientHandler struct {
	clients  clientService
	programs programService
	log      *slog.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(clients clientService, programs programService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, programs: programs, log: logger.With("handler", "client")}
}

type createClientRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CreateClient handles POST /api/clients.
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.clients.CreateClient(r.Context(), client.CreateClientInput{
		Name:   req.Name,
		Status: domain.ClientStatus(req.Status),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toClientResponse(c))
}

// ListClients handles GET /api/clients.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	clients, err := h.clients.ListClients(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(clients, toClientResponse))
}

// GetClient handles GET /api/clients/{clientID}.
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.clients.GetClient(r.Context(), clientID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toClientResponse(c))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/clients/{clientID}/status.
func (h *ClientHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req setStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.clients.SetStatus(r.Context(), client.SetStatusInput{
		ClientID: clientID,
		Status:   domain.ClientStatus(req.Status),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toClientResponse(c))
}

type createProgramRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Weeks       int     `json:"weeks"`
}

// CreateProgram handles POST /api/programs.
func (h *ClientHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.programs.CreateProgram(r.Context(), program.CreateProgramInput{
		Name:        req.Name,
		Description: req.Description,
		Weeks:       req.Weeks,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProgramResponse(p))
}

// ListPrograms handles GET /api/programs.
func (h *ClientHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.programs.ListPrograms(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(programs, toProgramResponse))
}
