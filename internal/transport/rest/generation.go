package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/generation"
)

type generationService interface {
	Append(ctx context.Context, input generation.AppendInput) (*domain.GenerationLog, error)
	Generate(ctx context.Context, input generation.GenerateInput) (*domain.GenerationLog, error)
	Get(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
	List(ctx context.Context, input generation.ListInput) ([]domain.GenerationLog, error)
	Delete(ctx context.Context, logID uuid.UUID) error
}

// GenerationHandler serves generation log endpoints.
type GenerationHandler struct {
	svc generationService
	log *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(svc generationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{svc: svc, log: logger.With("handler", "generation")}
}

type appendLogRequest struct {
	GenerationType string          `json:"generationType"`
	Result         json.RawMessage `json:"result"`
	Model          string          `json:"model"`
	TokensUsed     int             `json:"tokensUsed"`
	RAGUsed        bool            `json:"ragUsed"`
}

// Append handles POST /api/clients/{clientID}/generation-logs.
func (h *GenerationHandler) Append(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req appendLogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	log, err := h.svc.Append(r.Context(), generation.AppendInput{
		ClientID:       clientID,
		GenerationType: domain.GenerationType(req.GenerationType),
		Result:         req.Result,
		Meta: domain.GenerationMeta{
			Model:      req.Model,
			TokensUsed: req.TokensUsed,
			RAGUsed:    req.RAGUsed,
		},
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGenerationLogResponse(log))
}

type generateRequest struct {
	GenerationType string `json:"generationType"`
	ClientContext  string `json:"clientContext"`
}

// Generate handles POST /api/clients/{clientID}/generations.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	log, err := h.svc.Generate(r.Context(), generation.GenerateInput{
		ClientID:       clientID,
		GenerationType: domain.GenerationType(req.GenerationType),
		ClientContext:  req.ClientContext,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGenerationLogResponse(log))
}

// List handles GET /api/clients/{clientID}/generation-logs.
func (h *GenerationHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := generation.ListInput{ClientID: clientID, Limit: limit}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.GenerationType(raw)
		input.Type = &t
	}

	logs, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(logs, toGenerationLogResponse))
}

// Get handles GET /api/generation-logs/{logID}.
func (h *GenerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	logID, err := pathUUID(r, "logID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	log, err := h.svc.Get(r.Context(), logID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGenerationLogResponse(log))
}

// Delete handles DELETE /api/generation-logs/{logID}.
func (h *GenerationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logID, err := pathUUID(r, "logID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), logID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
