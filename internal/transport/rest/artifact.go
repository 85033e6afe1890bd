package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/artifact"
	"github.com/heartmarshall/coaching-backend/internal/transport/dataloader"
)

type artifactService interface {
	Apply(ctx context.Context, input artifact.ApplyInput) (*domain.ArtifactVersion, error)
	GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error)
	GetHistory(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error)
}

// ArtifactHandler serves artifact application and query endpoints.
type ArtifactHandler struct {
	svc artifactService
	log *slog.Logger
}

// NewArtifactHandler creates an ArtifactHandler.
func NewArtifactHandler(svc artifactService, logger *slog.Logger) *ArtifactHandler {
	return &ArtifactHandler{svc: svc, log: logger.With("handler", "artifact")}
}

type applyRequest struct {
	Values          json.RawMessage `json:"values"`
	Source          string          `json:"source"`
	Rationale       *string         `json:"rationale"`
	GenerationLogID *string         `json:"generationLogId"`
}

// Apply handles POST /api/clients/{clientID}/artifacts/{kind}.
func (h *ArtifactHandler) Apply(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req applyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	logID, err := parseOptionalUUID("generationLogId", req.GenerationLogID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	v, err := h.svc.Apply(r.Context(), artifact.ApplyInput{
		ClientID:        clientID,
		Kind:            domain.ArtifactKind(r.PathValue("kind")),
		Values:          req.Values,
		Source:          domain.Source(req.Source),
		Rationale:       req.Rationale,
		GenerationLogID: logID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toArtifactVersionResponse(v))
}

// GetCurrent handles GET /api/clients/{clientID}/artifacts/{kind}.
func (h *ArtifactHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	current, err := h.svc.GetCurrent(r.Context(), clientID, domain.ArtifactKind(r.PathValue("kind")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCurrentArtifactResponse(current))
}

// GetHistory handles GET /api/clients/{clientID}/artifacts/{kind}/history.
// With ?expand=generation_log every version carries its generation log,
// resolved in one batch.
func (h *ArtifactHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	expand := r.URL.Query().Get("expand")
	if expand != "" && expand != "generation_log" {
		handleError(h.log, w, r, domain.NewValidationError("expand", "unsupported value"))
		return
	}

	versions, err := h.svc.GetHistory(r.Context(), clientID, domain.ArtifactKind(r.PathValue("kind")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := mapList(versions, toArtifactVersionResponse)
	if expand == "generation_log" {
		if err := expandGenerationLogs(r.Context(), versions, resp.Items); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func expandGenerationLogs(ctx context.Context, versions []domain.ArtifactVersion, items []artifactVersionResponse) error {
	var ids []uuid.UUID
	for _, v := range versions {
		if v.GenerationLogID != nil {
			ids = append(ids, *v.GenerationLogID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	logs, err := dataloader.FromContext(ctx).LoadGenerationLogs(ctx, ids)
	if err != nil {
		return err
	}

	for i, v := range versions {
		if v.GenerationLogID == nil {
			continue
		}
		log := logs[*v.GenerationLogID]
		items[i].GenerationLog = toGenerationLogResponse(log)
		items[i].LogDeleted = log == nil
	}
	return nil
}
