package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/timeline"
)

type timelineService interface {
	AppendNote(ctx context.Context, input timeline.AppendEventInput) (*domain.CoachingEvent, error)
	List(ctx context.Context, input timeline.ListInput) ([]domain.CoachingEvent, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

// TimelineHandler serves coaching timeline endpoints.
type TimelineHandler struct {
	svc timelineService
	log *slog.Logger
}

// NewTimelineHandler creates a TimelineHandler.
func NewTimelineHandler(svc timelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: logger.With("handler", "timeline")}
}

type appendEventRequest struct {
	EventType         string         `json:"eventType"`
	Area              string         `json:"area"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Source            string         `json:"source"`
	AIGenerationLogID *string        `json:"aiGenerationLogId"`
	RelatedEntityType *string        `json:"relatedEntityType"`
	RelatedEntityID   *string        `json:"relatedEntityId"`
	EventData         map[string]any `json:"eventData"`
}

// Append handles POST /api/clients/{clientID}/timeline.
func (h *TimelineHandler) Append(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathUUID(r, "clientID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req appendEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	logID, err := parseOptionalUUID("aiGenerationLogId", req.AIGenerationLogID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	relatedID, err := parseOptionalUUID("relatedEntityId", req.RelatedEntityID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	source := domain.Source(req.Source)
	if source == "" {
		source = domain.SourceManual
	}

	event, err := h.svc.AppendNote(r.Context(), timeline.AppendEventInput{
		ClientID:          clientID,
		EventType:         domain.EventType(req.EventType),
		Area:              domain.Area(req.Area),
		Title:             req.Title,
		Description:       req.Description,
		Source:            source,
		AIGenerationLogID: logID,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   relatedID,
		EventData:         req.EventData,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// List handles GET /api/clients/{clientID}/timeline.
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
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

	input := timeline.ListInput{ClientID: clientID, Limit: limit}
	if raw := r.URL.Query().Get("area"); raw != "" {
		a := domain.Area(raw)
		input.Area = &a
	}

	events, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(events, toEventResponse))
}

// Delete handles DELETE /api/events/{eventID}.
func (h *TimelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), eventID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
