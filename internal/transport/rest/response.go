package rest

import (
	"time"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type clientResponse struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coachId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID.String(),
		CoachID:   c.CoachID.String(),
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

type programResponse struct {
	ID          string    `json:"id"`
	CoachID     string    `json:"coachId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Weeks       int       `json:"weeks"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProgramResponse(p *domain.ProgramTemplate) programResponse {
	return programResponse{
		ID:          p.ID.String(),
		CoachID:     p.CoachID.String(),
		Name:        p.Name,
		Description: p.Description,
		Weeks:       p.Weeks,
		CreatedAt:   p.CreatedAt,
	}
}

type generationLogResponse struct {
	ID             string                  `json:"id"`
	ClientID       string                  `json:"clientId"`
	CoachID        string                  `json:"coachId"`
	GenerationType string                  `json:"generationType"`
	Result         domain.GenerationResult `json:"result"`
	Model          string                  `json:"model"`
	TokensUsed     int                     `json:"tokensUsed"`
	RAGUsed        bool                    `json:"ragUsed"`
	CreatedAt      time.Time               `json:"createdAt"`
}

func toGenerationLogResponse(l *domain.GenerationLog) *generationLogResponse {
	if l == nil {
		return nil
	}
	return &generationLogResponse{
		ID:             l.ID.String(),
		ClientID:       l.ClientID.String(),
		CoachID:        l.CoachID.String(),
		GenerationType: string(l.GenerationType),
		Result:         l.Result,
		Model:          l.Model,
		TokensUsed:     l.TokensUsed,
		RAGUsed:        l.RAGUsed,
		CreatedAt:      l.CreatedAt,
	}
}

type artifactVersionResponse struct {
	ID              string                 `json:"id"`
	ClientID        string                 `json:"clientId"`
	Kind            string                 `json:"kind"`
	Seq             int                    `json:"seq"`
	Values          domain.ArtifactValues  `json:"values"`
	PreviousValues  domain.ArtifactValues  `json:"previousValues"`
	Source          string                 `json:"source"`
	Rationale       *string                `json:"rationale"`
	GenerationLogID *string                `json:"generationLogId"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	GenerationLog   *generationLogResponse `json:"generationLog,omitempty"`
	LogDeleted      bool                   `json:"generationLogDeleted,omitempty"`
}

func toArtifactVersionResponse(v *domain.ArtifactVersion) artifactVersionResponse {
	resp := artifactVersionResponse{
		ID:             v.ID.String(),
		ClientID:       v.ClientID.String(),
		Kind:           string(v.Kind),
		Seq:            v.Seq,
		Values:         v.Values,
		PreviousValues: v.PreviousValues,
		Source:         string(v.Source),
		Rationale:      v.Rationale,
		CreatedAt:      v.CreatedAt,
		CreatedBy:      v.CreatedBy.String(),
	}
	if v.GenerationLogID != nil {
		s := v.GenerationLogID.String()
		resp.GenerationLogID = &s
	}
	return resp
}

func toCurrentArtifactResponse(c *domain.CurrentArtifact) artifactVersionResponse {
	resp := toArtifactVersionResponse(&c.Version)
	resp.GenerationLog = toGenerationLogResponse(c.GenerationLog)
	resp.LogDeleted = c.LogDeleted
	return resp
}

type eventResponse struct {
	ID                string         `json:"id"`
	ClientID          string         `json:"clientId"`
	CoachID           string         `json:"coachId"`
	EventType         string         `json:"eventType"`
	Area              string         `json:"area"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	Source            string         `json:"source"`
	AIGenerationLogID *string        `json:"aiGenerationLogId,omitempty"`
	RelatedEntityType *string        `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *string        `json:"relatedEntityId,omitempty"`
	EventData         map[string]any `json:"eventData,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

func toEventResponse(e *domain.CoachingEvent) eventResponse {
	resp := eventResponse{
		ID:                e.ID.String(),
		ClientID:          e.ClientID.String(),
		CoachID:           e.CoachID.String(),
		EventType:         string(e.EventType),
		Area:              string(e.Area),
		Title:             e.Title,
		Description:       e.Description,
		Source:            string(e.Source),
		RelatedEntityType: e.RelatedEntityType,
		EventData:         e.EventData,
		CreatedAt:         e.CreatedAt,
	}
	if e.AIGenerationLogID != nil {
		s := e.AIGenerationLogID.String()
		resp.AIGenerationLogID = &s
	}
	if e.RelatedEntityID != nil {
		s := e.RelatedEntityID.String()
		resp.RelatedEntityID = &s
	}
	return resp
}

// listResponse wraps collection responses.
type listResponse[T any] struct {
	Items []T `json:"items"`
}

func mapList[S, T any](src []S, fn func(*S) T) listResponse[T] {
	items := make([]T, len(src))
	for i := range src {
		items[i] = fn(&src[i])
	}
	return listResponse[T]{Items: items}
}
