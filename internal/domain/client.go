package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/pkg/ctxutil"
)

// Client is a coached person. Every client is owned by exactly one coach.
type Client struct {
	ID        uuid.UUID
	CoachID   uuid.UUID
	Name      string
	Status    ClientStatus
	CreatedAt time.Time
}

// OwnedBy reports whether the actor may act on the client.
func (c Client) OwnedBy(actor Actor) bool {
	return actor.Role.IsAdmin() || c.CoachID == actor.ID
}

// ProgramTemplate is a coach-authored training program that clients can be
// assigned to.
type ProgramTemplate struct {
	ID          uuid.UUID
	CoachID     uuid.UUID
	Name        string
	Description *string
	Weeks       int
	CreatedAt   time.Time
}

// Actor is the pre-resolved caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}

// ActorFromCtx resolves the caller from the request context.
// A missing user ID yields false; a missing or unknown role defaults to coach.
func ActorFromCtx(ctx context.Context) (Actor, bool) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Actor{}, false
	}
	role := UserRole(ctxutil.RoleFromCtx(ctx))
	if !role.IsValid() {
		role = UserRoleCoach
	}
	return Actor{ID: id, Role: role}, true
}
