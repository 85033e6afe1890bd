package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/pkg/ctxutil"
)

func TestClient_OwnedBy(t *testing.T) {
	t.Parallel()

	coachID := uuid.New()
	c := Client{ID: uuid.New(), CoachID: coachID}

	if !c.OwnedBy(Actor{ID: coachID, Role: UserRoleCoach}) {
		t.Error("owner should own client")
	}
	if c.OwnedBy(Actor{ID: uuid.New(), Role: UserRoleCoach}) {
		t.Error("other coach should not own client")
	}
	if !c.OwnedBy(Actor{ID: uuid.New(), Role: UserRoleAdmin}) {
		t.Error("admin should bypass ownership")
	}
}

func TestActorFromCtx(t *testing.T) {
	t.Parallel()

	if _, ok := ActorFromCtx(context.Background()); ok {
		t.Fatal("expected no actor in empty context")
	}

	id := uuid.New()
	actor, ok := ActorFromCtx(ctxutil.WithActor(context.Background(), id, "admin"))
	if !ok || actor.ID != id || actor.Role != UserRoleAdmin {
		t.Errorf("got %+v, %v", actor, ok)
	}

	actor, ok = ActorFromCtx(ctxutil.WithUserID(context.Background(), id))
	if !ok || actor.Role != UserRoleCoach {
		t.Errorf("missing role should default to coach, got %+v", actor)
	}
}
