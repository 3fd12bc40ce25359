package usecase

import (
	"context"
	"errors"

	"healthcare-portal/internal/delivery/http/middleware"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("user not found in context")

// actor is the authenticated caller as resolved by the auth middleware.
type actor struct {
	ID     uuid.UUID
	RoleID int
}

func actorFromContext(ctx context.Context) (actor, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return actor{}, ErrUnauthenticated
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	return actor{ID: userID, RoleID: roleID}, nil
}
