package authctx

import (
	"context"

	"servifix-backend/internal/domain"
)

type contextKey string

const staffContextKey contextKey = "currentStaff"

// CurrentStaff is the authenticated staff member attached to a request.
type CurrentStaff struct {
	ID    string
	Email string
	Role  domain.StaffRole
}

func WithCurrentStaff(ctx context.Context, staff CurrentStaff) context.Context {
	return context.WithValue(ctx, staffContextKey, staff)
}

func FromContext(ctx context.Context) *CurrentStaff {
	val, ok := ctx.Value(staffContextKey).(CurrentStaff)
	if !ok {
		return nil
	}
	return &val
}

// ActorID returns the staff id for history entries, or "" when the
// request carries no identity.
func ActorID(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.ID
	}
	return ""
}
