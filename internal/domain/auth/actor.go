package auth

import "context"

// Actor is the authenticated caller of an operation. Admins may have no
// employee record; EmployeeID is empty for them.
type Actor struct {
	UserID     string
	EmployeeID string
	IsAdmin    bool
}

// IsEmployee reports whether the actor acts on behalf of an employee record.
func (a Actor) IsEmployee() bool {
	return a.EmployeeID != ""
}

// CanAccessEmployee reports whether the actor may act on resources owned by
// employeeID.
func (a Actor) CanAccessEmployee(employeeID string) bool {
	return a.IsAdmin || (a.EmployeeID != "" && a.EmployeeID == employeeID)
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
