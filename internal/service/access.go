package service

import (
	"context"
	"errors"
	"fmt"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

// ErrNoAccess is returned when the caller lacks the required role in a
// workspace. Handlers translate it to a not-found response so the API
// never confirms the existence of entities the caller cannot see.
var ErrNoAccess = errors.New("no access to workspace")

// requireRole is the single authorization predicate for every
// workspace-scoped operation. A missing membership and an insufficient
// role are indistinguishable to the caller.
func requireRole(ctx context.Context, members store.MemberStore, userID, workspaceID int64, min model.Role) (*model.Member, error) {
	m, err := members.GetByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoAccess
		}
		return nil, fmt.Errorf("fetching membership: %w", err)
	}
	if min == model.RoleAdmin && m.Role != model.RoleAdmin {
		return nil, ErrNoAccess
	}
	return m, nil
}
