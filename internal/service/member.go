package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tasklane.app/server/common/id"
	"tasklane.app/server/common/logger"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

var (
	ErrInviteCodeMismatch = errors.New("invite code mismatch")
	ErrAlreadyMember      = errors.New("already a member")
	ErrMemberNotFound     = errors.New("member not found")
	ErrSelfRoleChange     = errors.New("cannot change own role")
	ErrOwnerRoleChange    = errors.New("cannot change the owner's role")
	ErrInvalidRole        = errors.New("invalid role")
)

type MemberService struct {
	stores *store.Stores
}

func NewMemberService(stores *store.Stores) *MemberService {
	return &MemberService{stores: stores}
}

// Join redeems an invite code. A stale code looks the same as a missing
// workspace to the caller.
func (s *MemberService) Join(ctx context.Context, userID, workspaceID int64, inviteCode string) (*model.Member, error) {
	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteCodeMismatch
		}
		return nil, fmt.Errorf("fetching workspace: %w", err)
	}
	if ws.InviteCode != inviteCode {
		return nil, ErrInviteCodeMismatch
	}

	m := &model.Member{
		ID:          id.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        model.RoleMember,
	}
	if err := s.stores.Members.Create(ctx, m); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("creating membership: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &userID, WorkspaceID: &workspaceID})
	slog.InfoContext(ctx, "user joined workspace")
	return m, nil
}

func (s *MemberService) List(ctx context.Context, actorID, workspaceID int64) ([]model.MemberWithUser, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return nil, err
	}
	members, err := s.stores.Members.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// ChangeRole updates a membership's role. The actor cannot change their
// own role and the owner's admin role is immutable.
func (s *MemberService) ChangeRole(ctx context.Context, actorID, workspaceID, memberID int64, role model.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}

	target, err := s.memberInWorkspace(ctx, memberID, workspaceID)
	if err != nil {
		return err
	}
	if target.UserID == actorID {
		return ErrSelfRoleChange
	}

	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching workspace: %w", err)
	}
	if target.UserID == ws.OwnerID {
		return ErrOwnerRoleChange
	}

	if err := s.stores.Members.UpdateRole(ctx, memberID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("updating role: %w", err)
	}
	return nil
}

func (s *MemberService) Remove(ctx context.Context, actorID, workspaceID, memberID int64) error {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.memberInWorkspace(ctx, memberID, workspaceID); err != nil {
		return err
	}

	if err := s.stores.Members.Delete(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}
	return nil
}

func (s *MemberService) memberInWorkspace(ctx context.Context, memberID, workspaceID int64) (*model.Member, error) {
	m, err := s.stores.Members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("fetching member: %w", err)
	}
	if m.WorkspaceID != workspaceID {
		return nil, ErrMemberNotFound
	}
	return m, nil
}
