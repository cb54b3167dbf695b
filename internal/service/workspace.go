package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"tasklane.app/server/common/id"
	"tasklane.app/server/common/logger"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNothingToUpdate   = errors.New("nothing to update")
)

type WorkspaceService struct {
	stores  *store.Stores
	tx      TxRunner
	objects ObjectStore
}

func NewWorkspaceService(stores *store.Stores, tx TxRunner, objects ObjectStore) *WorkspaceService {
	return &WorkspaceService{stores: stores, tx: tx, objects: objects}
}

// newInviteCode returns a six digit code. Collisions across workspaces
// are tolerated because the code is only ever checked against its own
// workspace.
func newInviteCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// Create inserts the workspace and the owner's admin membership as one
// transaction. A workspace never exists without its owner membership.
func (s *WorkspaceService) Create(ctx context.Context, ownerID int64, name string, imageKey *string) (*model.Workspace, error) {
	ws := &model.Workspace{
		ID:         id.New(),
		Name:       name,
		OwnerID:    ownerID,
		InviteCode: newInviteCode(),
		ImageKey:   imageKey,
	}

	err := s.tx.RunInTx(ctx, func(txStores *store.Stores) error {
		if err := txStores.Workspaces.Create(ctx, ws); err != nil {
			return err
		}
		owner := &model.Member{
			ID:          id.New(),
			UserID:      ownerID,
			WorkspaceID: ws.ID,
			Role:        model.RoleAdmin,
		}
		return txStores.Members.Create(ctx, owner)
	})
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &ws.ID})
	slog.InfoContext(ctx, "workspace created", "name", ws.Name)
	return ws, nil
}

func (s *WorkspaceService) List(ctx context.Context, userID int64) ([]model.Workspace, error) {
	workspaces, err := s.stores.Workspaces.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return workspaces, nil
}

// WorkspaceDetail is a workspace plus a time-limited display URL for
// its image, when it has one.
type WorkspaceDetail struct {
	model.Workspace
	ImageURL string `json:"image_url,omitempty"`
}

func (s *WorkspaceService) Get(ctx context.Context, userID, workspaceID int64) (*WorkspaceDetail, error) {
	if _, err := requireRole(ctx, s.stores.Members, userID, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("fetching workspace: %w", err)
	}

	detail := &WorkspaceDetail{Workspace: *ws}
	if ws.ImageKey != nil && s.objects != nil {
		url, err := s.objects.PresignGet(ctx, *ws.ImageKey)
		if err != nil {
			slog.WarnContext(ctx, "failed to presign workspace image", "error", err, "key", *ws.ImageKey)
		} else {
			detail.ImageURL = url
		}
	}
	return detail, nil
}

// Update rejects a no-op edit. When the image changes, the previous
// object is removed from the bucket on a best effort basis after the
// row is updated.
func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID int64, name string, imageKey *string) (*model.Workspace, error) {
	if _, err := requireRole(ctx, s.stores.Members, userID, workspaceID, model.RoleAdmin); err != nil {
		return nil, err
	}

	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("fetching workspace: %w", err)
	}

	if ws.Name == name && equalKeys(ws.ImageKey, imageKey) {
		return nil, ErrNothingToUpdate
	}

	oldImage := ws.ImageKey
	if err := s.stores.Workspaces.Update(ctx, workspaceID, store.WorkspaceUpdate{Name: name, ImageKey: imageKey}); err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	if oldImage != nil && !equalKeys(oldImage, imageKey) && s.objects != nil {
		if err := s.objects.Delete(ctx, *oldImage); err != nil {
			slog.WarnContext(ctx, "failed to delete replaced workspace image", "error", err, "key", *oldImage)
		}
	}

	ws.Name = name
	ws.ImageKey = imageKey
	return ws, nil
}

// Delete is restricted to the workspace owner, not merely any admin.
// Memberships, projects and tasks go with it via cascade.
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID int64) error {
	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("fetching workspace: %w", err)
	}
	if ws.OwnerID != userID {
		return ErrNoAccess
	}

	if err := s.stores.Workspaces.Delete(ctx, workspaceID); err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})
	slog.InfoContext(ctx, "workspace deleted")
	return nil
}

// ResetInviteCode invalidates the current code immediately.
func (s *WorkspaceService) ResetInviteCode(ctx context.Context, userID, workspaceID int64) (string, error) {
	if _, err := requireRole(ctx, s.stores.Members, userID, workspaceID, model.RoleAdmin); err != nil {
		return "", err
	}

	code := newInviteCode()
	if err := s.stores.Workspaces.UpdateInviteCode(ctx, workspaceID, code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrWorkspaceNotFound
		}
		return "", fmt.Errorf("resetting invite code: %w", err)
	}
	return code, nil
}

// WorkspaceInvitePreview carries the fields the join page may show to a
// user who is not yet a member.
type WorkspaceInvitePreview struct {
	ID            int64   `json:"id,string"`
	Name          string  `json:"name"`
	ImageKey      *string `json:"image_key,omitempty"`
	AlreadyMember bool    `json:"already_member"`
}

// GetForInvite returns display fields for the join page without
// exposing membership data to non-members. A wrong code looks the same
// as a missing workspace.
func (s *WorkspaceService) GetForInvite(ctx context.Context, userID, workspaceID int64, inviteCode string) (*WorkspaceInvitePreview, error) {
	ws, err := s.stores.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("fetching workspace: %w", err)
	}
	if ws.InviteCode != inviteCode {
		return nil, ErrWorkspaceNotFound
	}

	alreadyMember := true
	if _, err := s.stores.Members.GetByUserAndWorkspace(ctx, userID, workspaceID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("fetching membership: %w", err)
		}
		alreadyMember = false
	}

	return &WorkspaceInvitePreview{
		ID:            ws.ID,
		Name:          ws.Name,
		ImageKey:      ws.ImageKey,
		AlreadyMember: alreadyMember,
	}, nil
}

func equalKeys(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
