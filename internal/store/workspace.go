package store

import (
	"context"
	"fmt"

	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/model"
)

type workspaceStore struct {
	q db.DBTX
}

func NewWorkspaceStore(q db.DBTX) WorkspaceStore {
	return &workspaceStore{q: q}
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	const query = `
		INSERT INTO workspaces (id, name, owner_id, invite_code, image_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := s.q.QueryRow(ctx, query, ws.ID, ws.Name, ws.OwnerID, ws.InviteCode, ws.ImageKey).
		Scan(&ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting workspace: %w", err)
	}
	return nil
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	const query = `
		SELECT id, name, owner_id, invite_code, image_key, created_at, updated_at
		FROM workspaces
		WHERE id = $1`

	var ws model.Workspace
	err := s.q.QueryRow(ctx, query, id).
		Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.InviteCode, &ws.ImageKey, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &ws, nil
}

// ListByUser returns the workspaces the user belongs to, most recent
// membership first.
func (s *workspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	const query = `
		SELECT w.id, w.name, w.owner_id, w.invite_code, w.image_key, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY m.updated_at DESC`

	rows, err := s.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []model.Workspace
	for rows.Next() {
		var ws model.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.OwnerID, &ws.InviteCode, &ws.ImageKey, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

func (s *workspaceStore) Update(ctx context.Context, id int64, upd WorkspaceUpdate) error {
	const query = `
		UPDATE workspaces
		SET name = $2, image_key = $3, updated_at = now()
		WHERE id = $1`

	tag, err := s.q.Exec(ctx, query, id, upd.Name, upd.ImageKey)
	if err != nil {
		return fmt.Errorf("updating workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *workspaceStore) UpdateInviteCode(ctx context.Context, id int64, code string) error {
	const query = `
		UPDATE workspaces
		SET invite_code = $2, updated_at = now()
		WHERE id = $1`

	tag, err := s.q.Exec(ctx, query, id, code)
	if err != nil {
		return fmt.Errorf("updating invite code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *workspaceStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
