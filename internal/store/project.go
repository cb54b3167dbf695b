package store

import (
	"context"
	"fmt"

	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/model"
)

type projectStore struct {
	q db.DBTX
}

func NewProjectStore(q db.DBTX) ProjectStore {
	return &projectStore{q: q}
}

func (s *projectStore) Create(ctx context.Context, p *model.Project) error {
	const query = `
		INSERT INTO projects (id, name, workspace_id, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := s.q.QueryRow(ctx, query, p.ID, p.Name, p.WorkspaceID, p.ImageKey).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	const query = `
		SELECT id, name, workspace_id, image_key, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var p model.Project
	err := s.q.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.WorkspaceID, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (s *projectStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	const query = `
		SELECT id, name, workspace_id, image_key, created_at, updated_at
		FROM projects
		WHERE workspace_id = $1
		ORDER BY updated_at DESC`

	rows, err := s.q.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.WorkspaceID, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *projectStore) Update(ctx context.Context, id int64, upd ProjectUpdate) (int64, error) {
	const query = `
		UPDATE projects
		SET name = $2, image_key = $3, updated_at = now()
		WHERE id = $1`

	tag, err := s.q.Exec(ctx, query, id, upd.Name, upd.ImageKey)
	if err != nil {
		return 0, fmt.Errorf("updating project: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
