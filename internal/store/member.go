package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/model"
)

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as joining a workspace twice or reusing an email address.
var ErrDuplicate = errors.New("duplicate row")

func wrapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

type memberStore struct {
	q db.DBTX
}

func NewMemberStore(q db.DBTX) MemberStore {
	return &memberStore{q: q}
}

func (s *memberStore) Create(ctx context.Context, m *model.Member) error {
	const query = `
		INSERT INTO workspace_members (id, user_id, workspace_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := s.q.QueryRow(ctx, query, m.ID, m.UserID, m.WorkspaceID, m.Role).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if dup := wrapDuplicate(err); errors.Is(dup, ErrDuplicate) {
			return dup
		}
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (s *memberStore) GetByUserAndWorkspace(ctx context.Context, userID, workspaceID int64) (*model.Member, error) {
	const query = `
		SELECT id, user_id, workspace_id, role, created_at, updated_at
		FROM workspace_members
		WHERE user_id = $1 AND workspace_id = $2`

	var m model.Member
	err := s.q.QueryRow(ctx, query, userID, workspaceID).
		Scan(&m.ID, &m.UserID, &m.WorkspaceID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &m, nil
}

func (s *memberStore) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	const query = `
		SELECT id, user_id, workspace_id, role, created_at, updated_at
		FROM workspace_members
		WHERE id = $1`

	var m model.Member
	err := s.q.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.UserID, &m.WorkspaceID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &m, nil
}

func (s *memberStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.MemberWithUser, error) {
	const query = `
		SELECT m.id, m.user_id, m.workspace_id, m.role, m.created_at, m.updated_at,
		       u.name, u.email
		FROM workspace_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY m.updated_at DESC`

	rows, err := s.q.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []model.MemberWithUser
	for rows.Next() {
		var m model.MemberWithUser
		if err := rows.Scan(&m.ID, &m.UserID, &m.WorkspaceID, &m.Role, &m.CreatedAt, &m.UpdatedAt, &m.UserName, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *memberStore) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	const query = `
		UPDATE workspace_members
		SET role = $2, updated_at = now()
		WHERE id = $1`

	tag, err := s.q.Exec(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("updating member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *memberStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM workspace_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
