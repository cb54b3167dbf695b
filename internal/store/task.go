package store

import (
	"context"
	"errors"
	"fmt"

	"tasklane.app/server/core/db"
	"tasklane.app/server/internal/model"
)

type taskStore struct {
	q db.DBTX
}

func NewTaskStore(q db.DBTX) TaskStore {
	return &taskStore{q: q}
}

// Two concurrent inserts into the same lane can both read the same
// maximum under read committed. The unique (workspace_id, status,
// position) constraint rejects the loser, which retries with a fresh
// snapshot.
const taskInsertAttempts = 3

// Create allocates the task's position inside the INSERT. An empty
// lane starts at 1000 and each new task lands 1000 past the current
// highest position.
func (s *taskStore) Create(ctx context.Context, t *model.Task) error {
	const query = `
		INSERT INTO tasks (id, name, description, status, position, due_date, project_id, workspace_id, assignee_id)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position), 0) + 1000
			 FROM tasks
			 WHERE workspace_id = $7 AND status = $4),
			$5, $6, $7, $8)
		RETURNING position, created_at, updated_at`

	for attempt := 1; ; attempt++ {
		err := s.q.QueryRow(ctx, query,
			t.ID, t.Name, t.Description, t.Status, t.DueDate, t.ProjectID, t.WorkspaceID, t.AssigneeID).
			Scan(&t.Position, &t.CreatedAt, &t.UpdatedAt)
		if err == nil {
			return nil
		}
		if errors.Is(wrapDuplicate(err), ErrDuplicate) && attempt < taskInsertAttempts {
			continue
		}
		return fmt.Errorf("inserting task: %w", err)
	}
}

func (s *taskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	const query = `
		SELECT id, name, description, status, position, due_date, project_id, workspace_id, assignee_id, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var t model.Task
	err := s.q.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Status, &t.Position, &t.DueDate,
			&t.ProjectID, &t.WorkspaceID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &t, nil
}

// List applies each supplied filter as a case-insensitive substring
// match against the column's text form. That includes the id columns,
// which is a long-standing quirk of the task search contract.
func (s *taskStore) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	query := `
		SELECT id, name, description, status, position, due_date, project_id, workspace_id, assignee_id, created_at, updated_at
		FROM tasks
		WHERE workspace_id = $1`
	args := []any{f.WorkspaceID}

	addLike := func(column, value string) {
		args = append(args, "%"+value+"%")
		query += fmt.Sprintf(" AND %s::text ILIKE $%d", column, len(args))
	}

	if f.ProjectID != "" {
		addLike("project_id", f.ProjectID)
	}
	if f.Status != "" {
		addLike("status", f.Status)
	}
	if f.Search != "" {
		addLike("name", f.Search)
	}
	if f.AssigneeID != "" {
		addLike("assignee_id", f.AssigneeID)
	}
	if f.DueDate != "" {
		addLike("due_date", f.DueDate)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Status, &t.Position, &t.DueDate,
			&t.ProjectID, &t.WorkspaceID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *taskStore) Update(ctx context.Context, id int64, upd TaskUpdate) (int64, error) {
	const query = `
		UPDATE tasks
		SET name = $2, description = $3, status = $4, position = COALESCE($5, position),
		    due_date = $6, assignee_id = $7, updated_at = now()
		WHERE id = $1`

	tag, err := s.q.Exec(ctx, query, id, upd.Name, upd.Description, upd.Status, upd.Position, upd.DueDate, upd.AssigneeID)
	if err != nil {
		return 0, fmt.Errorf("updating task: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *taskStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
