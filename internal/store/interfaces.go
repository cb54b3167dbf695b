package store

import (
	"context"
	"time"

	"tasklane.app/server/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type WorkspaceUpdate struct {
	Name     string
	ImageKey *string
}

type WorkspaceStore interface {
	Create(ctx context.Context, ws *model.Workspace) error
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error)
	Update(ctx context.Context, id int64, upd WorkspaceUpdate) error
	UpdateInviteCode(ctx context.Context, id int64, code string) error
	Delete(ctx context.Context, id int64) error
}

type MemberStore interface {
	Create(ctx context.Context, m *model.Member) error
	GetByUserAndWorkspace(ctx context.Context, userID, workspaceID int64) (*model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.MemberWithUser, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	Delete(ctx context.Context, id int64) error
}

type ProjectUpdate struct {
	Name     string
	ImageKey *string
}

type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error)
	Update(ctx context.Context, id int64, upd ProjectUpdate) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// TaskFilter predicates are optional and AND-combined. Every filter,
// including the id fields, matches as a case-insensitive substring of
// the column's text form.
type TaskFilter struct {
	WorkspaceID int64
	ProjectID   string
	Status      string
	Search      string
	AssigneeID  string
	DueDate     string
}

type TaskUpdate struct {
	Name        string
	Description *string
	Status      model.TaskStatus
	Position    *int
	DueDate     *time.Time
	AssigneeID  int64
}

type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, f TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, id int64, upd TaskUpdate) (int64, error)
	Delete(ctx context.Context, id int64) error
}
