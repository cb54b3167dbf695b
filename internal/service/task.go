package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tasklane.app/server/common/id"
	"tasklane.app/server/common/logger"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

type TaskService struct {
	stores *store.Stores
}

func NewTaskService(stores *store.Stores) *TaskService {
	return &TaskService{stores: stores}
}

// TaskInput carries the writable task fields. Position, when set on an
// update, moves the task within its lane; creates always allocate a
// fresh position.
type TaskInput struct {
	Name        string
	Description *string
	Status      model.TaskStatus
	Position    *int
	DueDate     time.Time
	AssigneeID  int64
}

func (s *TaskService) Create(ctx context.Context, actorID, workspaceID, projectID int64, in TaskInput) (*model.Task, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.projectInWorkspace(ctx, projectID, workspaceID); err != nil {
		return nil, err
	}

	due := in.DueDate
	t := &model.Task{
		ID:          id.New(),
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     &due,
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		AssigneeID:  &in.AssigneeID,
	}
	if err := s.stores.Tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID, ProjectID: &projectID, TaskID: &t.ID})
	slog.InfoContext(ctx, "task created", "status", t.Status, "position", t.Position)
	return t, nil
}

func (s *TaskService) List(ctx context.Context, actorID int64, f store.TaskFilter) ([]model.Task, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, f.WorkspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	tasks, err := s.stores.Tasks.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, actorID, workspaceID, projectID, taskID int64) (*model.Task, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.taskInScope(ctx, taskID, workspaceID, projectID)
}

func (s *TaskService) Update(ctx context.Context, actorID, workspaceID, projectID, taskID int64, in TaskInput) error {
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.projectInWorkspace(ctx, projectID, workspaceID); err != nil {
		return err
	}
	if _, err := s.taskInScope(ctx, taskID, workspaceID, projectID); err != nil {
		return err
	}

	due := in.DueDate
	affected, err := s.stores.Tasks.Update(ctx, taskID, store.TaskUpdate{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Position:    in.Position,
		DueDate:     &due,
		AssigneeID:  in.AssigneeID,
	})
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, workspaceID, projectID, taskID int64) error {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.taskInScope(ctx, taskID, workspaceID, projectID); err != nil {
		return err
	}

	if err := s.stores.Tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// taskInScope enforces that the task belongs to both path segments. A
// task reachable under the wrong project or workspace does not exist as
// far as the caller is concerned.
func (s *TaskService) taskInScope(ctx context.Context, taskID, workspaceID, projectID int64) (*model.Task, error) {
	t, err := s.stores.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	if t.WorkspaceID != workspaceID || t.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskService) projectInWorkspace(ctx context.Context, projectID, workspaceID int64) (*model.Project, error) {
	p, err := s.stores.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	if p.WorkspaceID != workspaceID {
		return nil, ErrProjectNotFound
	}
	return p, nil
}
