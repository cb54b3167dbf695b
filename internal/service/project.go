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

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	stores  *store.Stores
	objects ObjectStore
}

func NewProjectService(stores *store.Stores, objects ObjectStore) *ProjectService {
	return &ProjectService{stores: stores, objects: objects}
}

func (s *ProjectService) Create(ctx context.Context, actorID, workspaceID int64, name string, imageKey *string) (*model.Project, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return nil, err
	}

	p := &model.Project{
		ID:          id.New(),
		Name:        name,
		WorkspaceID: workspaceID,
		ImageKey:    imageKey,
	}
	if err := s.stores.Projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID, ProjectID: &p.ID})
	slog.InfoContext(ctx, "project created", "name", p.Name)
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, actorID, workspaceID int64) ([]model.Project, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	projects, err := s.stores.Projects.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// ProjectDetail is a project plus a time-limited display URL for its
// image, when it has one.
type ProjectDetail struct {
	model.Project
	ImageURL string `json:"image_url,omitempty"`
}

func (s *ProjectService) Get(ctx context.Context, actorID, workspaceID, projectID int64) (*ProjectDetail, error) {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}

	p, err := s.projectInWorkspace(ctx, projectID, workspaceID)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: *p}
	if p.ImageKey != nil && s.objects != nil {
		url, err := s.objects.PresignGet(ctx, *p.ImageKey)
		if err != nil {
			slog.WarnContext(ctx, "failed to presign project image", "error", err, "key", *p.ImageKey)
		} else {
			detail.ImageURL = url
		}
	}
	return detail, nil
}

func (s *ProjectService) Update(ctx context.Context, actorID, workspaceID, projectID int64, name string, imageKey *string) error {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}

	p, err := s.projectInWorkspace(ctx, projectID, workspaceID)
	if err != nil {
		return err
	}

	oldImage := p.ImageKey
	affected, err := s.stores.Projects.Update(ctx, projectID, store.ProjectUpdate{Name: name, ImageKey: imageKey})
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	if oldImage != nil && !equalKeys(oldImage, imageKey) && s.objects != nil {
		if err := s.objects.Delete(ctx, *oldImage); err != nil {
			slog.WarnContext(ctx, "failed to delete replaced project image", "error", err, "key", *oldImage)
		}
	}
	return nil
}

// Delete removes the project and, through cascade, its tasks.
func (s *ProjectService) Delete(ctx context.Context, actorID, workspaceID, projectID int64) error {
	if _, err := requireRole(ctx, s.stores.Members, actorID, workspaceID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.projectInWorkspace(ctx, projectID, workspaceID); err != nil {
		return err
	}

	if err := s.stores.Projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (s *ProjectService) projectInWorkspace(ctx context.Context, projectID, workspaceID int64) (*model.Project, error) {
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
