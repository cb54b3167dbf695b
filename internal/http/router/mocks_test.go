package router_test

import (
	"context"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

type mockWorkspaceStore struct {
	CreateFunc           func(ctx context.Context, ws *model.Workspace) error
	GetByIDFunc          func(ctx context.Context, id int64) (*model.Workspace, error)
	ListByUserFunc       func(ctx context.Context, userID int64) ([]model.Workspace, error)
	UpdateFunc           func(ctx context.Context, id int64, upd store.WorkspaceUpdate) error
	UpdateInviteCodeFunc func(ctx context.Context, id int64, code string) error
	DeleteFunc           func(ctx context.Context, id int64) error
}

func (m *mockWorkspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	return m.CreateFunc(ctx, ws)
}

func (m *mockWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockWorkspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockWorkspaceStore) Update(ctx context.Context, id int64, upd store.WorkspaceUpdate) error {
	return m.UpdateFunc(ctx, id, upd)
}

func (m *mockWorkspaceStore) UpdateInviteCode(ctx context.Context, id int64, code string) error {
	return m.UpdateInviteCodeFunc(ctx, id, code)
}

func (m *mockWorkspaceStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockMemberStore struct {
	CreateFunc                func(ctx context.Context, mem *model.Member) error
	GetByUserAndWorkspaceFunc func(ctx context.Context, userID, workspaceID int64) (*model.Member, error)
	GetByIDFunc               func(ctx context.Context, id int64) (*model.Member, error)
	ListByWorkspaceFunc       func(ctx context.Context, workspaceID int64) ([]model.MemberWithUser, error)
	UpdateRoleFunc            func(ctx context.Context, id int64, role model.Role) error
	DeleteFunc                func(ctx context.Context, id int64) error
}

func (m *mockMemberStore) Create(ctx context.Context, mem *model.Member) error {
	return m.CreateFunc(ctx, mem)
}

func (m *mockMemberStore) GetByUserAndWorkspace(ctx context.Context, userID, workspaceID int64) (*model.Member, error) {
	return m.GetByUserAndWorkspaceFunc(ctx, userID, workspaceID)
}

func (m *mockMemberStore) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockMemberStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.MemberWithUser, error) {
	return m.ListByWorkspaceFunc(ctx, workspaceID)
}

func (m *mockMemberStore) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	return m.UpdateRoleFunc(ctx, id, role)
}

func (m *mockMemberStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockTaskStore struct {
	CreateFunc  func(ctx context.Context, t *model.Task) error
	GetByIDFunc func(ctx context.Context, id int64) (*model.Task, error)
	ListFunc    func(ctx context.Context, f store.TaskFilter) ([]model.Task, error)
	UpdateFunc  func(ctx context.Context, id int64, upd store.TaskUpdate) (int64, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockTaskStore) Create(ctx context.Context, t *model.Task) error {
	return m.CreateFunc(ctx, t)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTaskStore) List(ctx context.Context, f store.TaskFilter) ([]model.Task, error) {
	return m.ListFunc(ctx, f)
}

func (m *mockTaskStore) Update(ctx context.Context, id int64, upd store.TaskUpdate) (int64, error) {
	return m.UpdateFunc(ctx, id, upd)
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
