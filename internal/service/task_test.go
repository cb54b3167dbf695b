package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/service"
	"tasklane.app/server/internal/store"
)

var _ = Describe("TaskService", func() {
	var (
		members  *mockMemberStore
		projects *mockProjectStore
		tasks    *mockTaskStore
		svc      *service.TaskService
		ctx      context.Context
	)

	const (
		actorID     = int64(10)
		workspaceID = int64(20)
		projectID   = int64(30)
		taskID      = int64(40)
	)

	input := service.TaskInput{
		Name:       "Ship the board",
		Status:     model.TaskStatusTodo,
		DueDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AssigneeID: actorID,
	}

	asRole := func(role model.Role) {
		members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
			return &model.Member{UserID: uid, WorkspaceID: wid, Role: role}, nil
		}
	}

	projectInWorkspace := func() {
		projects.GetByIDFunc = func(ctx context.Context, id int64) (*model.Project, error) {
			return &model.Project{ID: id, WorkspaceID: workspaceID}, nil
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		members = &mockMemberStore{}
		projects = &mockProjectStore{}
		tasks = &mockTaskStore{}
		svc = service.NewTaskService(&store.Stores{Members: members, Projects: projects, Tasks: tasks})
	})

	Describe("Create", func() {
		It("creates the task for an admin when the project belongs to the workspace", func() {
			asRole(model.RoleAdmin)
			projectInWorkspace()
			tasks.CreateFunc = func(ctx context.Context, t *model.Task) error {
				t.Position = 1000
				return nil
			}

			t, err := svc.Create(ctx, actorID, workspaceID, projectID, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Position).To(Equal(1000))
			Expect(t.WorkspaceID).To(Equal(workspaceID))
			Expect(t.ProjectID).To(Equal(projectID))
		})

		It("rejects an unknown status", func() {
			bad := input
			bad.Status = model.TaskStatus("shipped")

			_, err := svc.Create(ctx, actorID, workspaceID, projectID, bad)
			Expect(err).To(MatchError(service.ErrInvalidStatus))
		})

		It("hides a project from another workspace", func() {
			asRole(model.RoleAdmin)
			projects.GetByIDFunc = func(ctx context.Context, id int64) (*model.Project, error) {
				return &model.Project{ID: id, WorkspaceID: workspaceID + 1}, nil
			}

			_, err := svc.Create(ctx, actorID, workspaceID, projectID, input)
			Expect(err).To(MatchError(service.ErrProjectNotFound))
		})

		It("denies plain members", func() {
			asRole(model.RoleMember)

			_, err := svc.Create(ctx, actorID, workspaceID, projectID, input)
			Expect(err).To(MatchError(service.ErrNoAccess))
		})
	})

	Describe("List", func() {
		It("passes the filter through for any member", func() {
			asRole(model.RoleMember)
			var got store.TaskFilter
			tasks.ListFunc = func(ctx context.Context, f store.TaskFilter) ([]model.Task, error) {
				got = f
				return []model.Task{{ID: taskID}}, nil
			}

			filter := store.TaskFilter{WorkspaceID: workspaceID, Status: "todo", Search: "board"}
			list, err := svc.List(ctx, actorID, filter)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(got).To(Equal(filter))
		})
	})

	Describe("Get", func() {
		It("requires both path ids to match the task", func() {
			asRole(model.RoleMember)
			tasks.GetByIDFunc = func(ctx context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, WorkspaceID: workspaceID, ProjectID: projectID + 1}, nil
			}

			_, err := svc.Get(ctx, actorID, workspaceID, projectID, taskID)
			Expect(err).To(MatchError(service.ErrTaskNotFound))
		})
	})

	Describe("Update", func() {
		It("updates after the full existence chain passes", func() {
			asRole(model.RoleAdmin)
			projectInWorkspace()
			tasks.GetByIDFunc = func(ctx context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, WorkspaceID: workspaceID, ProjectID: projectID}, nil
			}
			tasks.UpdateFunc = func(ctx context.Context, id int64, upd store.TaskUpdate) (int64, error) {
				Expect(upd.Status).To(Equal(model.TaskStatusTodo))
				return 1, nil
			}

			Expect(svc.Update(ctx, actorID, workspaceID, projectID, taskID, input)).To(Succeed())
		})

		It("passes an explicit position through for board reordering", func() {
			asRole(model.RoleAdmin)
			projectInWorkspace()
			tasks.GetByIDFunc = func(ctx context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, WorkspaceID: workspaceID, ProjectID: projectID}, nil
			}
			var got *int
			tasks.UpdateFunc = func(ctx context.Context, id int64, upd store.TaskUpdate) (int64, error) {
				got = upd.Position
				return 1, nil
			}

			moved := input
			pos := 1500
			moved.Position = &pos
			Expect(svc.Update(ctx, actorID, workspaceID, projectID, taskID, moved)).To(Succeed())
			Expect(got).To(HaveValue(Equal(1500)))
		})

		It("reports not found when the row vanished", func() {
			asRole(model.RoleAdmin)
			projectInWorkspace()
			tasks.GetByIDFunc = func(ctx context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, WorkspaceID: workspaceID, ProjectID: projectID}, nil
			}
			tasks.UpdateFunc = func(ctx context.Context, id int64, upd store.TaskUpdate) (int64, error) {
				return 0, nil
			}

			err := svc.Update(ctx, actorID, workspaceID, projectID, taskID, input)
			Expect(err).To(MatchError(service.ErrTaskNotFound))
		})
	})

	Describe("Delete", func() {
		It("deletes a task in scope for an admin", func() {
			asRole(model.RoleAdmin)
			tasks.GetByIDFunc = func(ctx context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, WorkspaceID: workspaceID, ProjectID: projectID}, nil
			}
			tasks.DeleteFunc = func(ctx context.Context, id int64) error { return nil }

			Expect(svc.Delete(ctx, actorID, workspaceID, projectID, taskID)).To(Succeed())
		})
	})
})
