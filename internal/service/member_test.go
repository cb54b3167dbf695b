package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/service"
	"tasklane.app/server/internal/store"
)

var _ = Describe("MemberService", func() {
	var (
		workspaces *mockWorkspaceStore
		members    *mockMemberStore
		svc        *service.MemberService
		ctx        context.Context
	)

	const (
		ownerID     = int64(1)
		actorID     = int64(2)
		targetID    = int64(3)
		workspaceID = int64(50)
		memberID    = int64(500)
	)

	BeforeEach(func() {
		ctx = context.Background()
		workspaces = &mockWorkspaceStore{}
		members = &mockMemberStore{}
		svc = service.NewMemberService(&store.Stores{Workspaces: workspaces, Members: members})
	})

	Describe("Join", func() {
		BeforeEach(func() {
			workspaces.GetByIDFunc = func(ctx context.Context, id int64) (*model.Workspace, error) {
				return &model.Workspace{ID: id, OwnerID: ownerID, InviteCode: "123456"}, nil
			}
		})

		It("creates a member role membership for the current code", func() {
			var created *model.Member
			members.CreateFunc = func(ctx context.Context, m *model.Member) error {
				created = m
				return nil
			}

			m, err := svc.Join(ctx, actorID, workspaceID, "123456")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleMember))
			Expect(created.UserID).To(Equal(actorID))
		})

		It("rejects a stale code the same way as a missing workspace", func() {
			_, err := svc.Join(ctx, actorID, workspaceID, "654321")
			Expect(err).To(MatchError(service.ErrInviteCodeMismatch))

			workspaces.GetByIDFunc = func(ctx context.Context, id int64) (*model.Workspace, error) {
				return nil, store.ErrNotFound
			}
			_, err = svc.Join(ctx, actorID, workspaceID, "123456")
			Expect(err).To(MatchError(service.ErrInviteCodeMismatch))
		})

		It("conflicts when the user is already a member", func() {
			members.CreateFunc = func(ctx context.Context, m *model.Member) error {
				return store.ErrDuplicate
			}

			_, err := svc.Join(ctx, actorID, workspaceID, "123456")
			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})
	})

	Describe("ChangeRole", func() {
		asAdmin := func(userID int64) {
			members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
				return &model.Member{UserID: uid, WorkspaceID: wid, Role: model.RoleAdmin}, nil
			}
		}

		BeforeEach(func() {
			workspaces.GetByIDFunc = func(ctx context.Context, id int64) (*model.Workspace, error) {
				return &model.Workspace{ID: id, OwnerID: ownerID}, nil
			}
		})

		It("updates the target member's role", func() {
			asAdmin(actorID)
			members.GetByIDFunc = func(ctx context.Context, id int64) (*model.Member, error) {
				return &model.Member{ID: id, UserID: targetID, WorkspaceID: workspaceID, Role: model.RoleMember}, nil
			}
			var updated model.Role
			members.UpdateRoleFunc = func(ctx context.Context, id int64, role model.Role) error {
				updated = role
				return nil
			}

			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(Equal(model.RoleAdmin))
		})

		It("refuses a self role change regardless of role", func() {
			asAdmin(actorID)
			members.GetByIDFunc = func(ctx context.Context, id int64) (*model.Member, error) {
				return &model.Member{ID: id, UserID: actorID, WorkspaceID: workspaceID, Role: model.RoleAdmin}, nil
			}

			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.RoleMember)
			Expect(err).To(MatchError(service.ErrSelfRoleChange))
		})

		It("refuses to change the owner's role", func() {
			asAdmin(actorID)
			members.GetByIDFunc = func(ctx context.Context, id int64) (*model.Member, error) {
				return &model.Member{ID: id, UserID: ownerID, WorkspaceID: workspaceID, Role: model.RoleAdmin}, nil
			}

			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.RoleMember)
			Expect(err).To(MatchError(service.ErrOwnerRoleChange))
		})

		It("rejects unknown roles before touching the store", func() {
			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.Role("superuser"))
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("hides the membership from non-admin actors", func() {
			members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
				return &model.Member{UserID: uid, WorkspaceID: wid, Role: model.RoleMember}, nil
			}

			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrNoAccess))
		})

		It("treats a member of another workspace as missing", func() {
			asAdmin(actorID)
			members.GetByIDFunc = func(ctx context.Context, id int64) (*model.Member, error) {
				return &model.Member{ID: id, UserID: targetID, WorkspaceID: workspaceID + 1}, nil
			}

			err := svc.ChangeRole(ctx, actorID, workspaceID, memberID, model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrMemberNotFound))
		})
	})

	Describe("Remove", func() {
		It("deletes the membership for an admin actor", func() {
			members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
				return &model.Member{UserID: uid, WorkspaceID: wid, Role: model.RoleAdmin}, nil
			}
			members.GetByIDFunc = func(ctx context.Context, id int64) (*model.Member, error) {
				return &model.Member{ID: id, UserID: targetID, WorkspaceID: workspaceID}, nil
			}
			var deleted int64
			members.DeleteFunc = func(ctx context.Context, id int64) error {
				deleted = id
				return nil
			}

			Expect(svc.Remove(ctx, actorID, workspaceID, memberID)).To(Succeed())
			Expect(deleted).To(Equal(memberID))
		})

		It("denies non-members", func() {
			members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
				return nil, store.ErrNotFound
			}

			err := svc.Remove(ctx, actorID, workspaceID, memberID)
			Expect(err).To(MatchError(service.ErrNoAccess))
		})
	})

	Describe("List", func() {
		It("returns memberships joined with user fields for admins", func() {
			members.GetByUserAndWorkspaceFunc = func(ctx context.Context, uid, wid int64) (*model.Member, error) {
				return &model.Member{Role: model.RoleAdmin}, nil
			}
			members.ListByWorkspaceFunc = func(ctx context.Context, wid int64) ([]model.MemberWithUser, error) {
				return []model.MemberWithUser{{UserName: "Ada", UserEmail: "ada@example.com"}}, nil
			}

			list, err := svc.List(ctx, actorID, workspaceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].UserName).To(Equal("Ada"))
		})
	})
})
