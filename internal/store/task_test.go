package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/store"
)

var _ = Describe("TaskStore", func() {
	var (
		mock  pgxmock.PgxPoolIface
		tasks store.TaskStore
		ctx   context.Context
	)

	const (
		taskID      = int64(40)
		projectID   = int64(30)
		workspaceID = int64(20)
	)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		var err error
		mock, err = pgxmock.NewPool()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
		tasks = store.NewTaskStore(mock)
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.Close()
	})

	Describe("Create", func() {
		// The statement allocates the position itself: current lane
		// maximum plus 1000, with the lane scoped to workspace and
		// status.
		const insertPattern = `(?s)INSERT INTO tasks.*` +
			`SELECT COALESCE\(MAX\(position\), 0\) \+ 1000\s+FROM tasks\s+` +
			`WHERE workspace_id = \$7 AND status = \$4.*` +
			`RETURNING position, created_at, updated_at`

		task := func() *model.Task {
			return &model.Task{
				ID:          taskID,
				Name:        "Ship the board",
				Status:      model.TaskStatusTodo,
				ProjectID:   projectID,
				WorkspaceID: workspaceID,
			}
		}

		expectInsert := func() *pgxmock.ExpectedQuery {
			return mock.ExpectQuery(insertPattern).
				WithArgs(taskID, "Ship the board", pgxmock.AnyArg(), model.TaskStatusTodo,
					pgxmock.AnyArg(), projectID, workspaceID, pgxmock.AnyArg())
		}

		allocatedRow := func(position int) *pgxmock.Rows {
			return pgxmock.NewRows([]string{"position", "created_at", "updated_at"}).
				AddRow(position, now, now)
		}

		It("takes the allocated position from the insert", func() {
			expectInsert().WillReturnRows(allocatedRow(1000))

			t := task()
			Expect(tasks.Create(ctx, t)).To(Succeed())
			Expect(t.Position).To(Equal(1000))
			Expect(t.CreatedAt).To(Equal(now))
		})

		It("retries after losing a lane position to a concurrent insert", func() {
			expectInsert().WillReturnError(&pgconn.PgError{Code: "23505"})
			expectInsert().WillReturnRows(allocatedRow(2000))

			t := task()
			Expect(tasks.Create(ctx, t)).To(Succeed())
			Expect(t.Position).To(Equal(2000))
		})

		It("gives up after repeated lane conflicts", func() {
			for range 3 {
				expectInsert().WillReturnError(&pgconn.PgError{Code: "23505"})
			}

			err := tasks.Create(ctx, task())
			Expect(err).To(MatchError(ContainSubstring("inserting task")))
		})
	})

	Describe("List", func() {
		columns := []string{
			"id", "name", "description", "status", "position", "due_date",
			"project_id", "workspace_id", "assignee_id", "created_at", "updated_at",
		}

		taskRow := func() *pgxmock.Rows {
			return pgxmock.NewRows(columns).
				AddRow(taskID, "Ship the board", nil, model.TaskStatusTodo, 1000, nil,
					projectID, workspaceID, nil, now, now)
		}

		It("queries the workspace alone when no filters are set", func() {
			mock.ExpectQuery(`WHERE workspace_id = \$1 ORDER BY created_at DESC`).
				WithArgs(workspaceID).
				WillReturnRows(taskRow())

			got, err := tasks.List(ctx, store.TaskFilter{WorkspaceID: workspaceID})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal(taskID))
			Expect(got[0].Position).To(Equal(1000))
		})

		It("matches every filter as a substring against the column text", func() {
			mock.ExpectQuery(`WHERE workspace_id = \$1`+
				` AND project_id::text ILIKE \$2`+
				` AND status::text ILIKE \$3`+
				` AND name::text ILIKE \$4`+
				` AND assignee_id::text ILIKE \$5`+
				` AND due_date::text ILIKE \$6`+
				` ORDER BY created_at DESC`).
				WithArgs(workspaceID, "%30%", "%todo%", "%board%", "%10%", "%2026%").
				WillReturnRows(taskRow())

			got, err := tasks.List(ctx, store.TaskFilter{
				WorkspaceID: workspaceID,
				ProjectID:   "30",
				Status:      "todo",
				Search:      "board",
				AssigneeID:  "10",
				DueDate:     "2026",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
		})

		It("skips clauses for filters left empty", func() {
			mock.ExpectQuery(`WHERE workspace_id = \$1 AND status::text ILIKE \$2 ORDER BY created_at DESC`).
				WithArgs(workspaceID, "%todo%").
				WillReturnRows(taskRow())

			_, err := tasks.List(ctx, store.TaskFilter{WorkspaceID: workspaceID, Status: "todo"})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
