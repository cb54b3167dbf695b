package store

import "tasklane.app/server/core/db"

// Stores bundles every store built over the same querier. Constructing
// a second bundle over a pgx.Tx gives the services a transactional view
// with identical behavior.
type Stores struct {
	Users      UserStore
	Workspaces WorkspaceStore
	Members    MemberStore
	Projects   ProjectStore
	Tasks      TaskStore
}

func New(q db.DBTX) *Stores {
	return &Stores{
		Users:      NewUserStore(q),
		Workspaces: NewWorkspaceStore(q),
		Members:    NewMemberStore(q),
		Projects:   NewProjectStore(q),
		Tasks:      NewTaskStore(q),
	}
}
