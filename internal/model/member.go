package model

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type Member struct {
	ID          int64     `json:"id,string"`
	UserID      int64     `json:"user_id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemberWithUser carries the joined user columns the member list needs.
type MemberWithUser struct {
	Member
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
