package model

import "time"

// Workspace is the top level tenant boundary. Every project, task and
// membership hangs off exactly one workspace.
type Workspace struct {
	ID         int64     `json:"id,string"`
	Name       string    `json:"name"`
	OwnerID    int64     `json:"owner_id,string"`
	InviteCode string    `json:"invite_code"`
	ImageKey   *string   `json:"image_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
