package model

import "time"

type Project struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	WorkspaceID int64     `json:"workspace_id,string"`
	ImageKey    *string   `json:"image_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
