package service

import (
	"time"

	"tasklane.app/server/internal/store"
)

type Services struct {
	Auth       *AuthService
	Workspaces *WorkspaceService
	Members    *MemberService
	Projects   *ProjectService
	Tasks      *TaskService
	Storage    *StorageService
	Tokens     TokenIssuer
}

type Deps struct {
	Stores    *store.Stores
	Tx        TxRunner
	Objects   ObjectStore
	Mail      MailEnqueuer
	JWTSecret string
	TokenTTL  time.Duration
}

func New(d Deps) *Services {
	tokens := NewJWTIssuer(d.JWTSecret, d.TokenTTL)
	return &Services{
		Auth:       NewAuthService(d.Stores.Users, tokens, d.Mail),
		Workspaces: NewWorkspaceService(d.Stores, d.Tx, d.Objects),
		Members:    NewMemberService(d.Stores),
		Projects:   NewProjectService(d.Stores, d.Objects),
		Tasks:      NewTaskService(d.Stores),
		Storage:    NewStorageService(d.Objects),
		Tokens:     tokens,
	}
}
