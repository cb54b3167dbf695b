package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"tasklane.app/server/common/id"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/queue"
	"tasklane.app/server/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// MailEnqueuer hands a mail message to the delivery queue. The worker
// process drains it.
type MailEnqueuer interface {
	EnqueueMail(ctx context.Context, msg queue.MailMessage) error
}

type AuthService struct {
	users  store.UserStore
	tokens TokenIssuer
	mail   MailEnqueuer
}

func NewAuthService(users store.UserStore, tokens TokenIssuer, mail MailEnqueuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mail: mail}
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	// Mail delivery is best effort. A queue outage must not block signup.
	if s.mail != nil {
		msg := queue.MailMessage{
			Kind: queue.MailKindWelcome,
			To:   user.Email,
			Name: user.Name,
		}
		if err := s.mail.EnqueueMail(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to enqueue welcome mail", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

// SignIn verifies the credentials and returns a session token. A
// missing user and a wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}
