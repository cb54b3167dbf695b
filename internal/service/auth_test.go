package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/queue"
	"tasklane.app/server/internal/service"
	"tasklane.app/server/internal/store"
)

var _ = Describe("AuthService", func() {
	var (
		users  *mockUserStore
		tokens *mockTokenIssuer
		mail   *mockMailEnqueuer
		svc    *service.AuthService
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		tokens = &mockTokenIssuer{}
		mail = &mockMailEnqueuer{
			EnqueueMailFunc: func(ctx context.Context, msg queue.MailMessage) error { return nil },
		}
		svc = service.NewAuthService(users, tokens, mail)
	})

	Describe("SignUp", func() {
		It("stores a bcrypt hash, never the raw password", func() {
			var created *model.User
			users.CreateFunc = func(ctx context.Context, u *model.User) error {
				created = u
				return nil
			}

			_, err := svc.SignUp(ctx, "Ada", "ada@example.com", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.PasswordHash).NotTo(Equal("hunter2hunter2"))
			Expect(bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2"))).To(Succeed())
		})

		It("maps a duplicate email onto ErrEmailTaken", func() {
			users.CreateFunc = func(ctx context.Context, u *model.User) error {
				return store.ErrDuplicate
			}

			_, err := svc.SignUp(ctx, "Ada", "ada@example.com", "hunter2hunter2")
			Expect(err).To(MatchError(service.ErrEmailTaken))
		})

		It("enqueues a welcome mail for the new user", func() {
			users.CreateFunc = func(ctx context.Context, u *model.User) error { return nil }
			var enqueued queue.MailMessage
			mail.EnqueueMailFunc = func(ctx context.Context, msg queue.MailMessage) error {
				enqueued = msg
				return nil
			}

			_, err := svc.SignUp(ctx, "Ada", "ada@example.com", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(enqueued.Kind).To(Equal(queue.MailKindWelcome))
			Expect(enqueued.To).To(Equal("ada@example.com"))
		})

		It("succeeds even when the queue is down", func() {
			users.CreateFunc = func(ctx context.Context, u *model.User) error { return nil }
			mail.EnqueueMailFunc = func(ctx context.Context, msg queue.MailMessage) error {
				return errors.New("redis unavailable")
			}

			_, err := svc.SignUp(ctx, "Ada", "ada@example.com", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("SignIn", func() {
		hash := func(pw string) string {
			h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			return string(h)
		}

		It("returns a token for valid credentials", func() {
			users.GetByEmailFunc = func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{ID: 7, Email: email, PasswordHash: hash("hunter2hunter2")}, nil
			}
			tokens.IssueFunc = func(userID int64) (string, error) {
				Expect(userID).To(Equal(int64(7)))
				return "token-7", nil
			}

			token, user, err := svc.SignIn(ctx, "ada@example.com", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("token-7"))
			Expect(user.ID).To(Equal(int64(7)))
		})

		It("returns the same error for a wrong password and an unknown user", func() {
			users.GetByEmailFunc = func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{PasswordHash: hash("correct-password")}, nil
			}
			_, _, err := svc.SignIn(ctx, "ada@example.com", "wrong")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))

			users.GetByEmailFunc = func(ctx context.Context, email string) (*model.User, error) {
				return nil, store.ErrNotFound
			}
			_, _, err = svc.SignIn(ctx, "nobody@example.com", "whatever")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})
	})

	Describe("CurrentUser", func() {
		It("maps a missing row onto ErrUserNotFound", func() {
			users.GetByIDFunc = func(ctx context.Context, id int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.CurrentUser(ctx, 7)
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})
})
