package services_test

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sbilibin2017/clima-dashboard/internal/jwt"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers is an in-memory credential store enforcing unique usernames and emails.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[int64]*models.User{}}
}

func (s *memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryUsers) GetByIDAndEmail(ctx context.Context, id int64, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.Email != email {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUsers) Save(ctx context.Context, nu models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == nu.Username || u.Email == nu.Email {
			return nil, &models.DuplicateError{Message: "duplicate key value violates unique constraint"}
		}
	}
	s.nextID++
	u := &models.User{ID: s.nextID, Username: nu.Username, Email: nu.Email, PasswordHash: nu.PasswordHash}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *memoryUsers) UpdatePassword(ctx context.Context, id int64, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.Email != email {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

type memorySessions struct{ saved int }

func (s *memorySessions) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.saved++
	return nil
}

type outbox struct{ bodies []string }

func (o *outbox) Send(ctx context.Context, to, subject, body string) error {
	o.bodies = append(o.bodies, body)
	return nil
}

func resetTokenFrom(t *testing.T, body string) string {
	t.Helper()
	start := strings.Index(body, "https://")
	require.GreaterOrEqual(t, start, 0)
	link, err := url.Parse(strings.Fields(body[start:])[0])
	require.NoError(t, err)
	return link.Query().Get("token")
}

func TestAuthFlow_RegisterLoginReset(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	users := newMemoryUsers()
	sessions := &memorySessions{}
	mails := &outbox{}
	tokens := jwt.New(jwt.WithSecretKey("flow-secret"), jwt.WithClock(clock))

	svc := services.NewAuthService(users, users, tokens, sessions, mails, services.AuthConfig{
		ResetURL:   "https://clima.app/changepassword",
		SessionTTL: time.Hour,
	})

	alice, err := svc.Register(ctx, services.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, services.RegisterInput{Username: "alice2", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, _, err = svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.saved)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	require.Len(t, mails.bodies, 1)
	token := resetTokenFrom(t, mails.bodies[0])

	link, err := svc.ValidateResetLink(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, link.ID)
	assert.Equal(t, "a@x.com", link.Email)

	// Validation has no side effects.
	_, err = svc.ValidateResetLink(ctx, token)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, services.ResetPasswordInput{ID: alice.ID, Email: "b@x.com", Password: "pw2", Token: token})
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, svc.ResetPassword(ctx, services.ResetPasswordInput{ID: alice.ID, Email: "a@x.com", Password: "pw2", Token: token}))

	_, _, err = svc.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "a@x.com", "pw2")
	assert.NoError(t, err)
}

func TestAuthFlow_ExpiredResetLink(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	users := newMemoryUsers()
	mails := &outbox{}
	tokens := jwt.New(jwt.WithSecretKey("flow-secret"), jwt.WithClock(func() time.Time { return now }))
	svc := services.NewAuthService(users, users, tokens, &memorySessions{}, mails, services.AuthConfig{
		ResetURL: "https://clima.app/changepassword",
	})

	alice, err := svc.Register(ctx, services.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	token := resetTokenFrom(t, mails.bodies[0])

	now = now.Add(jwt.DefaultResetExp - time.Second)
	_, err = svc.ValidateResetLink(ctx, token)
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = svc.ValidateResetLink(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	err = svc.ResetPassword(ctx, services.ResetPasswordInput{ID: alice.ID, Email: "a@x.com", Password: "pw2", Token: token})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
