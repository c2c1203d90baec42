package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mes-platform/production-tracker/internal/domain"
	"github.com/mes-platform/production-tracker/pkg/logging"
)

type mockUserRepository struct {
	users  map[string]*domain.User
	logins []*domain.LoginActivity
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Save(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) RecordLogin(_ context.Context, activity *domain.LoginActivity) error {
	m.logins = append(m.logins, activity)
	return nil
}

func testService(users domain.UserRepository) *Service {
	cfg := logging.DefaultConfig("test")
	cfg.Level = "error"
	return NewService(users, "test-secret", time.Hour, logging.New(cfg))
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMockUserRepository()
	svc := testService(users)

	user, err := svc.Register(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "operator1", user.Username)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	token, expiresAt, err := svc.Login(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
	require.Len(t, users.logins, 1)
	assert.Equal(t, "operator1", users.logins[0].Username)

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "operator1", principal)
}

func TestRegisterValidation(t *testing.T) {
	svc := testService(newMockUserRepository())

	_, err := svc.Register(context.Background(), "", "s3cret-pass")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Register(context.Background(), "operator1", "short")
	require.ErrorAs(t, err, &vErr)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := testService(newMockUserRepository())

	_, err := svc.Register(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "operator1", "another-pass")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := testService(newMockUserRepository())
	_, err := svc.Register(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "operator1", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	users := newMockUserRepository()
	svc := testService(users)
	_, err := svc.Register(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)

	// Mint a token that expired an hour ago.
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Login(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := testService(newMockUserRepository())

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	users := newMockUserRepository()
	svc := testService(users)
	_, err := svc.Register(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "operator1", "s3cret-pass")
	require.NoError(t, err)

	cfg := logging.DefaultConfig("test")
	cfg.Level = "error"
	other := NewService(users, "other-secret", time.Hour, logging.New(cfg))
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
