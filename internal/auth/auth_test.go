package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUsers) Create(_ context.Context, u domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	f.byEmail[u.Email] = &u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeSessions struct {
	live map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{live: make(map[string]string)}
}

func (f *fakeSessions) Add(_ context.Context, sessionID, userID string, _ time.Duration) error {
	f.live[sessionID] = userID
	return nil
}

func (f *fakeSessions) Alive(_ context.Context, sessionID string) (bool, error) {
	_, ok := f.live[sessionID]
	return ok, nil
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	delete(f.live, sessionID)
	return nil
}

func newTestService() (*Service, *fakeUsers, *fakeSessions) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := NewService(users, sessions, "test-secret", time.Hour, observability.NewLogger())
	return svc, users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "Alice@Example.com", "555-0100", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	token, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	id, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, "alice@example.com", id.Email)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "bob@example.com", "", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(ctx, "", "bob@example.com", "", "longenough")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@example.com", "", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice2", "a@example.com", "", "hunter23")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@example.com", "", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "a@example.com", "555-0100", "hunter22")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "555-0100", got.Phone)

	_, err = svc.Profile(ctx, "no-such-user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSignOut_RevokesSession(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@example.com", "", "hunter22")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "a@example.com", "hunter22")
	require.NoError(t, err)

	id, err := svc.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, *id))

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestVerify_GarbageToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
