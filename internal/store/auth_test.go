package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
	"github.com/iliyamo/cinelux-booking/internal/storage"
)

type mockIdentity struct {
	loginResp model.AuthResponse
	loginErr  error

	registerResp model.AuthResponse
	registerErr  error

	logoutErr error
	meResp    model.User
	meErr     error

	loginCalls, registerCalls, logoutCalls, meCalls int
}

func (m *mockIdentity) Login(_ context.Context, _ model.LoginRequest) (model.AuthResponse, error) {
	m.loginCalls++
	return m.loginResp, m.loginErr
}

func (m *mockIdentity) Register(_ context.Context, _ model.RegisterRequest) (model.AuthResponse, error) {
	m.registerCalls++
	return m.registerResp, m.registerErr
}

func (m *mockIdentity) Logout(_ context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}

func (m *mockIdentity) Me(_ context.Context) (model.User, error) {
	m.meCalls++
	return m.meResp, m.meErr
}

func userFixture() model.User {
	return model.User{ID: 42, Email: "a@x.com", FirstName: "Ada", LastName: "L", Role: "user"}
}

func TestInitRestoresCompleteRecord(t *testing.T) {
	session := storage.NewMemoryStore()
	u := userFixture()
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &u}))

	s := NewAuthStore(&mockIdentity{}, session)
	s.Init()

	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, int64(42), st.User.ID)
}

func TestInitWithHalfRecordStaysAnonymousAndPurges(t *testing.T) {
	tests := []struct {
		name string
		rec  storage.Record
	}{
		{"credential without profile", storage.Record{Token: "tok-1"}},
		{"profile without credential", storage.Record{User: func() *model.User { u := userFixture(); return &u }()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := storage.NewMemoryStore()
			session.Seed(tt.rec)

			s := NewAuthStore(&mockIdentity{}, session)
			s.Init()

			st := s.Snapshot()
			assert.False(t, st.IsAuthenticated)
			assert.Nil(t, st.User)
			_, err := session.Load()
			assert.ErrorIs(t, err, storage.ErrNoSession, "both halves must be gone")
			assert.Empty(t, session.Token())
		})
	}
}

func TestInitDiscardsExpiredToken(t *testing.T) {
	session := storage.NewMemoryStore()
	u := userFixture()
	// HS256 token with exp in 2001; the signature is never checked.
	expired := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiI0MiIsImV4cCI6MTAwMDAwMDAwMH0." +
		"invalid-signature"
	require.NoError(t, session.Save(storage.Record{Token: expired, User: &u}))

	s := NewAuthStore(&mockIdentity{}, session)
	s.Init()

	assert.False(t, s.Snapshot().IsAuthenticated)
	assert.Empty(t, session.Token())
}

func TestLoginSuccessPersistsPairAtomically(t *testing.T) {
	session := storage.NewMemoryStore()
	api := &mockIdentity{loginResp: model.AuthResponse{User: userFixture(), Token: "tok-9"}}
	s := NewAuthStore(api, session)

	ok := s.Login(context.Background(), "a@x.com", "hunter2")
	require.True(t, ok)

	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Empty(t, st.Error)
	rec, err := session.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-9", rec.Token)
	assert.Equal(t, int64(42), rec.User.ID)
}

func TestLoginFailureStaysAnonymousWithError(t *testing.T) {
	session := storage.NewMemoryStore()
	api := &mockIdentity{loginErr: &gateway.APIError{Message: "Invalid credentials", Status: http.StatusUnauthorized}}
	s := NewAuthStore(api, session)

	ok := s.Login(context.Background(), "a@x.com", "wrong")

	assert.False(t, ok)
	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.NotEmpty(t, st.Error)
	assert.Equal(t, "Invalid credentials", st.Error)
	_, err := session.Load()
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestRegisterSuccess(t *testing.T) {
	session := storage.NewMemoryStore()
	api := &mockIdentity{registerResp: model.AuthResponse{User: userFixture(), Token: "tok-3"}}
	s := NewAuthStore(api, session)

	ok := s.Register(context.Background(), model.RegisterRequest{
		Email: "a@x.com", Password: "hunter2", FirstName: "Ada", LastName: "L",
	})

	require.True(t, ok)
	assert.True(t, s.Snapshot().IsAuthenticated)
	assert.Equal(t, "tok-3", session.Token())
}

func TestLogoutUnconditionalDespiteRemoteFailure(t *testing.T) {
	session := storage.NewMemoryStore()
	u := userFixture()
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &u}))
	api := &mockIdentity{logoutErr: errors.New("connection refused")}
	s := NewAuthStore(api, session)
	s.Init()
	require.True(t, s.Snapshot().IsAuthenticated)

	s.Logout(context.Background())

	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Error, "remote logout failure is logged, not surfaced")
	_, err := session.Load()
	assert.ErrorIs(t, err, storage.ErrNoSession)
	assert.Equal(t, 1, api.logoutCalls)
}

func TestRefreshUserWithoutTokenIsNoOp(t *testing.T) {
	api := &mockIdentity{}
	s := NewAuthStore(api, storage.NewMemoryStore())

	assert.False(t, s.RefreshUser(context.Background()))
	assert.Zero(t, api.meCalls)
}

func TestRefreshUserUpdatesProfile(t *testing.T) {
	session := storage.NewMemoryStore()
	u := userFixture()
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &u}))
	renamed := userFixture()
	renamed.FirstName = "Grace"
	api := &mockIdentity{meResp: renamed}
	s := NewAuthStore(api, session)
	s.Init()

	require.True(t, s.RefreshUser(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, "Grace", st.User.FirstName)
	rec, err := session.Load()
	require.NoError(t, err)
	assert.Equal(t, "Grace", rec.User.FirstName, "refreshed profile is re-persisted")
	assert.Equal(t, "tok-1", rec.Token, "token survives a profile refresh")
}

func TestRefreshUserCredentialRejectionEndsSession(t *testing.T) {
	session := storage.NewMemoryStore()
	u := userFixture()
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &u}))
	api := &mockIdentity{meErr: &gateway.APIError{Message: "Session expired.", Status: http.StatusUnauthorized}}
	s := NewAuthStore(api, session)
	s.Init()

	assert.False(t, s.RefreshUser(context.Background()))

	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated)
	_, err := session.Load()
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestRefreshUserTransportFailureKeepsSession(t *testing.T) {
	// A flaky network must not log the user out; only a definitive
	// credential rejection may.
	session := storage.NewMemoryStore()
	u := userFixture()
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &u}))
	api := &mockIdentity{meErr: errors.New("dial tcp: i/o timeout")}
	s := NewAuthStore(api, session)
	s.Init()

	assert.False(t, s.RefreshUser(context.Background()))

	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated, "session survives transport trouble")
	assert.NotEmpty(t, st.Error)
	assert.Equal(t, "tok-1", session.Token())
}

func TestIsAdmin(t *testing.T) {
	session := storage.NewMemoryStore()
	admin := userFixture()
	admin.Role = model.RoleAdmin
	require.NoError(t, session.Save(storage.Record{Token: "tok-1", User: &admin}))
	s := NewAuthStore(&mockIdentity{}, session)

	assert.False(t, s.IsAdmin(), "anonymous store is never admin")
	s.Init()
	assert.True(t, s.IsAdmin())
}
