package store

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
	"github.com/iliyamo/cinelux-booking/internal/storage"
)

// IdentityAPI is the slice of the identity accessor the auth store
// depends on.  *identity.Client satisfies it.
type IdentityAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (model.User, error)
}

// AuthState is the identity session snapshot: anonymous when User is
// nil, authenticated otherwise.
type AuthState struct {
	User            *model.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// AuthStore mirrors the identity service session.  The profile and
// bearer token persist across restarts as one atomic record in the
// session store; everything else is in-memory.
type AuthStore struct {
	mu    sync.Mutex
	state AuthState

	api     IdentityAPI
	session storage.SessionStore
	log     *logrus.Entry
	notes   notifier
}

// NewAuthStore returns an anonymous auth store.  Call Init to restore a
// persisted session.
func NewAuthStore(api IdentityAPI, session storage.SessionStore) *AuthStore {
	return &AuthStore{
		api:     api,
		session: session,
		log:     logrus.WithField("component", "store.auth"),
	}
}

// Snapshot returns a copy of the current state.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	return out
}

// Subscribe registers for change notifications.
func (s *AuthStore) Subscribe() (<-chan struct{}, func()) {
	return s.notes.subscribe()
}

// Init restores the persisted session at startup.  The cached record is
// trusted without a network round-trip; the only local check is the
// token's own expiry claim, read unverified (the client has no signing
// key and the server re-validates every call anyway).  A half-empty
// record is purged by the session store itself and leaves the state
// anonymous.
func (s *AuthStore) Init() {
	rec, err := s.session.Load()
	if err != nil {
		return
	}
	if tokenExpired(rec.Token) {
		s.log.Info("stored token expired, discarding session")
		if err := s.session.Purge(); err != nil {
			s.log.WithError(err).Warn("failed to purge expired session")
		}
		return
	}
	s.mu.Lock()
	s.state.User = rec.User
	s.state.IsAuthenticated = true
	s.mu.Unlock()
	s.notes.notify()
}

// Login authenticates against the user service.  The record is
// persisted before the in-memory state flips so a crash in between
// cannot leave an authenticated UI without a stored session.  On
// failure the state stays anonymous and the server's message lands in
// Error.
func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	s.beginLoading()
	resp, err := s.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	return s.finishAuth(resp, err, "Incorrect email or password.")
}

// Register creates an account and signs in with the returned session.
func (s *AuthStore) Register(ctx context.Context, req model.RegisterRequest) bool {
	s.beginLoading()
	resp, err := s.api.Register(ctx, req)
	return s.finishAuth(resp, err, "Unable to create your account.")
}

func (s *AuthStore) beginLoading() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()
}

// finishAuth applies a login/register outcome.  Persisting the record
// and updating the state happen as a pair; a persistence failure leaves
// the operation incomplete and the state anonymous.
func (s *AuthStore) finishAuth(resp model.AuthResponse, err error, fallback string) bool {
	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		s.notes.notify()
	}()
	s.state.IsLoading = false
	if err != nil {
		s.state.Error = userMessage(err, fallback)
		return false
	}
	user := resp.User
	if err := s.session.Save(storage.Record{Token: resp.Token, User: &user}); err != nil {
		s.log.WithError(err).Error("failed to persist session record")
		s.state.Error = "Unable to save your session. Please try again."
		return false
	}
	s.state.User = &user
	s.state.IsAuthenticated = true
	s.state.Error = ""
	return true
}

// Logout ends the session.  Client-side logout is unconditional: the
// record is purged and the state reset even when the remote
// invalidation call fails (that failure is logged, never surfaced).
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.WithError(err).Warn("remote logout failed, clearing local session anyway")
	}
	s.clearSession()
}

// clearSession purges the record and resets to anonymous.
func (s *AuthStore) clearSession() {
	if err := s.session.Purge(); err != nil {
		s.log.WithError(err).Warn("failed to purge session record")
	}
	s.mu.Lock()
	s.state = AuthState{}
	s.mu.Unlock()
	s.notes.notify()
}

// RefreshUser re-fetches the profile behind the cached session.  With
// no stored token it is a no-op returning false.  A 401 or 403 means
// the credential is genuinely dead and tears the session down; other
// failures (timeouts, 5xx) keep the cached session and only surface an
// error, so a flaky network cannot log the user out.
func (s *AuthStore) RefreshUser(ctx context.Context) bool {
	token := s.session.Token()
	if token == "" {
		return false
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		if gateway.IsStatus(err, http.StatusUnauthorized) || gateway.IsStatus(err, http.StatusForbidden) {
			s.log.Info("credential rejected, ending session")
			s.clearSession()
			return false
		}
		s.mu.Lock()
		s.state.Error = userMessage(err, "Unable to refresh your profile.")
		s.mu.Unlock()
		s.notes.notify()
		return false
	}
	if err := s.session.Save(storage.Record{Token: token, User: &user}); err != nil {
		s.log.WithError(err).Warn("failed to persist refreshed profile")
	}
	s.mu.Lock()
	s.state.User = &user
	s.state.IsAuthenticated = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()
	return true
}

// IsAdmin reports whether the cached profile has the admin role.  No
// network call; the services re-check on every write anyway.
func (s *AuthStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil && s.state.User.Role == model.RoleAdmin
}

// ClearError clears the last error message.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()
}

// tokenExpired reads the token's exp claim without verifying the
// signature.  Tokens without a readable expiry are assumed usable; the
// server is the authority either way.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
