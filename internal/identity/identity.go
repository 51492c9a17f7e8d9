// Package identity is the accessor for the user/auth service: login,
// registration, session teardown and profile operations.
package identity

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
)

// Client exposes the user service endpoints.
type Client struct {
	gw *gateway.Client
}

// New returns an identity accessor over the given gateway.
func New(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Login exchanges credentials for a profile and bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.gw.Post(ctx, "/api/auth/login", req, &resp, false)
	return resp, err
}

// Register creates an account and returns the initial session pair.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.gw.Post(ctx, "/api/auth/register", req, &resp, false)
	return resp, err
}

// Logout invalidates the session server-side.  The caller discards
// local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.gw.Post(ctx, "/api/auth/logout", nil, nil, true)
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.gw.Get(ctx, "/api/auth/me", &u, true)
	return u, err
}

// UpdateUser applies a partial profile update.
func (c *Client) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	var u model.User
	err := c.gw.Put(ctx, fmt.Sprintf("/api/users/%d", id), req, &u, true)
	return u, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/api/users/%d", id), nil, true)
}

// IsAdmin asks the user service whether the given user has the admin
// role.  The catalog and scheduling services call the same endpoint
// when validating writes.
func (c *Client) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var resp model.IsAdminResponse
	err := c.gw.Get(ctx, fmt.Sprintf("/api/users/%d/is-admin", userID), &resp, true)
	return resp.IsAdmin, err
}
