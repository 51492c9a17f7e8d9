package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/model"
	"github.com/iliyamo/cinelux-booking/internal/store"
)

// AuthHandler exposes the identity session to the UI.
type AuthHandler struct {
	Auth *store.AuthStore
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *store.AuthStore) *AuthHandler {
	if auth == nil {
		panic("nil auth store passed to NewAuthHandler")
	}
	return &AuthHandler{Auth: auth}
}

// authResponse mirrors AuthState for the UI.
type authResponse struct {
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IsLoading       bool        `json:"isLoading"`
	Error           string      `json:"error,omitempty"`
	IsAdmin         bool        `json:"isAdmin"`
}

func (h *AuthHandler) snapshot() authResponse {
	st := h.Auth.Snapshot()
	return authResponse{
		User:            st.User,
		IsAuthenticated: st.IsAuthenticated,
		IsLoading:       st.IsLoading,
		Error:           st.Error,
		IsAdmin:         h.Auth.IsAdmin(),
	}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	ok := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	return c.JSON(http.StatusOK, echo.Map{"ok": ok, "auth": h.snapshot()})
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	ok := h.Auth.Register(c.Request().Context(), req)
	return c.JSON(http.StatusOK, echo.Map{"ok": ok, "auth": h.snapshot()})
}

// Logout handles POST /v1/auth/logout.  Always succeeds locally.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Auth.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "auth": h.snapshot()})
}

// Me handles GET /v1/me: the current identity snapshot, no network.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// Refresh handles POST /v1/me/refresh: re-fetches the profile behind
// the cached session.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ok := h.Auth.RefreshUser(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"ok": ok, "auth": h.snapshot()})
}
