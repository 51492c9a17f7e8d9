package model

// User is the profile served by the user service.  Role is either
// "user" or "admin"; admin status gates the catalog and scheduling
// write endpoints (enforced server-side, mirrored client-side for UI).
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// RoleAdmin is the role value granting write access to the catalog and
// scheduling services.
const RoleAdmin = "admin"

// LoginRequest is the credential payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResponse is returned by both login and register: the profile plus
// the bearer token to attach on authenticated calls.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UpdateUserRequest carries a partial profile update.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// IsAdminResponse is the user service's admin-check envelope, consumed
// by the other services when validating write permissions.
type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}
