package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of adapter/transport concerns.

import "time"

// Role represents a staff authorization role as issued by the library API.
// Kept in string form for easy persistence and JSON round-tripping.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleLibrarian Role = "LIBRARIAN"
	RoleReader    Role = "READER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleReader:
		return true
	}
	return false
}

// UserProfile is the cached identity of the authenticated principal.
// It is written only by the session controller and read by everyone else.
// The JSON shape matches the API's /users/me payload and is what gets
// persisted under the "user" credential key.
type UserProfile struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Snapshot is a point-in-time view of the session state handed to callers.
// Loading is true only while initialization or a login is still in flight,
// so the guard can tell "not yet known" from "known unauthenticated".
// Invariant: Token == "" implies User == nil.
type Snapshot struct {
	Token   string
	User    *UserProfile
	Loading bool
}

// IsAuthenticated reports whether a user profile is present.
func (s Snapshot) IsAuthenticated() bool { return s.User != nil }

// IsAdmin reports whether the session belongs to an admin.
func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}

// IsLibrarian reports whether the session may perform librarian actions.
// Admins are librarians by inclusion.
func (s Snapshot) IsLibrarian() bool {
	return s.IsAdmin() || (s.User != nil && s.User.Role == RoleLibrarian)
}
