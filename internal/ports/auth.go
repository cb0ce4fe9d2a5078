package ports

// Package ports defines interfaces (hexagonal ports) for the session core.
// Implementations live in internal/adapters and internal/gateway;
// orchestration in internal/session.

import (
	"context"

	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
)

// Credential keys. These two keys are the only externally observable
// persisted representation of session state; both absent means logged out.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Change is a credential-change notification observed from a store watch.
// Removed signals deletion; Origin identifies the writing client so a
// watcher can skip its own writes when the backend echoes them.
type Change struct {
	Key     string
	Value   string
	Removed bool
	Origin  string
}

// CredentialStore is durable key/value persistence for the bearer token and
// cached user profile, shared across clients of the same backend. Absence is
// not an error: Get returns ok=false for a missing key.
type CredentialStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	// Watch subscribes to credential changes made by other clients of the
	// same store. Delivery is best-effort and eventual. The returned stop
	// function releases the subscription; the channel is closed afterwards
	// or when ctx is done.
	Watch(ctx context.Context) (<-chan Change, func(), error)
}

// RegisterInput carries the fields for a staff registration request.
// Phone, Address, and Role are optional; the server defaults Role to READER.
type RegisterInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone,omitempty"`
	Address  string          `json:"address,omitempty"`
	Role     domainauth.Role `json:"role,omitempty"`
}

// AuthGateway performs the authentication calls against the library API.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (token string, err error)

	// Register creates a new account. A duplicate email surfaces as a
	// conflict error, distinguishable from generic failures.
	Register(ctx context.Context, in RegisterInput) error

	// Me fetches the profile of the principal identified by token.
	Me(ctx context.Context, token string) (domainauth.UserProfile, error)
}

// ProfileResolver turns a freshly validated token into a user profile.
// The minimal-claims strategy fetches it from the API; the embedded-claims
// strategy builds it from the token itself.
type ProfileResolver interface {
	ResolveProfile(ctx context.Context, token string) (domainauth.UserProfile, error)
}
