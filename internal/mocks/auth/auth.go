package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthGateway     = (*MockAuthGateway)(nil)
	_ ports.ProfileResolver = (*MockProfileResolver)(nil)
)

// MockAuthGateway simulates the library API for tests. Behavior is
// overridden per test via the Func fields; call counts are tracked so tests
// can assert how many round trips happened.
type MockAuthGateway struct {
	LoginFunc    func(ctx context.Context, email, password string) (string, error)
	RegisterFunc func(ctx context.Context, in ports.RegisterInput) error
	MeFunc       func(ctx context.Context, token string) (domainauth.UserProfile, error)

	// Defaults used when the corresponding Func is nil.
	DefaultToken   string
	DefaultProfile domainauth.UserProfile

	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	meCalls       int
}

// NewMockAuthGateway creates a gateway double with a sensible default user.
func NewMockAuthGateway() *MockAuthGateway {
	return &MockAuthGateway{
		DefaultToken: "mock-token",
		DefaultProfile: domainauth.UserProfile{
			ID:    1,
			Name:  "Mock User",
			Email: "mock.user@example.com",
			Role:  domainauth.RoleReader,
		},
	}
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (string, error) {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()

	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return m.DefaultToken, nil
}

func (m *MockAuthGateway) Register(ctx context.Context, in ports.RegisterInput) error {
	m.mu.Lock()
	m.registerCalls++
	m.mu.Unlock()

	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil
}

func (m *MockAuthGateway) Me(ctx context.Context, token string) (domainauth.UserProfile, error) {
	m.mu.Lock()
	m.meCalls++
	m.mu.Unlock()

	if m.MeFunc != nil {
		return m.MeFunc(ctx, token)
	}
	return m.DefaultProfile, nil
}

// LoginCalls returns how many times Login was invoked.
func (m *MockAuthGateway) LoginCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCalls
}

// RegisterCalls returns how many times Register was invoked.
func (m *MockAuthGateway) RegisterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registerCalls
}

// MeCalls returns how many times Me was invoked.
func (m *MockAuthGateway) MeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meCalls
}

// MockProfileResolver is a ProfileResolver double.
type MockProfileResolver struct {
	ResolveFunc    func(ctx context.Context, token string) (domainauth.UserProfile, error)
	DefaultProfile domainauth.UserProfile

	mu           sync.Mutex
	resolveCalls int
}

func (m *MockProfileResolver) ResolveProfile(ctx context.Context, token string) (domainauth.UserProfile, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return m.DefaultProfile, nil
}

// ResolveCalls returns how many times ResolveProfile was invoked.
func (m *MockProfileResolver) ResolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}
