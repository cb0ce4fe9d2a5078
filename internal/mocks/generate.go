// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the session core's ports. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	gw := mocks.NewMockAuthGateway(ctrl)
//	gw.EXPECT().Login(gomock.Any(), "a@b.com", "secret").Return(token, nil)
package mocks

// Generate mock for AuthGateway interface from internal/ports.
// This creates MockAuthGateway with Login, Register, and Me methods.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_gateway_mock.go github.com/openshelf/biblio-admin/internal/ports AuthGateway
