package gateway

import (
	"context"
	"net/http"

	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/ports"
)

var _ ports.AuthGateway = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates a new account. A duplicate email comes back as a
// conflict error.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in, nil)
}

// Me fetches the authenticated principal's profile.
func (c *Client) Me(ctx context.Context, token string) (domainauth.UserProfile, error) {
	var profile domainauth.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &profile); err != nil {
		return domainauth.UserProfile{}, err
	}
	return profile, nil
}
