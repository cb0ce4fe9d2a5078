package session

import (
	"context"
	"errors"

	"github.com/openshelf/biblio-admin/internal/apperrors"
	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/ports"
	authtoken "github.com/openshelf/biblio-admin/internal/token"
)

// Observed API deployments differ on whether the token embeds the profile or
// only a subject and expiry. Both shapes hide behind ports.ProfileResolver;
// bootstrap picks one from configuration.

// GatewayResolver resolves the profile with a /users/me call. This is the
// minimal-claims strategy: the token carries nothing but subject and expiry.
type GatewayResolver struct {
	gateway ports.AuthGateway
}

var _ ports.ProfileResolver = (*GatewayResolver)(nil)

// NewGatewayResolver constructs a resolver backed by the auth gateway.
func NewGatewayResolver(gw ports.AuthGateway) (*GatewayResolver, error) {
	if gw == nil {
		return nil, errors.New("session: auth gateway is required")
	}
	return &GatewayResolver{gateway: gw}, nil
}

func (r *GatewayResolver) ResolveProfile(ctx context.Context, token string) (domainauth.UserProfile, error) {
	return r.gateway.Me(ctx, token)
}

// ClaimsResolver builds the profile from claims embedded in the token, with
// no network access. Tokens from a minimal-claims server fail here with a
// malformed-token error rather than producing a half-empty profile.
type ClaimsResolver struct{}

var _ ports.ProfileResolver = ClaimsResolver{}

func (ClaimsResolver) ResolveProfile(_ context.Context, token string) (domainauth.UserProfile, error) {
	claims, err := authtoken.Decode(token)
	if err != nil {
		return domainauth.UserProfile{}, err
	}
	if claims.Name == "" || !claims.Role.Valid() {
		return domainauth.UserProfile{}, apperrors.MalformedToken("token does not embed profile claims")
	}

	return domainauth.UserProfile{
		ID:    claims.SubjectID(),
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
