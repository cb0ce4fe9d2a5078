package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/biblio-admin/internal/apperrors"
	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	mockauth "github.com/openshelf/biblio-admin/internal/mocks/auth"
	"github.com/openshelf/biblio-admin/internal/testutil"
)

func TestNewGatewayResolver_RequiresGateway(t *testing.T) {
	_, err := NewGatewayResolver(nil)
	require.Error(t, err)
}

func TestGatewayResolver_DelegatesToMe(t *testing.T) {
	gw := mockauth.NewMockAuthGateway()
	gw.DefaultProfile = domainauth.UserProfile{ID: 9, Name: "Bea", Email: "b@c.com", Role: domainauth.RoleAdmin}

	r, err := NewGatewayResolver(gw)
	require.NoError(t, err)

	got, err := r.ResolveProfile(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, gw.DefaultProfile, got)
	assert.Equal(t, 1, gw.MeCalls())
}

func TestClaimsResolver_EmbeddedProfile(t *testing.T) {
	raw := testutil.MintToken(t, testutil.TokenSpec{
		Subject:   "7",
		ExpiresAt: time.Now().Add(time.Hour),
		Name:      "Ana",
		Email:     "a@b.com",
		Role:      domainauth.RoleReader,
	})

	got, err := ClaimsResolver{}.ResolveProfile(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, domainauth.UserProfile{ID: 7, Name: "Ana", Email: "a@b.com", Role: domainauth.RoleReader}, got)
}

func TestClaimsResolver_MinimalTokenFails(t *testing.T) {
	raw := testutil.MintToken(t, testutil.TokenSpec{Subject: "7", ExpiresAt: time.Now().Add(time.Hour)})

	_, err := ClaimsResolver{}.ResolveProfile(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedToken(err))
}

func TestClaimsResolver_UnknownRoleFails(t *testing.T) {
	raw := testutil.MintToken(t, testutil.TokenSpec{
		Subject:   "7",
		ExpiresAt: time.Now().Add(time.Hour),
		Name:      "Ana",
		Role:      domainauth.Role("INTERN"),
	})

	_, err := ClaimsResolver{}.ResolveProfile(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedToken(err))
}
