package token

// Package token decodes bearer tokens and checks their liveness without
// network access. Decoding is unverified on purpose: the client only needs
// the expiry and subject for local session bookkeeping; signature checks are
// the server's job on every authenticated request.

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openshelf/biblio-admin/internal/apperrors"
	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
)

// Claims is the decoded, ephemeral view of a bearer token. Name, Email, and
// Role are only present when the server embeds profile claims in the token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	Name      string
	Email     string
	Role      domainauth.Role
}

type wireClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Decode parses a bearer token without verifying its signature and returns
// its claims. It fails with a malformed-token error when the string is not a
// well-formed JWT or when the expiry claim is missing.
func Decode(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, apperrors.MalformedToken("token is empty")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, &wireClaims{})
	if err != nil {
		return Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedToken, "decode token")
	}

	wc, ok := parsed.Claims.(*wireClaims)
	if !ok || wc.ExpiresAt == nil {
		return Claims{}, apperrors.MalformedToken("token has no expiry claim")
	}

	return Claims{
		Subject:   wc.Subject,
		ExpiresAt: wc.ExpiresAt.Time,
		Name:      wc.Name,
		Email:     wc.Email,
		Role:      domainauth.Role(wc.Role),
	}, nil
}

// Expired reports whether the claims' expiry is at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// SubjectID returns the numeric user ID carried in the subject claim, or 0
// when the subject is not numeric.
func (c Claims) SubjectID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
