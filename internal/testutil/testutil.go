package testutil

// Package testutil provides shared helpers for tests: Redis detection with
// skip-if-unavailable semantics and bearer-token minting.

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
)

// SetupTestRedis creates a Redis client for testing. Tests are skipped when
// Redis is not reachable, unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		if os.Getenv("TEST_REQUIRE_REDIS") != "" {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	return client
}

// TokenSpec describes a token to mint for tests.
type TokenSpec struct {
	Subject   string
	ExpiresAt time.Time
	// Embedded profile claims, used by embedded-claims resolver tests.
	Name  string
	Email string
	Role  domainauth.Role
}

// MintToken signs an HS256 token with a throwaway key. The session core
// never verifies signatures, so the key does not matter; the token just has
// to be structurally valid.
func MintToken(t *testing.T, spec TokenSpec) string {
	t.Helper()

	// Fractional exp keeps sub-second precision for expiry-timer tests.
	claims := jwt.MapClaims{
		"sub": spec.Subject,
		"exp": float64(spec.ExpiresAt.UnixMilli()) / 1000,
	}
	if spec.Name != "" {
		claims["name"] = spec.Name
	}
	if spec.Email != "" {
		claims["email"] = spec.Email
	}
	if spec.Role != "" {
		claims["role"] = string(spec.Role)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

// FixedTimeFunc returns a function that always returns the same time.
func FixedTimeFunc(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}
