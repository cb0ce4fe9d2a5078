package config

import (
	"fmt"
	"strings"
)

// ClaimsMode selects how the session controller resolves the user profile
// after obtaining a token.
type ClaimsMode string

const (
	// ClaimsModeMinimal fetches the profile from the API; the token carries
	// only a subject and expiry.
	ClaimsModeMinimal ClaimsMode = "minimal"
	// ClaimsModeEmbedded builds the profile from claims embedded in the
	// token, with no extra round trip.
	ClaimsModeEmbedded ClaimsMode = "embedded"
)

// UnmarshalText implements encoding.TextUnmarshaler for ClaimsMode.
func (m *ClaimsMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "minimal", "embedded":
		*m = ClaimsMode(v)
		return nil
	default:
		return fmt.Errorf("invalid ClaimsMode: %q (valid options: minimal, embedded)", v)
	}
}

// AuthConfig groups session and token configuration.
type AuthConfig struct {
	// ClaimsMode determines the profile resolution strategy.
	ClaimsMode ClaimsMode `env:"CLAIMS_MODE" envDefault:"minimal"`
}
