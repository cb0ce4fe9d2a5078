package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/openshelf/biblio-admin/config"
	"github.com/openshelf/biblio-admin/internal/gateway"
	"github.com/openshelf/biblio-admin/internal/ports"
	"github.com/openshelf/biblio-admin/internal/session"
)

// BuildGateway constructs the library API client.
func BuildGateway(cfg config.APIConfig, logger *slog.Logger) (*gateway.Client, error) {
	client, err := gateway.NewClient(gateway.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}

// BuildSessionController wires the credential store, API gateway, and
// profile resolver into a session controller. The controller is not started;
// the caller owns Start and Close.
func BuildSessionController(cfg config.AppConfig, logger *slog.Logger) (*session.Controller, error) {
	gw, err := BuildGateway(cfg.API, logger)
	if err != nil {
		return nil, err
	}

	store, err := BuildCredentialStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build credential store: %w", err)
	}

	resolver, err := buildResolver(cfg.Auth.ClaimsMode, gw)
	if err != nil {
		return nil, err
	}

	ctrl, err := session.NewController(session.ControllerOptions{
		Store:    store,
		Gateway:  gw,
		Resolver: resolver,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create session controller: %w", err)
	}
	return ctrl, nil
}

//nolint:ireturn // the strategy is chosen at runtime.
func buildResolver(mode config.ClaimsMode, gw ports.AuthGateway) (ports.ProfileResolver, error) {
	switch mode {
	case config.ClaimsModeEmbedded:
		return session.ClaimsResolver{}, nil
	case config.ClaimsModeMinimal, "":
		return session.NewGatewayResolver(gw)
	default:
		return nil, fmt.Errorf("unknown claims mode: %q", mode)
	}
}
