package session

// Package session owns the authentication lifecycle: restoring a persisted
// session at startup, login/logout/registration, expiry-driven logout, and
// convergence with other clients sharing the same credential store. The
// controller is the single authority for session state transitions and the
// sole error boundary: any failure while establishing a session resolves to
// a clean unauthenticated state before the error is surfaced.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/openshelf/biblio-admin/internal/apperrors"
	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/ports"
	authtoken "github.com/openshelf/biblio-admin/internal/token"
)

const clearTimeout = 5 * time.Second

// ControllerOptions groups dependencies for the session controller.
type ControllerOptions struct {
	Store   ports.CredentialStore
	Gateway ports.AuthGateway
	// Resolver defaults to the gateway (/users/me) strategy when nil.
	Resolver ports.ProfileResolver
	Logger   *slog.Logger
	// Now is a clock override for tests; defaults to time.Now.
	Now func() time.Time
}

// Controller orchestrates session state. Construct it once at the
// composition root and inject it wherever the current session is needed.
type Controller struct {
	store    ports.CredentialStore
	gateway  ports.AuthGateway
	resolver ports.ProfileResolver
	logger   *slog.Logger
	now      func() time.Time

	// flight collapses concurrent Login calls (double submit) into one
	// gateway round trip; every caller observes the same outcome.
	flight singleflight.Group

	mu        sync.Mutex
	token     string
	user      *domainauth.UserProfile
	loading   bool
	expiry    *time.Timer
	watchStop func()
	started   bool
}

// NewController constructs a session controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Store == nil {
		return nil, errors.New("session: credential store is required")
	}
	if opts.Gateway == nil {
		return nil, errors.New("session: auth gateway is required")
	}

	resolver := opts.Resolver
	if resolver == nil {
		var err error
		resolver, err = NewGatewayResolver(opts.Gateway)
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		store:    opts.Store,
		gateway:  opts.Gateway,
		resolver: resolver,
		logger:   logger,
		now:      now,
	}, nil
}

// Start restores any persisted session and begins watching the credential
// store for changes made by other clients. Restore failures are silent: they
// settle the controller at unauthenticated rather than propagating, so a
// stale credential never blocks startup. Start must be called exactly once.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.New("session: controller already started")
	}
	c.started = true
	c.loading = true
	c.mu.Unlock()

	c.restore(ctx)

	// The watch outlives the Start call; it stops via Close.
	watchCtx, cancel := context.WithCancel(context.Background())
	ch, stopWatch, err := c.store.Watch(watchCtx)
	if err != nil {
		cancel()
		// Watching is best-effort convergence; the session still works.
		c.logger.Warn("credential watch unavailable", slog.Any("error", err))
		return nil
	}

	c.mu.Lock()
	c.watchStop = func() {
		stopWatch()
		cancel()
	}
	c.mu.Unlock()

	go c.watchLoop(ch)
	return nil
}

// restore reads the persisted token, validates it, and loads the profile
// from the cached user entry or, failing that, the profile resolver. Any
// invalid or expired credential clears storage; a restore never leaves a
// partial session behind.
func (c *Controller) restore(ctx context.Context) {
	defer c.setLoading(false)

	raw, ok, err := c.store.Get(ctx, ports.KeyToken)
	if err != nil {
		c.logger.Warn("read stored token", slog.Any("error", err))
		return
	}
	if !ok || raw == "" {
		return
	}

	claims, err := authtoken.Decode(raw)
	if err != nil || claims.Expired(c.now()) {
		c.logger.Info("stored token invalid or expired; clearing session")
		if clearErr := c.clearStorage(ctx); clearErr != nil {
			c.logger.Warn("clear stored credentials", slog.Any("error", clearErr))
		}
		return
	}

	user := c.cachedUser(ctx)
	if user == nil {
		profile, resolveErr := c.resolver.ResolveProfile(ctx, raw)
		if resolveErr != nil {
			c.logger.Warn("restore profile fetch failed; clearing session", slog.Any("error", resolveErr))
			if clearErr := c.clearStorage(ctx); clearErr != nil {
				c.logger.Warn("clear stored credentials", slog.Any("error", clearErr))
			}
			return
		}
		user = &profile
		c.persistUser(ctx, profile)
	}

	c.adopt(raw, user, claims.ExpiresAt)
}

// cachedUser returns the profile cached under the user key, or nil when the
// entry is absent or unreadable.
func (c *Controller) cachedUser(ctx context.Context) *domainauth.UserProfile {
	stored, ok, err := c.store.Get(ctx, ports.KeyUser)
	if err != nil || !ok || stored == "" {
		return nil
	}
	var user domainauth.UserProfile
	if err := json.Unmarshal([]byte(stored), &user); err != nil {
		return nil
	}
	return &user
}

// Login authenticates with the API and establishes a session. Concurrent
// calls are collapsed into a single attempt. On any failure the controller
// resets to unauthenticated before the error is returned to the caller.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	_, err, _ := c.flight.Do("login", func() (any, error) {
		return nil, c.doLogin(ctx, email, password)
	})
	return err
}

func (c *Controller) doLogin(ctx context.Context, email, password string) error {
	c.setLoading(true)
	defer c.setLoading(false)

	raw, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		c.reset(ctx)
		return err
	}

	claims, err := authtoken.Decode(raw)
	if err != nil {
		c.reset(ctx)
		return err
	}
	// A token that is already expired when the server hands it over is a
	// hard failure, not a brief login.
	if claims.Expired(c.now()) {
		c.reset(ctx)
		return apperrors.StaleToken("server issued an expired token")
	}

	if err := c.store.Set(ctx, ports.KeyToken, raw); err != nil {
		c.reset(ctx)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist token")
	}

	profile, err := c.resolver.ResolveProfile(ctx, raw)
	if err != nil {
		c.reset(ctx)
		return err
	}
	c.persistUser(ctx, profile)
	c.adopt(raw, &profile, claims.ExpiresAt)

	c.logger.Info("logged in", slog.String("email", profile.Email), slog.String("role", string(profile.Role)))
	return nil
}

// Logout clears the session and the persisted credentials. Calling it while
// already logged out is a no-op.
func (c *Controller) Logout(ctx context.Context) error {
	return c.reset(ctx)
}

// Register creates a new account. Session state is untouched regardless of
// outcome; a duplicate email surfaces as a conflict error so the caller can
// tell it apart from generic failures.
func (c *Controller) Register(ctx context.Context, in ports.RegisterInput) error {
	return c.gateway.Register(ctx, in)
}

// Snapshot returns the current session state. The returned value never
// pairs an absent token with a present user.
func (c *Controller) Snapshot() domainauth.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := domainauth.Snapshot{Loading: c.loading}
	if c.token == "" {
		return snap
	}
	snap.Token = c.token
	if c.user != nil {
		user := *c.user
		snap.User = &user
	}
	return snap
}

// Authorize applies the access guard to the current session snapshot.
func (c *Controller) Authorize(requiredRoles ...domainauth.Role) domainauth.Decision {
	return domainauth.Authorize(c.Snapshot(), requiredRoles...)
}

// Token returns the current bearer token, or empty when logged out. CRUD
// collaborators use it to authenticate their own gateway calls.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Close stops the expiry timer and the credential watch. It does not clear
// persisted credentials; the session resumes on the next Start.
func (c *Controller) Close() {
	c.mu.Lock()
	stop := c.watchStop
	c.watchStop = nil
	c.cancelExpiryLocked()
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// adopt installs a validated token and profile and arms the expiry timer.
func (c *Controller) adopt(raw string, user *domainauth.UserProfile, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelExpiryLocked()
	c.token = raw
	c.user = user
	c.expiry = time.AfterFunc(expiresAt.Sub(c.now()), c.expire)
}

// expire is the timer callback for token expiry. It clears the session and
// storage silently; the next guarded navigation redirects to login.
func (c *Controller) expire() {
	ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
	defer cancel()

	c.mu.Lock()
	if c.token == "" {
		c.mu.Unlock()
		return
	}
	c.expiry = nil
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	if err := c.clearStorage(ctx); err != nil {
		c.logger.Warn("clear credentials after expiry", slog.Any("error", err))
	}
	c.logger.Info("session expired")
}

// reset cancels the expiry timer, drops in-memory state, and clears
// persisted credentials. Idempotent.
func (c *Controller) reset(ctx context.Context) error {
	c.mu.Lock()
	c.cancelExpiryLocked()
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	return c.clearStorage(ctx)
}

func (c *Controller) clearStorage(ctx context.Context) error {
	return errors.Join(
		c.store.Remove(ctx, ports.KeyToken),
		c.store.Remove(ctx, ports.KeyUser),
	)
}

// persistUser caches the profile under the user key. Failure is logged, not
// fatal: the token alone restores the session next start via a fresh fetch.
func (c *Controller) persistUser(ctx context.Context, profile domainauth.UserProfile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		c.logger.Warn("encode user profile", slog.Any("error", err))
		return
	}
	if err := c.store.Set(ctx, ports.KeyUser, string(payload)); err != nil {
		c.logger.Warn("cache user profile", slog.Any("error", err))
	}
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// cancelExpiryLocked stops a pending expiry timer. Callers hold c.mu.
func (c *Controller) cancelExpiryLocked() {
	if c.expiry != nil {
		c.expiry.Stop()
		c.expiry = nil
	}
}

// watchLoop applies credential changes made by other clients of the shared
// store. It only mirrors storage into memory; it never triggers fetches.
func (c *Controller) watchLoop(ch <-chan ports.Change) {
	for change := range ch {
		c.applyChange(change)
	}
}

func (c *Controller) applyChange(change ports.Change) {
	switch change.Key {
	case ports.KeyToken:
		c.applyTokenChange(change)
	case ports.KeyUser:
		c.applyUserChange(change)
	}
}

func (c *Controller) applyTokenChange(change ports.Change) {
	if change.Removed || change.Value == "" {
		c.mu.Lock()
		wasAuthenticated := c.token != ""
		c.cancelExpiryLocked()
		c.token = ""
		c.user = nil
		c.mu.Unlock()

		if wasAuthenticated {
			c.logger.Info("token removed by another client; session cleared")
		}
		return
	}

	c.mu.Lock()
	same := change.Value == c.token
	c.mu.Unlock()
	if same {
		return
	}

	claims, err := authtoken.Decode(change.Value)
	if err != nil || claims.Expired(c.now()) {
		// Another client wrote an unusable token; drop our session and let
		// the writer clean up storage.
		c.mu.Lock()
		c.cancelExpiryLocked()
		c.token = ""
		c.user = nil
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.cancelExpiryLocked()
	c.token = change.Value
	c.expiry = time.AfterFunc(claims.ExpiresAt.Sub(c.now()), c.expire)
	c.mu.Unlock()
}

func (c *Controller) applyUserChange(change ports.Change) {
	if change.Removed || change.Value == "" {
		c.mu.Lock()
		c.user = nil
		c.mu.Unlock()
		return
	}

	var user domainauth.UserProfile
	if err := json.Unmarshal([]byte(change.Value), &user); err != nil {
		return
	}

	c.mu.Lock()
	// Never pair a user with an absent token.
	if c.token != "" {
		c.user = &user
	}
	c.mu.Unlock()
}
