package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/consultorio-juridico/portal-session/internal/api/metrics"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

const (
	DefaultInactivityTimeout = 7 * time.Minute
	DefaultActivityThrottle  = 30 * time.Second
	DefaultWatchdogInterval  = time.Minute
)

// Clock returns the current instant. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options tunes the inactivity policy. Zero values fall back to the defaults.
type Options struct {
	InactivityTimeout time.Duration
	ActivityThrottle  time.Duration
	WatchdogInterval  time.Duration
	Clock             Clock
	// ExposeResetToken returns the password reset token to the caller when
	// the backend hands one out (development backends only).
	ExposeResetToken bool
}

func (o Options) withDefaults() Options {
	if o.InactivityTimeout <= 0 {
		o.InactivityTimeout = DefaultInactivityTimeout
	}
	if o.ActivityThrottle <= 0 {
		o.ActivityThrottle = DefaultActivityThrottle
	}
	if o.WatchdogInterval <= 0 {
		o.WatchdogInterval = DefaultWatchdogInterval
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	return o
}

// SessionController owns the process-wide session. State changes go through
// domain.Reduce while mu is held; network calls never run under mu.
type SessionController struct {
	api      ports.BackendAPI
	store    ports.SessionStore
	opts     Options
	clock    Clock
	logger   zerolog.Logger
	validate *validator.Validate

	mu      sync.Mutex
	session domain.Session
	// gen increases on every credential exchange start and every logout.
	// An exchange whose generation is no longer current is stale.
	gen         uint64
	// pending is set while the exchange of the current generation (login,
	// registration or restore) is in flight and owns the loading flag.
	pending     bool
	subscribers map[int]chan domain.Session
	nextSubID   int

	refreshes singleflight.Group
}

var (
	_ ports.SessionService    = (*SessionController)(nil)
	_ ports.RosterService     = (*SessionController)(nil)
	_ ports.CaseRecordService = (*SessionController)(nil)
)

func NewSessionController(api ports.BackendAPI, store ports.SessionStore, opts Options, logger zerolog.Logger) *SessionController {
	opts = opts.withDefaults()
	return &SessionController{
		api:         api,
		store:       store,
		opts:        opts,
		clock:       opts.Clock,
		logger:      logger,
		validate:    validator.New(),
		session:     domain.NewSession(),
		subscribers: make(map[int]chan domain.Session),
	}
}

// Snapshot returns a copy of the current session.
func (c *SessionController) Snapshot() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copySession(c.session)
}

// Subscribe returns a channel receiving every new session state. Slow
// subscribers miss intermediate states. The returned func unsubscribes.
func (c *SessionController) Subscribe(buffer int) (<-chan domain.Session, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Session, buffer)

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

// Restore loads the persisted session at startup. Failures are silent: the
// session ends up unauthenticated with no error message.
func (c *SessionController) Restore(ctx context.Context) {
	c.mu.Lock()
	gen := c.gen
	c.pending = true
	c.mu.Unlock()

	persisted, err := c.store.Load(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("load").Inc()
		c.logger.Warn().Err(err).Msg("could not load persisted session")
	}

	var (
		user    *domain.User
		tokens  ports.AuthTokens
		expired bool
		meErr   error
	)
	switch {
	case persisted.AccessToken == "":
	case !persisted.LastActivity.IsZero() && c.clock.Now().Sub(persisted.LastActivity) >= c.opts.InactivityTimeout:
		expired = true
	default:
		user, tokens, meErr = c.whoAmI(ctx, persisted)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		metrics.SessionEventsDiscardedTotal.WithLabelValues("restore").Inc()
		c.logger.Info().Msg("restore result discarded, session changed meanwhile")
		return
	}
	c.pending = false

	switch {
	case persisted.AccessToken == "":
		c.applyLocked(domain.LoadingSet{Loading: false})
	case expired:
		metrics.SessionExpiriesTotal.WithLabelValues("restore").Inc()
		c.logger.Info().Time("last_activity", persisted.LastActivity).Msg("persisted session expired by inactivity")
		c.logoutLocked(ctx)
	case meErr != nil:
		c.logger.Info().Err(meErr).Msg("persisted session rejected")
		c.logoutLocked(ctx)
	default:
		if err := c.establishLocked(ctx, user, tokens); err != nil {
			c.logger.Warn().Err(err).Msg("restored session could not be installed")
			c.applyLocked(domain.LoadingSet{Loading: false})
			return
		}
		c.logger.Info().Int("user_id", user.ID).Msg("session restored")
	}
}

// whoAmI validates persisted credentials. A rejected access token is
// refreshed once before giving up.
func (c *SessionController) whoAmI(ctx context.Context, p domain.PersistedSession) (*domain.User, ports.AuthTokens, error) {
	tokens := ports.AuthTokens{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}

	user, err := c.api.Me(ctx, p.AccessToken)
	if err != nil && domain.IsUnauthorized(err) && p.RefreshToken != "" {
		refreshed, rerr := c.api.Refresh(ctx, p.RefreshToken)
		if rerr != nil || refreshed == nil || refreshed.AccessToken == "" {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			return nil, tokens, err
		}
		metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
		tokens.AccessToken = refreshed.AccessToken
		if refreshed.RefreshToken != "" {
			tokens.RefreshToken = refreshed.RefreshToken
		}
		user, err = c.api.Me(ctx, tokens.AccessToken)
	}
	if err != nil {
		return nil, tokens, err
	}
	if user == nil {
		return nil, tokens, fmt.Errorf("who am i: %w", domain.ErrIncompleteSession)
	}
	return user, tokens, nil
}

// Login exchanges credentials for a session.
func (c *SessionController) Login(ctx context.Context, email, password string) ports.Result {
	in := struct {
		Email    string `validate:"required"`
		Password string `validate:"required"`
	}{email, password}
	if err := c.validate.Struct(in); err != nil {
		return c.rejectInput(domain.OpLogin, err)
	}
	return c.authenticate(ctx, domain.OpLogin, func(ctx context.Context) (*ports.AuthTokens, error) {
		return c.api.Login(ctx, email, password)
	})
}

// Register creates an account; the backend logs it in right away.
func (c *SessionController) Register(ctx context.Context, in domain.RegisterInput) ports.Result {
	if err := c.validate.Struct(in); err != nil {
		return c.rejectInput(domain.OpRegister, err)
	}
	return c.authenticate(ctx, domain.OpRegister, func(ctx context.Context) (*ports.AuthTokens, error) {
		return c.api.Register(ctx, in)
	})
}

// RegisterStudent completes the registration of a pre-registered student.
func (c *SessionController) RegisterStudent(ctx context.Context, in domain.StudentRegistration) ports.Result {
	if err := c.validate.Struct(in); err != nil {
		return c.rejectInput(domain.OpRegisterStudent, err)
	}
	return c.authenticate(ctx, domain.OpRegisterStudent, func(ctx context.Context) (*ports.AuthTokens, error) {
		return c.api.RegisterStudent(ctx, in)
	})
}

func (c *SessionController) authenticate(ctx context.Context, op domain.Operation, exchange func(context.Context) (*ports.AuthTokens, error)) ports.Result {
	c.mu.Lock()
	c.applyLocked(domain.AuthStarted{})
	c.gen++
	gen := c.gen
	c.pending = true
	c.mu.Unlock()

	tokens, err := exchange(ctx)
	if err == nil && (tokens == nil || tokens.AccessToken == "" || tokens.User == nil) {
		err = fmt.Errorf("%s: %w", op, domain.ErrIncompleteSession)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		metrics.SessionEventsDiscardedTotal.WithLabelValues(string(op)).Inc()
		metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(false)).Inc()
		c.logger.Warn().Str("operation", string(op)).Msg("stale authentication result discarded")
		return ports.Fail(domain.MsgSessionChanged)
	}
	c.pending = false

	if err != nil {
		msg := domain.Classify(op, err)
		wasAuthenticated := c.session.IsAuthenticated
		c.applyLocked(domain.AuthFailed{Message: msg})
		if wasAuthenticated {
			c.clearStoreLocked(ctx)
		}
		metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(false)).Inc()
		c.logger.Warn().Err(err).Str("operation", string(op)).Msg("authentication failed")
		return ports.Fail(msg)
	}

	if err := c.establishLocked(ctx, tokens.User, *tokens); err != nil {
		metrics.SessionEventsDiscardedTotal.WithLabelValues(string(op)).Inc()
		metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(false)).Inc()
		c.logger.Warn().Err(err).Str("operation", string(op)).Msg("authenticated session could not be installed")
		return ports.Fail(domain.MsgSessionChanged)
	}
	metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(true)).Inc()
	c.logger.Info().Str("operation", string(op)).Int("user_id", tokens.User.ID).Str("role", tokens.User.Role).Msg("authenticated")
	return ports.Ok(copyUser(tokens.User))
}

// establishLocked installs an authenticated session and persists it. Nothing
// is persisted when the session no longer accepts the transition.
func (c *SessionController) establishLocked(ctx context.Context, user *domain.User, tokens ports.AuthTokens) error {
	_, err := c.applyLocked(domain.AuthSucceeded{
		SessionID:       uuid.NewString(),
		User:            user,
		AccessToken:     tokens.AccessToken,
		RefreshToken:    tokens.RefreshToken,
		AccessExpiresAt: accessExpiry(tokens.AccessToken),
		At:              c.clock.Now(),
	})
	if err != nil {
		return err
	}
	c.persistLocked(ctx)
	return nil
}

// rejectInput answers a command whose required fields are missing, without
// contacting the backend or touching the session.
func (c *SessionController) rejectInput(op domain.Operation, verr error) ports.Result {
	metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(false)).Inc()
	c.logger.Debug().Err(verr).Str("operation", string(op)).Msg("command rejected")
	return ports.Fail(domain.Classify(op, fmt.Errorf("%w: %v", domain.ErrInvalidInput, verr)))
}

// Logout clears the session and the durable store. It never fails.
func (c *SessionController) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	wasAuthenticated := c.session.IsAuthenticated
	c.logoutLocked(ctx)
	if wasAuthenticated {
		c.logger.Info().Msg("logged out")
	}
}

func (c *SessionController) logoutLocked(ctx context.Context) {
	c.gen++
	c.pending = false
	c.applyLocked(domain.LoggedOut{})
	c.clearStoreLocked(ctx)
}

// UpdateProfile replaces the user profile. Failures are returned to the
// caller and never stored as the session error.
func (c *SessionController) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) ports.Result {
	const command = "update_profile"
	if in.IsEmpty() {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgProfileUpdateFailed)
	}

	user, sid, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.User, error) {
		return c.api.UpdateProfile(ctx, token, in)
	})
	if err != nil {
		return c.fail(command, err, domain.MsgProfileUpdateFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.ID != sid {
		return c.fail(command, domain.ErrSessionChanged, domain.MsgProfileUpdateFailed)
	}
	if _, err := c.applyLocked(domain.UserUpdated{User: user}); err != nil {
		return c.fail(command, err, domain.MsgProfileUpdateFailed)
	}
	metrics.CommandsTotal.WithLabelValues(command, metrics.Outcome(true)).Inc()
	return ports.Ok(copyUser(user))
}

// ForgotPassword asks the backend to send a reset code. It never changes
// the authentication state.
func (c *SessionController) ForgotPassword(ctx context.Context, email string) ports.Result {
	const op = domain.OpForgotPassword
	if err := c.validate.Var(email, "required"); err != nil {
		return c.rejectInput(op, err)
	}

	c.beginRequest()
	recovery, err := c.api.ForgotPassword(ctx, email)
	if err != nil {
		return c.endRequest(op, err)
	}
	c.endRequest(op, nil)

	out := ports.PasswordRecovery{}
	if recovery != nil {
		out.Message = recovery.Message
		if c.opts.ExposeResetToken {
			out.ResetToken = recovery.ResetToken
		}
	}
	return ports.Ok(out)
}

// ResetPassword sets a new password with a reset code. It does not log in.
func (c *SessionController) ResetPassword(ctx context.Context, email, token, newPassword string) ports.Result {
	const op = domain.OpResetPassword
	in := struct {
		Email       string `validate:"required"`
		Token       string `validate:"required"`
		NewPassword string `validate:"required"`
	}{email, token, newPassword}
	if err := c.validate.Struct(in); err != nil {
		return c.rejectInput(op, err)
	}

	c.beginRequest()
	if err := c.api.ResetPassword(ctx, email, token, newPassword); err != nil {
		return c.endRequest(op, err)
	}
	return c.endRequest(op, nil)
}

func (c *SessionController) beginRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(domain.ErrorCleared{})
	c.applyLocked(domain.LoadingSet{Loading: true})
}

// endRequest leaves the loading flag to a credential exchange still in
// flight.
func (c *SessionController) endRequest(op domain.Operation, err error) ports.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		msg := domain.Classify(op, err)
		c.applyLocked(domain.RequestFailed{Message: msg, KeepLoading: c.pending})
		metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(false)).Inc()
		c.logger.Warn().Err(err).Str("operation", string(op)).Msg("request failed")
		return ports.Fail(msg)
	}
	if !c.pending {
		c.applyLocked(domain.LoadingSet{Loading: false})
	}
	metrics.CommandsTotal.WithLabelValues(string(op), metrics.Outcome(true)).Inc()
	return ports.Ok(nil)
}

// ClearError drops the current error message.
func (c *SessionController) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Error != "" {
		c.applyLocked(domain.ErrorCleared{})
	}
}

// RecordActivity moves lastActivity forward, at most once per throttle
// window, and reports whether it was written.
func (c *SessionController) RecordActivity(ctx context.Context, signal domain.ActivitySignal) bool {
	if !signal.Valid() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.IsAuthenticated {
		metrics.ActivitySignalsTotal.WithLabelValues(string(signal), "ignored").Inc()
		return false
	}
	now := c.clock.Now()
	if now.Sub(c.session.LastActivity) <= c.opts.ActivityThrottle {
		metrics.ActivitySignalsTotal.WithLabelValues(string(signal), "throttled").Inc()
		return false
	}

	if _, err := c.applyLocked(domain.ActivityRecorded{At: now}); err != nil {
		return false
	}
	if err := c.store.SaveActivity(context.WithoutCancel(ctx), now); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("save_activity").Inc()
		c.logger.Error().Err(err).Msg("could not persist last activity")
	}
	metrics.ActivitySignalsTotal.WithLabelValues(string(signal), "written").Inc()
	return true
}

// CheckInactivity runs one watchdog tick. It logs the session out, without
// an error message, once the inactivity timeout has elapsed.
func (c *SessionController) CheckInactivity(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.IsAuthenticated || c.session.LastActivity.IsZero() {
		return false
	}
	idle := c.clock.Now().Sub(c.session.LastActivity)
	if idle < c.opts.InactivityTimeout {
		return false
	}

	metrics.SessionExpiriesTotal.WithLabelValues("watchdog").Inc()
	c.logger.Info().Dur("idle", idle).Int("user_id", c.session.User.ID).Msg("session expired by inactivity")
	c.logoutLocked(ctx)
	return true
}

// Run drives the inactivity watchdog until ctx is cancelled.
func (c *SessionController) Run(ctx context.Context) {
	ticker := time.NewTicker(c.opts.WatchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckInactivity(ctx)
		}
	}
}

// applyLocked reduces e into the session and publishes the result. Events
// that no longer apply are dropped and reported.
func (c *SessionController) applyLocked(e domain.Event) (domain.Session, error) {
	prev := c.session
	name := domain.EventName(e)

	next, err := domain.Reduce(prev, e)
	if err != nil {
		metrics.SessionEventsDiscardedTotal.WithLabelValues(name).Inc()
		c.logger.Debug().Err(err).Str("event", name).Msg("session event discarded")
		return prev, err
	}

	c.session = next
	from, to := prev.Status(), next.Status()
	metrics.SessionTransitionsTotal.WithLabelValues(string(from), string(to), name).Inc()
	if from != to {
		c.logger.Debug().Str("from", string(from)).Str("to", string(to)).Str("event", name).Msg("session transition")
	}
	c.publishLocked(next)
	return next, nil
}

func (c *SessionController) publishLocked(s domain.Session) {
	for _, ch := range c.subscribers {
		select {
		case ch <- copySession(s):
		default:
		}
	}
}

// persistLocked mirrors the three persisted keys. Store writes outlive the
// caller's context.
func (c *SessionController) persistLocked(ctx context.Context) {
	if err := c.store.Save(context.WithoutCancel(ctx), c.session.Persisted()); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("save").Inc()
		c.logger.Error().Err(err).Msg("could not persist session")
	}
}

func (c *SessionController) clearStoreLocked(ctx context.Context) {
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("clear").Inc()
		c.logger.Error().Err(err).Msg("could not clear persisted session")
	}
}

// accessExpiry reads the exp claim of a JWT access token without verifying
// it. Opaque tokens yield the zero time.
func accessExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func copySession(s domain.Session) domain.Session {
	s.User = copyUser(s.User)
	return s
}
