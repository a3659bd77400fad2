package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/consultorio-juridico/portal-session/internal/api/metrics"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

var errNoRefreshToken = errors.New("no refresh token")

// authorizedCall is a backend request made with the current access token.
type authorizedCall[T any] func(ctx context.Context, accessToken string) (T, error)

// authorized runs call with the session's access token. A 401 triggers one
// refresh and one retry with the new token; a failed refresh logs the
// session out and the original 401 is returned. It also returns the ID of
// the session the call ran under. Results that arrive after that session
// ended are discarded with ErrSessionChanged.
func authorized[T any](ctx context.Context, c *SessionController, call authorizedCall[T]) (T, string, error) {
	var zero T

	snap := c.Snapshot()
	if !snap.IsAuthenticated {
		return zero, "", domain.ErrNotAuthenticated
	}
	sid := snap.ID

	out, err := call(ctx, snap.AccessToken)
	if err != nil && domain.IsUnauthorized(err) {
		token, rerr := c.refresh(ctx, sid, snap.AccessToken)
		if rerr != nil {
			if errors.Is(rerr, domain.ErrSessionChanged) {
				return zero, sid, rerr
			}
			return zero, sid, err
		}
		out, err = call(ctx, token)
	}
	if err != nil {
		return zero, sid, err
	}

	if c.currentID() != sid {
		metrics.SessionEventsDiscardedTotal.WithLabelValues("authorized_result").Inc()
		return zero, sid, domain.ErrSessionChanged
	}
	return out, sid, nil
}

// refresh returns a fresh access token for session sid. rejected is the
// token the backend just refused; when the session already holds a newer
// one it is returned without another exchange. Concurrent refreshes of the
// same session share one backend call.
func (c *SessionController) refresh(ctx context.Context, sid, rejected string) (string, error) {
	c.mu.Lock()
	if c.session.ID != sid {
		c.mu.Unlock()
		metrics.TokenRefreshTotal.WithLabelValues("stale").Inc()
		return "", domain.ErrSessionChanged
	}
	if c.session.AccessToken != rejected {
		token := c.session.AccessToken
		c.mu.Unlock()
		return token, nil
	}
	if c.session.RefreshToken == "" {
		c.logger.Info().Msg("access token rejected and no refresh token, logging out")
		c.logoutLocked(ctx)
		c.mu.Unlock()
		metrics.TokenRefreshTotal.WithLabelValues("no_refresh_token").Inc()
		return "", errNoRefreshToken
	}
	refreshToken := c.session.RefreshToken
	c.mu.Unlock()

	v, err, _ := c.refreshes.Do(sid, func() (any, error) {
		return c.exchangeRefreshToken(context.WithoutCancel(ctx), sid, refreshToken)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *SessionController) exchangeRefreshToken(ctx context.Context, sid, refreshToken string) (string, error) {
	tokens, err := c.api.Refresh(ctx, refreshToken)
	if err == nil && (tokens == nil || tokens.AccessToken == "") {
		err = domain.ErrIncompleteSession
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.ID != sid {
		metrics.TokenRefreshTotal.WithLabelValues("stale").Inc()
		c.logger.Info().Msg("refresh result discarded, session changed meanwhile")
		return "", domain.ErrSessionChanged
	}
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		c.logger.Warn().Err(err).Msg("token refresh failed, logging out")
		c.logoutLocked(ctx)
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	if _, err := c.applyLocked(domain.TokensRefreshed{
		AccessToken:     tokens.AccessToken,
		RefreshToken:    tokens.RefreshToken,
		AccessExpiresAt: accessExpiry(tokens.AccessToken),
	}); err != nil {
		return "", err
	}
	c.persistLocked(ctx)
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	c.logger.Debug().Msg("access token refreshed")
	return tokens.AccessToken, nil
}

func (c *SessionController) currentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ID
}
