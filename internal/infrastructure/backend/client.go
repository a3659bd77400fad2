// Package backend is the HTTP client of the clinic backend. Credentials are
// passed per call and set while building each request; the client keeps no
// per-session state.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/consultorio-juridico/portal-session/internal/api/metrics"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	maxErrorBodySize = 1 << 20
	requestIDHeader  = "X-Request-ID"
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.BackendAPI over HTTP.
type Client struct {
	baseURL   string
	healthURL string
	http      *http.Client
	log       zerolog.Logger
}

var _ ports.BackendAPI = (*Client)(nil)

// NewClient builds a client. The backend health probe lives at /health on
// the same origin as BaseURL.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	health := *base
	health.Path = "/health"
	health.RawQuery = ""

	return &Client{
		baseURL:   base.String(),
		healthURL: health.String(),
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       log,
	}, nil
}

// request describes one backend call. route is the path template used as
// the metrics label; path is the concrete path.
type request struct {
	method string
	route  string
	path   string
	token  string
	body   any
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		raw, ok := r.body.(json.RawMessage)
		if !ok {
			var err error
			raw, err = json.Marshal(r.body)
			if err != nil {
				return nil, fmt.Errorf("encode %s body: %w", r.route, err)
			}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.method, r.route, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	return req, nil
}

// send performs r and returns the response of a 2xx answer. Anything else
// is an *domain.APIError, or ErrNoResponse when nothing came back.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(r.route, "no_response").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("method", r.method).Str("route", r.route).
			Str("request_id", req.Header.Get(requestIDHeader)).Msg("backend unreachable")
		return nil, fmt.Errorf("%s %s: %w: %v", r.method, r.route, domain.ErrNoResponse, err)
	}
	metrics.BackendRequestDuration.WithLabelValues(r.route, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := decodeAPIError(resp)
		c.log.Debug().Int("status", resp.StatusCode).Str("method", r.method).Str("route", r.route).
			Str("request_id", req.Header.Get(requestIDHeader)).Msg("backend error response")
		return nil, fmt.Errorf("%s %s: %w", r.method, r.route, apiErr)
	}
	return resp, nil
}

// do performs r and decodes a JSON answer into out, when out is not nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", r.method, r.route, err)
	}
	return nil
}

// decodeAPIError reads the {"detail": ...} payload of an error answer. The
// detail is a string, an object {message, requirements}, or a list of
// validation errors.
func decodeAPIError(resp *http.Response) *domain.APIError {
	apiErr := &domain.APIError{Status: resp.StatusCode}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var text string
	if json.Unmarshal(payload.Detail, &text) == nil {
		apiErr.Detail = text
		return apiErr
	}

	var obj struct {
		Message      string   `json:"message"`
		Requirements []string `json:"requirements"`
	}
	if json.Unmarshal(payload.Detail, &obj) == nil {
		apiErr.DetailMessage = obj.Message
		apiErr.Requirements = obj.Requirements
		return apiErr
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(payload.Detail, &list) == nil && len(list) > 0 {
		apiErr.DetailMessage = list[0].Msg
	}
	return apiErr
}

// Ping checks the backend health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend health: %w: %v", domain.ErrNoResponse, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend health: status %d", resp.StatusCode)
	}
	return nil
}

// filename extracts the attachment name of a Content-Disposition header.
func filename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
