package taxisdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrSessionExpired is returned without a round trip once the token's
// lifetime has passed.
var ErrSessionExpired = errors.New("taxisdk: session expired, log in again")

// Session performs requests as one signed-in driver.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt is zero when the lifetime is unknown.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return nil, ErrSessionExpired
	}
	return s.client.doRequest(ctx, method, path, s.token, body)
}

// get decodes a 200 response from path into target.
func (s *Session) get(ctx context.Context, path string, target any) error {
	resp, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

// write posts body to path and decodes the 302 success body into target.
func (s *Session) write(ctx context.Context, path string, body, target any) error {
	resp, err := s.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusFound)
}

// Stats returns the home page counts.
func (s *Session) Stats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := s.get(ctx, "/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func listPath(base, param string, opts ListOptions) string {
	q := url.Values{}
	if opts.Search != "" {
		q.Set(param, opts.Search)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}
