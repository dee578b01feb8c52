// ABOUTME: Shared HTTP client for the product-management portal API
// ABOUTME: Injects bearer tokens and maps 401/403 onto the session lifecycle

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/produkportal/produk-cli/internal/session"
)

// TokenStore is the durable slot storage the client reads tokens from and
// writes refreshed tokens into. Satisfied by session.Store.
type TokenStore interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
	Clear()
}

// Navigator receives the navigation side effects of auth failures. The TUI
// switches screens; plain commands print an instruction.
type Navigator interface {
	// SessionExpired is the login redirect: the session is gone.
	SessionExpired()
	// Forbidden is the 403 redirect: authenticated but not allowed.
	Forbidden()
}

// NopNavigator ignores navigation. Useful in tests.
type NopNavigator struct{}

func (NopNavigator) SessionExpired() {}
func (NopNavigator) Forbidden()      {}

// Client is the single shared API client. All portal calls go through do,
// so every request carries the stored access token and every failure runs
// the same interceptor logic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	nav        Navigator

	// refreshes are de-duplicated per refresh token so concurrent 401s
	// trigger one upstream call instead of a refresh storm
	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNavigator installs the navigation collaborator.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

// New creates an API client for the given base URL, reading and writing
// tokens through the given store.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		nav:    NopNavigator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a request and decodes the envelope's data into out (when
// non-nil). It returns the envelope's meta block for list endpoints.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) (*Meta, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		if q := BuildQuery(query); q != "" {
			url += "?" + q
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach the stored access token when present. Unauthenticated
	// requests pass through unmodified.
	if token := c.tokens.Get(session.SlotAccess); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	decoded := json.Unmarshal(raw, &env) == nil

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, c.unauthorized(&env, resp.StatusCode)
	case resp.StatusCode == http.StatusForbidden:
		c.nav.Forbidden()
		return nil, apiError(&env, resp.StatusCode, ErrForbidden)
	case !success(resp.StatusCode):
		return nil, apiError(&env, resp.StatusCode, nil)
	}

	if !decoded {
		return nil, fmt.Errorf("invalid response from backend: %s", strings.TrimSpace(string(raw)))
	}
	if env.Code != 0 && !success(env.Code) {
		return nil, apiError(&env, resp.StatusCode, nil)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return env.Meta, nil
}

// unauthorized implements the 401 interceptor. With a refresh token the
// refresh flow runs asynchronously and the original request still fails:
// the caller retries after refresh completes, never silently resolves.
// Without one the session is unrecoverable.
func (c *Client) unauthorized(env *Envelope, status int) error {
	refresh := c.tokens.Get(session.SlotRefresh)
	if refresh == "" {
		c.terminateSession()
		return apiError(env, status, ErrSessionExpired)
	}

	go c.refreshToken(refresh)
	return apiError(env, status, ErrUnauthorized)
}

// Refresh proactively exchanges the stored refresh token for a new access
// token. Used by the session bootstrap when the stored expiry has passed.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.tokens.Get(session.SlotRefresh)
	if refresh == "" {
		c.terminateSession()
		return ErrSessionExpired
	}
	return c.refreshToken(refresh)
}

// refreshToken runs the refresh flow at most once per token no matter how
// many callers hit it concurrently.
func (c *Client) refreshToken(refresh string) error {
	_, err, _ := c.refreshGroup.Do(refresh, func() (any, error) {
		return nil, c.exchangeRefreshToken(refresh)
	})
	return err
}

// exchangeRefreshToken posts the refresh token and overwrites the access
// slot on success. The refresh token itself is not rotated; the backend
// keeps it stable. Any failure is a hard session termination.
func (c *Client) exchangeRefreshToken(refresh string) error {
	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/"+routeRefresh, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.terminateSession()
		return ErrSessionExpired
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !success(resp.StatusCode) {
		c.terminateSession()
		return ErrSessionExpired
	}

	var data struct {
		Token struct {
			Access  string `json:"access"`
			Timeout string `json:"timeout"`
		} `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token.Access == "" {
		c.terminateSession()
		return ErrSessionExpired
	}

	c.tokens.Set(session.SlotAccess, data.Token.Access)
	if data.Token.Timeout != "" {
		c.tokens.Set(session.SlotTimeout, data.Token.Timeout)
	}
	return nil
}

// terminateSession purges all durable session state and navigates to the
// login destination. This is the only fatal path; there is no retry.
func (c *Client) terminateSession() {
	c.tokens.Clear()
	c.nav.SessionExpired()
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// apiError builds an APIError from a decoded envelope, wrapping the given
// sentinel when the failure belongs to the auth taxonomy.
func apiError(env *Envelope, status int, sentinel error) error {
	return &APIError{
		Status:   status,
		Code:     env.Code,
		Message:  env.Message,
		Failures: env.Errors,
		err:      sentinel,
	}
}
