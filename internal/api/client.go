package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/garenne/internal/session"
)

// Service is the subset of the API the TUI drives. *Client implements it;
// tests substitute fakes.
type Service interface {
	Token() (string, bool)
	Login(ctx context.Context, username, password string) (AuthToken, error)
	Logout() error
	ListFiches(ctx context.Context) ([]Fiche, error)
	CreateFiche(ctx context.Context, fiche FicheCreate) (Fiche, error)
	DeleteFiche(ctx context.Context, id string) error
	PhotoURL(ref string) string
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the shelter HTTP API.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	store       session.Store
	log         zerolog.Logger
	userAgent   string
	photoPrefix string
	placeholder string
	requestID   func() string
}

const (
	defaultBaseURL     = "http://localhost:5001"
	defaultUserAgent   = "garenne/0.1"
	defaultTimeout     = 10 * time.Second
	defaultPhotoPrefix = "/photos/"
	defaultPlaceholder = "default-rabbit.jpg"
	maxBodyBytes       = 8 << 20
	maxLoggedDetail    = 512
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger routes request failure logs to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithPhotos configures how photo references resolve.
func WithPhotos(prefix, placeholder string) Option {
	return func(c *Client) {
		if strings.TrimSpace(prefix) != "" {
			c.photoPrefix = prefix
		}
		if strings.TrimSpace(placeholder) != "" {
			c.placeholder = placeholder
		}
	}
}

// NewClient builds a Client for baseURL. The session store is the only place
// the bearer token is read from or written to.
func NewClient(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:     base,
		http:        &http.Client{Timeout: defaultTimeout},
		store:       store,
		log:         zerolog.Nop(),
		userAgent:   defaultUserAgent,
		photoPrefix: defaultPhotoPrefix,
		placeholder: defaultPlaceholder,
		requestID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Token returns the stored session token.
func (c *Client) Token() (string, bool) {
	return c.store.Token()
}

// HasToken reports whether a session token is stored.
func (c *Client) HasToken() bool {
	_, ok := c.store.Token()
	return ok
}

// SetToken stores t as the session token. Its shape is not checked.
func (c *Client) SetToken(t string) error {
	return c.store.SetToken(t)
}

// ClearToken erases the session token.
func (c *Client) ClearToken() error {
	return c.store.ClearToken()
}

// RequestOption adjusts the headers of a single request.
type RequestOption func(http.Header)

// WithHeader sets a header after the defaults, so it overrides them.
func WithHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

func withoutAuthorization() RequestOption {
	return func(h http.Header) {
		h.Del("Authorization")
	}
}

// Request sends one JSON request to endpoint and decodes the response into
// dest (which may be nil). body, when non-nil, is JSON encoded. Every failure
// comes back as *Error.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, dest any, opts ...RequestOption) error {
	if c == nil {
		return &Error{Kind: KindUnknown, Message: "client is nil"}
	}
	rel, err := url.Parse(endpoint)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("parse endpoint %q", endpoint), Err: err}
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: "encode request: " + err.Error(), Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "create request: " + err.Error(), Err: err}
	}
	reqID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req.Header)
	}

	logger := c.log.With().
		Str("method", method).
		Str("path", rel.Path).
		Str("request_id", reqID).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("request failed")
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("read response failed")
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, raw)
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("kind", apiErr.Kind.String()).
			Str("detail", ansi.Truncate(apiErr.Message, maxLoggedDetail, "…")).
			Msg("api returned error status")
		return apiErr
	}

	if err := decodeBody(raw, dest); err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("decode response failed")
		return &Error{Status: resp.StatusCode, Kind: KindUnknown, Message: "decode response: " + err.Error(), Err: err}
	}
	logger.Debug().Int("status", resp.StatusCode).Msg("request ok")
	return nil
}

// decodeBody parses raw as JSON even when the caller ignores the result. An
// empty body (204 responses) decodes to nothing.
func decodeBody(raw []byte, dest any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if dest == nil {
		var discard any
		return json.Unmarshal(raw, &discard)
	}
	return json.Unmarshal(raw, dest)
}

// Login exchanges credentials for an access token and stores it. Nothing is
// stored when the call fails.
func (c *Client) Login(ctx context.Context, username, password string) (AuthToken, error) {
	var payload AuthToken
	if err := c.Request(ctx, http.MethodPost, "/auth/token", Credentials{Username: username, Password: password}, &payload, withoutAuthorization()); err != nil {
		return AuthToken{}, err
	}
	if err := c.store.SetToken(payload.AccessToken); err != nil {
		return AuthToken{}, &Error{Kind: KindUnknown, Message: "store token: " + err.Error(), Err: err}
	}
	return payload, nil
}

// Logout forgets the session token. It never touches the network.
func (c *Client) Logout() error {
	return c.store.ClearToken()
}

// PhotoURL resolves a photo reference. Empty references resolve to the
// placeholder image.
func (c *Client) PhotoURL(ref string) string {
	name := strings.TrimSpace(ref)
	if name == "" {
		name = c.placeholder
	}
	return c.baseURL.JoinPath(c.photoPrefix, name).String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
