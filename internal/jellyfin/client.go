package jellyfin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vmunix/vidio/internal/metrics"
	"github.com/vmunix/vidio/pkg/stats"
)

const (
	defaultClientName = "Vidio"
	defaultDevice     = "vidiod"
	defaultVersion    = "1.0.0"

	// maxErrorBody bounds how much of an error response ends up in APIError.
	maxErrorBody = 512
)

// API is the subset of the Jellyfin API vidio depends on.
// Both Client and BreakerClient implement it.
type API interface {
	AuthenticateByName(ctx context.Context, username, password string) (*Session, error)
	PlayedItems(ctx context.Context, s Session) ([]stats.MediaItem, error)
	AllSeries(ctx context.Context, s Session) ([]stats.SeriesSummary, error)
	PublicInfo(ctx context.Context) (*PublicInfo, error)
}

var _ API = (*Client)(nil)

// Client talks to a single Jellyfin server.
type Client struct {
	baseURL    string
	clientName string
	device     string
	deviceID   string
	version    string
	httpClient *http.Client
	cache      *seriesCache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCacheTTL enables caching of series totals per user for ttl.
// Caching is off by default; a zero or negative TTL keeps it off.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newSeriesCache(ttl)
	}
}

// WithIdentity sets the client name, device name and device ID reported
// in the authorization header. Empty values keep the defaults.
func WithIdentity(clientName, device, deviceID string) Option {
	return func(c *Client) {
		if clientName != "" {
			c.clientName = clientName
		}
		if device != "" {
			c.device = device
		}
		if deviceID != "" {
			c.deviceID = deviceID
		}
	}
}

// WithVersion sets the client version reported to the server.
func WithVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "jellyfin")
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		clientName: defaultClientName,
		device:     defaultDevice,
		deviceID:   "vidio-" + uuid.NewString(),
		version:    defaultVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newSeriesCache(0),
		log:   slog.Default().With("component", "jellyfin"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthenticateByName logs a user in with username and password.
// Rejected credentials return ErrUnauthorized.
func (c *Client) AuthenticateByName(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(authRequest{Username: username, Pw: password})
	if err != nil {
		return nil, fmt.Errorf("marshal auth request: %w", err)
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/Users/AuthenticateByName", nil, "", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("authenticate: %w", ErrUnauthorized)
	}

	s := &Session{
		ServerURL:   c.baseURL,
		AccessToken: resp.AccessToken,
		UserID:      resp.SessionInfo.UserID,
		Username:    resp.SessionInfo.UserName,
	}
	if s.UserID == "" {
		s.UserID = resp.User.ID
	}
	if s.Username == "" {
		s.Username = resp.User.Name
	}

	// A fresh login starts from fresh episode totals.
	c.Invalidate(s.UserID)

	c.log.Info("authenticated", "user", s.Username, "user_id", s.UserID)
	return s, nil
}

// PlayedItems returns every played series, movie and episode of the user.
func (c *Client) PlayedItems(ctx context.Context, s Session) ([]stats.MediaItem, error) {
	if !s.Valid() {
		return nil, ErrInvalidSession
	}

	q := url.Values{}
	q.Set("Recursive", "true")
	q.Set("IsPlayed", "true")
	q.Set("IncludeItemTypes", "Series,Movie,Episode")
	q.Set("Fields", "RunTimeTicks,RecursiveItemCount")

	var resp playedItemsResponse
	if err := c.do(ctx, http.MethodGet, userItemsPath(s.UserID), q, s.AccessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []stats.MediaItem{}, nil
	}
	return resp.Items, nil
}

// AllSeries returns every series visible to the user with its episode total.
// Results are cached per user only when WithCacheTTL enabled caching.
func (c *Client) AllSeries(ctx context.Context, s Session) ([]stats.SeriesSummary, error) {
	if !s.Valid() {
		return nil, ErrInvalidSession
	}

	if series, ok := c.cache.get(s.UserID); ok {
		metrics.SeriesCacheLookups.WithLabelValues("hit").Inc()
		return series, nil
	}
	metrics.SeriesCacheLookups.WithLabelValues("miss").Inc()

	q := url.Values{}
	q.Set("Recursive", "true")
	q.Set("IncludeItemTypes", "Series")
	q.Set("Fields", "RecursiveItemCount")

	var resp seriesResponse
	if err := c.do(ctx, http.MethodGet, userItemsPath(s.UserID), q, s.AccessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []stats.SeriesSummary{}
	}

	c.cache.set(s.UserID, resp.Items)
	return resp.Items, nil
}

// PublicInfo returns the server identity. No authentication is required.
func (c *Client) PublicInfo(ctx context.Context) (*PublicInfo, error) {
	var info PublicInfo
	if err := c.do(ctx, http.MethodGet, "/System/Info/Public", nil, "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func userItemsPath(userID string) string {
	return "/Users/" + url.PathEscape(userID) + "/Items"
}

// authorization builds the X-Emby-Authorization header value.
func (c *Client) authorization(token string) string {
	v := fmt.Sprintf(`MediaBrowser Client=%q, Device=%q, DeviceId=%q, Version=%q`,
		c.clientName, c.device, c.deviceID, c.version)
	if token != "" {
		v += fmt.Sprintf(`, Token=%q`, token)
	}
	return v
}

// do performs a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, token string, body []byte, out any) error {
	fullURL := c.baseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Emby-Authorization", c.authorization(token))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.JellyfinRequests.WithLabelValues(metricEndpoint(endpoint), "error").Inc()
		return fmt.Errorf("jellyfin %s request failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.JellyfinRequests.WithLabelValues(metricEndpoint(endpoint), "unauthorized").Inc()
		c.log.Debug("request rejected", "endpoint", endpoint, "status", resp.StatusCode)
		return fmt.Errorf("jellyfin %s: %w", endpoint, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.JellyfinRequests.WithLabelValues(metricEndpoint(endpoint), "error").Inc()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	metrics.JellyfinRequests.WithLabelValues(metricEndpoint(endpoint), "success").Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode jellyfin %s response: %w", endpoint, err)
	}
	return nil
}

// metricEndpoint collapses user-scoped paths so label cardinality stays fixed.
func metricEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "/Users/") && strings.HasSuffix(endpoint, "/Items") {
		return "/Users/{id}/Items"
	}
	return endpoint
}
