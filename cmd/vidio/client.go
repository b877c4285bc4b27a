package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	v1 "github.com/vmunix/vidio/internal/api/v1"
	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/jellyfin"
	"github.com/vmunix/vidio/pkg/stats"
)

// Client wraps HTTP calls to the vidio server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	adminToken string
}

// NewClient creates a new vidio API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithAdminToken returns the client with an admin bearer token attached to
// every request.
func (c *Client) WithAdminToken(token string) *Client {
	c.adminToken = token
	return c
}

func (c *Client) do(method, path string, header http.Header, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(bytes.TrimSpace(respBody)))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, nil, result)
}

func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, nil, body, result)
}

func (c *Client) put(path string, body, result any) error {
	return c.do(http.MethodPut, path, nil, body, result)
}

func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil, nil)
}

// Status returns the server health and upstream reachability.
func (c *Client) Status() (*v1.StatusResponse, error) {
	var resp v1.StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Landing returns the anniversary page copy for lang ("" lets the server pick).
func (c *Client) Landing(lang string) (*v1.LandingResponse, error) {
	path := "/api/v1/landing"
	if lang != "" {
		path += "?lang=" + url.QueryEscape(lang)
	}
	var resp v1.LandingResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListChangelog returns a page of changelog entries, newest first.
func (c *Client) ListChangelog(limit, offset int) (*v1.ListChangelogResponse, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/v1/changelog"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var resp v1.ListChangelogResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchChangelog runs a fuzzy search over changelog entries.
func (c *Client) SearchChangelog(query string, limit int) (*v1.SearchChangelogResponse, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp v1.SearchChangelogResponse
	if err := c.get("/api/v1/changelog?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetChangelog(id int64) (*changelog.Entry, error) {
	var e changelog.Entry
	if err := c.get(fmt.Sprintf("/api/v1/changelog/%d", id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) AddChangelog(req v1.ChangelogRequest) (*changelog.Entry, error) {
	var e changelog.Entry
	if err := c.post("/api/v1/changelog", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateChangelog(id int64, req v1.UpdateChangelogRequest) (*changelog.Entry, error) {
	var e changelog.Entry
	if err := c.put(fmt.Sprintf("/api/v1/changelog/%d", id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteChangelog(id int64) error {
	return c.delete(fmt.Sprintf("/api/v1/changelog/%d", id))
}

// ImportChangelog replaces the whole changelog with entries.
func (c *Client) ImportChangelog(entries []v1.ChangelogRequest) (*v1.ImportChangelogResponse, error) {
	var resp v1.ImportChangelogResponse
	if err := c.put("/api/v1/changelog", v1.ImportChangelogRequest{Entries: entries}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Settings returns every setting with its effective value.
func (c *Client) Settings() (map[string]string, error) {
	var resp map[string]string
	if err := c.get("/api/v1/settings", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SetSetting stores value under key. An empty value restores the default.
func (c *Client) SetSetting(key, value string) (*v1.SettingResponse, error) {
	var resp v1.SettingResponse
	if err := c.put("/api/v1/settings/"+url.PathEscape(key), v1.SettingRequest{Value: value}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin exchanges the admin password for a bearer token.
func (c *Client) AdminLogin(password string) (*auth.Token, error) {
	var tok auth.Token
	if err := c.post("/api/v1/admin/login", v1.AdminLoginRequest{Password: password}, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// AdminLogout revokes the client's admin token.
func (c *Client) AdminLogout() error {
	return c.post("/api/v1/admin/logout", nil, nil)
}

// JellyfinLogin authenticates against the server's Jellyfin instance.
func (c *Client) JellyfinLogin(username, password string) (*jellyfin.Session, error) {
	var s jellyfin.Session
	req := v1.JellyfinLoginRequest{Username: username, Password: password}
	if err := c.post("/api/v1/jellyfin/login", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Stats computes viewing statistics for the session's user.
func (c *Client) Stats(session jellyfin.Session) (*stats.UserStats, error) {
	header := http.Header{}
	header.Set(v1.TokenHeader, session.AccessToken)
	path := "/api/v1/stats?user_id=" + url.QueryEscape(session.UserID)

	var resp stats.UserStats
	if err := c.do(http.MethodGet, path, header, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
