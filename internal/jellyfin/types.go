// Package jellyfin provides a client for the Jellyfin (and Emby) REST API.
package jellyfin

import "github.com/vmunix/vidio/pkg/stats"

// Session is an authenticated Jellyfin user session.
type Session struct {
	ServerURL   string `json:"server_url" toml:"server_url"`
	AccessToken string `json:"access_token" toml:"access_token"`
	UserID      string `json:"user_id" toml:"user_id"`
	Username    string `json:"username" toml:"username"`
}

// Valid reports whether the session can be used for user-scoped requests.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.UserID != ""
}

// PublicInfo is the unauthenticated server identity from /System/Info/Public.
type PublicInfo struct {
	ServerName      string `json:"ServerName"`
	Version         string `json:"Version"`
	ID              string `json:"Id"`
	ProductName     string `json:"ProductName"`
	OperatingSystem string `json:"OperatingSystem"`
}

// authRequest is the body of POST /Users/AuthenticateByName.
type authRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// authResponse is the subset of the AuthenticateByName response we use.
type authResponse struct {
	AccessToken string `json:"AccessToken"`
	SessionInfo struct {
		UserID   string `json:"UserId"`
		UserName string `json:"UserName"`
	} `json:"SessionInfo"`
	User struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"User"`
}

// playedItemsResponse is the /Users/{id}/Items envelope for played items.
type playedItemsResponse struct {
	Items            []stats.MediaItem `json:"Items"`
	TotalRecordCount int               `json:"TotalRecordCount"`
}

// seriesResponse is the /Users/{id}/Items envelope for series.
type seriesResponse struct {
	Items            []stats.SeriesSummary `json:"Items"`
	TotalRecordCount int                   `json:"TotalRecordCount"`
}
