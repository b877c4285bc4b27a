// internal/api/v1/api_test.go
package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/vmunix/vidio/internal/api/v1/mocks"
	"github.com/vmunix/vidio/internal/auth"
	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/jellyfin"
	"github.com/vmunix/vidio/internal/landing"
	"github.com/vmunix/vidio/internal/migrations"
	"github.com/vmunix/vidio/internal/settings"
	"github.com/vmunix/vidio/pkg/stats"
)

const adminPassword = "s3cret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open db")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err, "apply schema")
	return db
}

type testEnv struct {
	srv       *Server
	handler   http.Handler
	changelog *changelog.Store
	settings  *settings.Store
	gate      *auth.Gate
}

// newTestEnv builds a server on real stores. jf and st may be nil.
func newTestEnv(t *testing.T, jf JellyfinAPI, st StatsFetcher, cfg Config) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	catalog, err := landing.Load("en")
	require.NoError(t, err)

	env := &testEnv{
		changelog: changelog.NewStore(db),
		settings:  settings.NewStore(db),
		gate:      auth.NewGate(string(hash), time.Hour, auth.WithLogger(testLogger())),
	}
	deps := ServerDeps{
		Changelog: env.changelog,
		Settings:  env.settings,
		Landing:   catalog,
		Gate:      env.gate,
	}
	if jf != nil {
		deps.Jellyfin = jf
	}
	if st != nil {
		deps.Stats = st
	}
	if cfg.Logger == nil {
		cfg.Logger = testLogger()
	}

	env.srv, err = New(deps, cfg)
	require.NoError(t, err)
	env.handler = env.srv.Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) adminHeaders(t *testing.T) map[string]string {
	t.Helper()
	tok, err := e.gate.Login(adminPassword)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok.Token}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := decode[errorResponse](t, w)
	assert.Equal(t, code, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestNew_MissingDependency(t *testing.T) {
	_, err := New(ServerDeps{}, Config{})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestStatus_NoJellyfin(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{Version: "1.2.3"})

	w := env.do(t, http.MethodGet, "/api/v1/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[StatusResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.True(t, resp.Admin)
	assert.False(t, resp.Jellyfin.Configured)
}

func TestStatus_JellyfinReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	jf := mocks.NewMockJellyfinAPI(ctrl)
	jf.EXPECT().PublicInfo(gomock.Any()).Return(&jellyfin.PublicInfo{ServerName: "home", Version: "10.9.11"}, nil)

	env := newTestEnv(t, jf, nil, Config{})
	resp := decode[StatusResponse](t, env.do(t, http.MethodGet, "/api/v1/status", "", nil))

	assert.True(t, resp.Jellyfin.Configured)
	assert.True(t, resp.Jellyfin.Reachable)
	assert.Equal(t, "home", resp.Jellyfin.ServerName)
	assert.Equal(t, "10.9.11", resp.Jellyfin.Version)
	assert.Equal(t, "dev", resp.Version)
}

func TestStatus_JellyfinDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	jf := mocks.NewMockJellyfinAPI(ctrl)
	jf.EXPECT().PublicInfo(gomock.Any()).Return(nil, errors.New("connection refused"))

	env := newTestEnv(t, jf, nil, Config{})
	w := env.do(t, http.MethodGet, "/api/v1/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code, "status stays 200 when upstream is down")
	resp := decode[StatusResponse](t, w)
	assert.False(t, resp.Jellyfin.Reachable)
	assert.Contains(t, resp.Jellyfin.Error, "connection refused")
}

func TestLanding(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})

	w := env.do(t, http.MethodGet, "/api/v1/landing", "", map[string]string{"Accept-Language": "fr-FR,fr;q=0.9"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fr", w.Header().Get("Content-Language"))

	resp := decode[LandingResponse](t, w)
	assert.Equal(t, "fr", resp.Lang)
	assert.Equal(t, "Merci", resp.Heading)
	assert.NotEmpty(t, resp.Paragraphs)
	assert.Equal(t, settings.DefaultRevealImage, resp.RevealImage)
	assert.ElementsMatch(t, []string{"en", "fr"}, resp.Languages)

	w = env.do(t, http.MethodGet, "/api/v1/landing?lang=en", "", map[string]string{"Accept-Language": "fr"})
	assert.Equal(t, "en", decode[LandingResponse](t, w).Lang)
}

func TestLanding_UsesRevealSetting(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	require.NoError(t, env.settings.Set(settings.KeyRevealImage, "https://img.example.com/x.png"))

	resp := decode[LandingResponse](t, env.do(t, http.MethodGet, "/api/v1/landing", "", nil))
	assert.Equal(t, "https://img.example.com/x.png", resp.RevealImage)
}

func TestChangelog_CRUD(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	admin := env.adminHeaders(t)

	// create
	w := env.do(t, http.MethodPost, "/api/v1/changelog",
		`{"version":"1.0.0","title":"Launch","body":"Hello","published_at":"2025-01-01T00:00:00Z"}`, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[changelog.Entry](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Launch", created.Title)

	// list
	w = env.do(t, http.MethodGet, "/api/v1/changelog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListChangelogResponse](t, w)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, defaultChangelogLimit, list.Limit)
	require.Len(t, list.Items, 1)

	// get
	path := "/api/v1/changelog/" + strconv.FormatInt(created.ID, 10)
	w = env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0.0", decode[changelog.Entry](t, w).Version)

	// partial update
	w = env.do(t, http.MethodPut, path, `{"title":"Launch day"}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[changelog.Entry](t, w)
	assert.Equal(t, "Launch day", updated.Title)
	assert.Equal(t, "Hello", updated.Body, "unset fields are unchanged")

	// delete
	w = env.do(t, http.MethodDelete, path, "", admin)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assertError(t, env.do(t, http.MethodGet, path, "", nil), http.StatusNotFound, "NOT_FOUND")
}

func TestChangelog_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})

	tests := []struct {
		method, path, body string
		headers            map[string]string
	}{
		{http.MethodPost, "/api/v1/changelog", `{"version":"1","title":"x"}`, nil},
		{http.MethodPut, "/api/v1/changelog/1", `{"title":"x"}`, map[string]string{"Authorization": "Bearer bogus"}},
		{http.MethodDelete, "/api/v1/changelog/1", "", map[string]string{"Authorization": "Basic abc"}},
		{http.MethodPut, "/api/v1/settings/reveal_image", `{"value":"https://x.example.com/a.png"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assertError(t, env.do(t, tt.method, tt.path, tt.body, tt.headers), http.StatusUnauthorized, "UNAUTHORIZED")
		})
	}
}

func TestChangelog_Errors(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	admin := env.adminHeaders(t)
	require.NoError(t, env.changelog.Add(&changelog.Entry{Version: "1.0.0", Title: "Launch"}))

	assertError(t, env.do(t, http.MethodPost, "/api/v1/changelog", `{"version":"1.0.0","title":"again"}`, admin),
		http.StatusConflict, "CONFLICT")
	assertError(t, env.do(t, http.MethodPost, "/api/v1/changelog", `{"version":"2.0.0","title":""}`, admin),
		http.StatusBadRequest, "BAD_REQUEST")
	assertError(t, env.do(t, http.MethodPost, "/api/v1/changelog", `{not json`, admin),
		http.StatusBadRequest, "BAD_REQUEST")
	assertError(t, env.do(t, http.MethodGet, "/api/v1/changelog/abc", "", nil),
		http.StatusBadRequest, "BAD_REQUEST")
	assertError(t, env.do(t, http.MethodPut, "/api/v1/changelog/999", `{"title":"x"}`, admin),
		http.StatusNotFound, "NOT_FOUND")
	assertError(t, env.do(t, http.MethodDelete, "/api/v1/changelog/999", "", admin),
		http.StatusNotFound, "NOT_FOUND")
}

func TestChangelog_Import(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	admin := env.adminHeaders(t)
	require.NoError(t, env.changelog.Add(&changelog.Entry{Version: "0.1.0", Title: "Old"}))

	w := env.do(t, http.MethodPut, "/api/v1/changelog",
		`{"entries":[{"version":"1.0.0","title":"Launch"},{"version":"1.1.0","title":"Stats"}]}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decode[ImportChangelogResponse](t, w).Imported)

	_, total, err := env.changelog.List(changelog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// A rejected entry leaves the previous import in place.
	assertError(t, env.do(t, http.MethodPut, "/api/v1/changelog",
		`{"entries":[{"version":"2.0.0","title":"New"},{"version":"2.0.0","title":"Dup"}]}`, admin),
		http.StatusConflict, "CONFLICT")
	_, total, err = env.changelog.List(changelog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	assertError(t, env.do(t, http.MethodPut, "/api/v1/changelog", `{"entries":[]}`, nil),
		http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestChangelog_Search(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	require.NoError(t, env.changelog.Add(&changelog.Entry{Version: "1.0.0", Title: "Anniversary page"}))
	require.NoError(t, env.changelog.Add(&changelog.Entry{Version: "1.1.0", Title: "Watch statistics"}))

	w := env.do(t, http.MethodGet, "/api/v1/changelog?q=statistcs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[SearchChangelogResponse](t, w)
	assert.Equal(t, "statistcs", resp.Query)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "1.1.0", resp.Items[0].Entry.Version)
}

func TestChangelog_ListPagination(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	for i, v := range []string{"1.0.0", "1.1.0", "1.2.0"} {
		require.NoError(t, env.changelog.Add(&changelog.Entry{
			Version: v, Title: "release", PublishedAt: time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC),
		}))
	}

	resp := decode[ListChangelogResponse](t, env.do(t, http.MethodGet, "/api/v1/changelog?limit=1&offset=1", "", nil))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "1.1.0", resp.Items[0].Version)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	admin := env.adminHeaders(t)

	all := decode[map[string]string](t, env.do(t, http.MethodGet, "/api/v1/settings", "", nil))
	assert.Equal(t, settings.DefaultRevealImage, all[settings.KeyRevealImage])

	w := env.do(t, http.MethodPut, "/api/v1/settings/reveal_image", `{"value":"https://img.example.com/bg.png"}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, SettingResponse{Key: "reveal_image", Value: "https://img.example.com/bg.png"}, decode[SettingResponse](t, w))

	assertError(t, env.do(t, http.MethodPut, "/api/v1/settings/reveal_image", `{"value":"javascript:alert(1)"}`, admin),
		http.StatusBadRequest, "BAD_REQUEST")
	assertError(t, env.do(t, http.MethodPut, "/api/v1/settings/theme", `{"value":"dark"}`, admin),
		http.StatusNotFound, "NOT_FOUND")
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})

	w := env.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tok := decode[auth.Token](t, w)
	assert.NotEmpty(t, tok.Token)
	assert.NoError(t, env.gate.Check(tok.Token))

	assertError(t, env.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"nope"}`, nil),
		http.StatusUnauthorized, "UNAUTHORIZED")

	// logout revokes the token
	w = env.do(t, http.MethodPost, "/api/v1/admin/logout", "", map[string]string{"Authorization": "Bearer " + tok.Token})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.ErrorIs(t, env.gate.Check(tok.Token), auth.ErrInvalidToken)
}

func TestAdminLogin_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate := mocks.NewMockAdminGate(ctrl)
	gate.EXPECT().Login("anything").Return(nil, auth.ErrDisabled)

	catalog, err := landing.Load("en")
	require.NoError(t, err)
	db := setupTestDB(t)
	srv, err := New(ServerDeps{
		Changelog: changelog.NewStore(db),
		Settings:  settings.NewStore(db),
		Landing:   catalog,
		Gate:      gate,
	}, Config{Logger: testLogger()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"anything"}`))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assertError(t, w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

func TestAdminLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{LoginRequests: 2, LoginWindow: time.Minute})

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"nope"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	assertError(t, env.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"s3cret"}`, nil),
		http.StatusTooManyRequests, "RATE_LIMITED")

	// other routes are not limited
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/status", "", nil).Code)
}

func TestJellyfinLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	jf := mocks.NewMockJellyfinAPI(ctrl)
	jf.EXPECT().AuthenticateByName(gomock.Any(), "ismail", "pw").
		Return(&jellyfin.Session{ServerURL: "http://jf", AccessToken: "tok", UserID: "u1", Username: "ismail"}, nil)

	env := newTestEnv(t, jf, nil, Config{})
	w := env.do(t, http.MethodPost, "/api/v1/jellyfin/login", `{"username":"ismail","password":"pw"}`, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s := decode[jellyfin.Session](t, w)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "u1", s.UserID)
}

func TestJellyfinLogin_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"rejected", jellyfin.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"breaker open", jellyfin.ErrUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"server error", &jellyfin.APIError{Endpoint: "/Users/AuthenticateByName", StatusCode: 500}, http.StatusBadGateway, "UPSTREAM_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jf := mocks.NewMockJellyfinAPI(ctrl)
			jf.EXPECT().AuthenticateByName(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			env := newTestEnv(t, jf, nil, Config{})
			assertError(t, env.do(t, http.MethodPost, "/api/v1/jellyfin/login", `{"username":"a","password":"b"}`, nil),
				tt.status, tt.code)
		})
	}
}

func TestJellyfinLogin_NotConfigured(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	assertError(t, env.do(t, http.MethodPost, "/api/v1/jellyfin/login", `{"username":"a","password":"b"}`, nil),
		http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

func TestJellyfinLogin_MissingUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, mocks.NewMockJellyfinAPI(ctrl), nil, Config{})
	assertError(t, env.do(t, http.MethodPost, "/api/v1/jellyfin/login", `{"password":"b"}`, nil),
		http.StatusBadRequest, "BAD_REQUEST")
}

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStatsFetcher(ctrl)
	st.EXPECT().
		Fetch(gomock.Any(), jellyfin.Session{AccessToken: "tok", UserID: "u1"}).
		Return(&stats.UserStats{
			EpisodesWatched:       3,
			MoviesWatched:         1,
			TotalWatchTimeMinutes: 180,
			TopShows:              []stats.TopShow{{ID: "A", Name: "Show A", PlayedCount: 3, TotalCount: 4, Percentage: 75}},
		}, nil)

	env := newTestEnv(t, nil, st, Config{})
	w := env.do(t, http.MethodGet, "/api/v1/stats?user_id=u1", "", map[string]string{TokenHeader: "tok"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["episodesWatched"])
	assert.EqualValues(t, 180, body["totalWatchTimeMinutes"])
	assert.Len(t, body["topShows"], 1)
}

func TestStats_RequestValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, nil, mocks.NewMockStatsFetcher(ctrl), Config{})

	assertError(t, env.do(t, http.MethodGet, "/api/v1/stats?user_id=u1", "", nil),
		http.StatusUnauthorized, "UNAUTHORIZED")
	assertError(t, env.do(t, http.MethodGet, "/api/v1/stats", "", map[string]string{TokenHeader: "tok"}),
		http.StatusBadRequest, "BAD_REQUEST")
}

func TestStats_UpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStatsFetcher(ctrl)
	st.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(errors.New("fetch played items"), context.DeadlineExceeded))

	env := newTestEnv(t, nil, st, Config{})
	assertError(t, env.do(t, http.MethodGet, "/api/v1/stats?user_id=u1", "", map[string]string{TokenHeader: "tok"}),
		http.StatusBadGateway, "UPSTREAM_ERROR")
}

func TestStats_NotConfigured(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	assertError(t, env.do(t, http.MethodGet, "/api/v1/stats?user_id=u1", "", map[string]string{TokenHeader: "tok"}),
		http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil, Config{})
	env.do(t, http.MethodGet, "/api/v1/status", "", nil)

	w := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vidio_http_requests_total")
}

func TestStatusRecorder_FirstWriteWins(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	_, _ = sr.Write([]byte("x"))
	sr.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, sr.status)
}
