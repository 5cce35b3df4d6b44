package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"roomboard/internal/cache"
	"roomboard/internal/config"
	"roomboard/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-session-secret-0123456789abcdef"

type testEnv struct {
	t   *testing.T
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

type pageResponse struct {
	Page string         `json:"page"`
	Data map[string]any `json:"data"`
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "test",
		SessionSecret:   testSecret,
		SessionTTLHours: 1,
		DBDriver:        "sqlite",
	}
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	db, err := gorm.Open(database.SQLiteDialector(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	srv, err := NewServerWithDeps(testConfig(), db, rdb, opts...)
	require.NoError(t, err)

	return &testEnv{t: t, srv: srv, app: srv.NewApp(), db: db, mr: mr}
}

// do sends a request, posting form as urlencoded when non-nil.
func (e *testEnv) do(method, target string, form url.Values, session string) *http.Response {
	e.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func (e *testEnv) get(target, session string) *http.Response {
	return e.do(http.MethodGet, target, nil, session)
}

func (e *testEnv) post(target string, form url.Values, session string) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	return e.do(http.MethodPost, target, form, session)
}

// register signs up username and returns the session cookie value.
func (e *testEnv) register(username string) string {
	e.t.Helper()
	resp := e.post("/register/", url.Values{
		"username":  {username},
		"password1": {"correct-horse-42"},
		"password2": {"correct-horse-42"},
	}, "")
	require.Equal(e.t, http.StatusFound, resp.StatusCode)
	session := sessionCookie(resp)
	require.NotEmpty(e.t, session)
	return session
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	return ""
}

func decodePage(t *testing.T, resp *http.Response) pageResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func list(v any) []any {
	items, _ := v.([]any)
	return items
}

func field(v any, key string) any {
	m, _ := v.(map[string]any)
	return m[key]
}
