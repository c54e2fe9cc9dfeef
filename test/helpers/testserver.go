package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tfl_backend/database"
	"tfl_backend/internal/app"
	"tfl_backend/internal/config"
	"tfl_backend/internal/email"
	"tfl_backend/internal/services"
)

// TestServer is the whole application on a throwaway SQLite file
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Config   *config.Config
	Mailer   *email.LogProvider
	Services *services.ServiceContainer
}

// NewTestServer builds a fresh server for one test; it is closed by t.Cleanup
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.Session.Secret = "test-session-secret-0123456789abcdef"
	cfg.Database.Path = filepath.Join(t.TempDir(), "integration.db")

	db, err := database.Connect(cfg)
	require.NoError(t, err, "connect test database")
	require.NoError(t, database.AutoMigrate(db), "migrate test database")

	mailer := email.NewLogProvider()
	router, container, err := app.SetupRouter(cfg, db, mailer)
	require.NoError(t, err, "set up router")

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Config:   cfg,
		Mailer:   mailer,
		Services: container,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Client is one browser: it keeps its own cookies and does not follow
// redirects, so tests can assert on the 303s.
type Client struct {
	ts   *TestServer
	http *http.Client
}

func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &Client{
		ts: ts,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get requests path and returns the response with its body read
func (c *Client) Get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.ts.Server.URL+path, nil)
	require.NoError(t, err)
	return c.do(t, req)
}

// PostForm submits form as application/x-www-form-urlencoded
func (c *Client) PostForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.ts.Server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(t, req)
}

func (c *Client) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	res, err := c.http.Do(req)
	require.NoError(t, err, "%s %s", req.Method, req.URL.Path)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

// Location returns the redirect target of a response
func Location(res *http.Response) string {
	return res.Header.Get("Location")
}

// DecodeJSON unmarshals a response body into v
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "body: %s", body)
}

// FormError reads the inline {"error": ...} message of a form response
func FormError(t *testing.T, body string) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	DecodeJSON(t, body, &payload)
	return payload.Error
}
