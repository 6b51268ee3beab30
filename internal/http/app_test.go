package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type testApp struct {
	*fiber.App
	db   *sqlx.DB
	deps *handlers.Deps
	csrf string
}

// newTestApp wires the real routes over a seeded in-memory store. before runs
// ahead of Mount so callers can add route-level limiters.
func newTestApp(t *testing.T, before ...func(app *fiber.App)) *testApp {
	t.Helper()
	cfg := config.Default()
	cfg.DBDSN = ":memory:"
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repos.SeedIfEmpty(db, services.HashPassword))

	authSvc := services.NewAuthService(repos.NewUserRepo(db))
	deps := handlers.NewDeps(db, cfg, authSvc)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(handlers.AttachActor(authSvc))
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	for _, fn := range before {
		fn(app)
	}
	handlers.Mount(app, deps)

	ta := &testApp{App: app, db: db, deps: deps}
	resp := ta.get(t, "/login", "")
	ta.csrf = cookie(resp, "csrf_")
	require.NotEmpty(t, ta.csrf, "csrf token missing")
	return ta
}

func (ta *testApp) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := ta.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ta *testApp) post(t *testing.T, path, sid string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", ta.csrf)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: ta.csrf})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := ta.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login returns the sid cookie of a fresh session for uid.
func (ta *testApp) login(t *testing.T, uid, password string) string {
	t.Helper()
	resp := ta.post(t, "/login", "", url.Values{"uid": {uid}, "password": {password}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	sid := cookie(resp, "sid")
	require.NotEmpty(t, sid)
	return sid
}

func (ta *testApp) stock(t *testing.T, pid string) int {
	t.Helper()
	var n int
	require.NoError(t, ta.db.Get(&n, `SELECT stock_count FROM products WHERE pid = ?`, pid))
	return n
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// observe routes the process logger into memory for the rest of the test.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	applog.Use(zap.New(core))
	t.Cleanup(func() { applog.Use(zap.NewNop()) })
	return logs
}

func fields(e observer.LoggedEntry) map[string]any {
	f, _ := e.ContextMap()["fields"].(map[string]any)
	return f
}
