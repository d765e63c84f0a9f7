package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"news-rating-be/internal/bootstrap"
	"news-rating-be/internal/config"
	"news-rating-be/internal/constant"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/server"
	"news-rating-be/pkg/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingAppender struct {
	mu   sync.Mutex
	rows [][]interface{}
	err  error
}

func (a *recordingAppender) AppendRow(ctx context.Context, values []interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, values)
	return a.err
}

func (a *recordingAppender) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rows)
}

func newTestApp(t *testing.T, appender *recordingAppender) *fiber.App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	artifacts, err := model.LoadArtifacts("../../pkg/model/testdata/preprocessor.json", "../../pkg/model/testdata/classifier.json")
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Port: "0", CorsAllowedOrigins: "http://localhost:8501"},
		Auth: config.AuthConfig{
			CookieName:       "news_app_cookie_test",
			CookieKey:        "abc123",
			CookieExpiryDays: 7,
		},
		Audit: config.AuditConfig{TimeoutSeconds: 1, Topic: "LOGIN_RECORDED"},
	}

	container := bootstrap.NewContainer(cfg, bootstrap.Dependencies{
		Users: map[string]config.AllowedUser{
			"editor": {Name: "Night Editor", Password: string(hash)},
		},
		Predictor:   artifacts,
		Appender:    appender,
		Location:    loc,
		SysLogger:   logger.NewNopLogger(),
		AuditLogger: logger.NewNopLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = container.PubSub.Close()
	})
	require.NoError(t, container.AuditConsumer.Consume(ctx))

	return server.New(cfg, container).GetApp()
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "news_app_cookie_test" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp := postForm(t, app, "/login", url.Values{"username": {"editor"}, "password": {"s3cret"}}, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	return sessionCookie(t, resp)
}

func TestFreshVisitShowsLogin(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})

	resp := get(t, app, "/", nil)
	html := body(t, resp)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Please enter your username and password")
	assert.NotContains(t, html, `id="record"`)
}

func TestFailedLoginShowsErrorOnly(t *testing.T) {
	appender := &recordingAppender{}
	app := newTestApp(t, appender)

	resp := postForm(t, app, "/login", url.Values{"username": {"editor"}, "password": {"wrong"}}, nil)
	html := body(t, resp)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, html, "Username/password is incorrect")
	assert.NotContains(t, html, `id="record"`)
	assert.NotContains(t, html, "Predicted Rating Category")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, appender.count(), "failed logins are not audited")
}

func TestLoginAuditsOnceAndShowsForm(t *testing.T) {
	appender := &recordingAppender{}
	app := newTestApp(t, appender)

	cookie := login(t, app)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)

	for i := 0; i < 3; i++ {
		html := body(t, get(t, app, "/?genre=SPORTS+NEWS", cookie))
		assert.Contains(t, html, `id="record"`)
		assert.Contains(t, html, "<td>SPORTS NEWS</td>")
	}

	assert.Eventually(t, func() bool { return appender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, appender.count(), "revisits with the cookie do not add audit rows")
}

func TestPredictWithUnreachableSheet(t *testing.T) {
	app := newTestApp(t, &recordingAppender{err: errors.New("sheet unreachable")})
	cookie := login(t, app)

	form := url.Values{
		"genre":                  {"SPORTS NEWS"},
		"geography":              {"INDIAN"},
		"personality_popularity": {"H"},
		"personality_genre":      {"Cricketer"},
		"logistics":              {"ON LOCATION"},
		"story_format":           {"NEWS REPORT"},
	}
	resp := postForm(t, app, "/predict", form, cookie)
	html := body(t, resp)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, `id="prediction"`)
	assert.Contains(t, html, "Predicted Rating Category: ")
	assert.Contains(t, html, "Less than 213 TVTs")
}

func TestPredictRejectsUnknownOption(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})
	cookie := login(t, app)

	resp := postForm(t, app, "/predict", url.Values{"genre": {"GOSSIP"}}, cookie)
	html := body(t, resp)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NotContains(t, html, `id="prediction"`)
}

func TestPredictWithoutSessionRedirects(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})

	resp := postForm(t, app, "/predict", url.Values{"genre": {"WAR"}}, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})
	cookie := login(t, app)

	resp := postForm(t, app, "/logout", url.Values{}, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	html := body(t, get(t, app, "/", cookie))
	assert.NotContains(t, html, `id="record"`)
	assert.Contains(t, html, `action="/login"`)
}

func TestStoryAPI(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})

	resp := get(t, app, "/api/story/options", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	cookie := login(t, app)

	resp = get(t, app, "/api/story/options", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Personality-Genre")

	req := httptest.NewRequest(http.MethodPost, "/api/story/predict", strings.NewReader(`{
		"genre": "SPORTS NEWS",
		"geography": "INDIAN",
		"personality_popularity": "H",
		"personality_genre": "Cricketer",
		"logistics": "ON LOCATION",
		"story_format": "NEWS REPORT"
	}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `"label":`)

	req = httptest.NewRequest(http.MethodPost, "/api/story/predict", strings.NewReader(`{"genre":"WAR"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthAPI(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"editor","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp), `"status":"failed"`)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"editor","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	me := body(t, get(t, app, "/api/auth/me", cookie))
	assert.Contains(t, me, `"status":"succeeded"`)
	assert.Contains(t, me, `"username":"editor"`)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})

	assert.Equal(t, fiber.StatusOK, get(t, app, "/healthz", nil).StatusCode)

	resp := get(t, app, "/metrics", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "news_rating_")
}

func TestIndexReplacesUnknownOptions(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})
	cookie := login(t, app)

	html := body(t, get(t, app, "/?genre=GOSSIP&geography=%3Cb%3EINDIAN%3C%2Fb%3E&logistics=BOTH", cookie))

	assert.Contains(t, html, "<td>ASTROLOGY</td>")
	assert.Contains(t, html, "<td>BIHAR</td>")
	assert.Contains(t, html, "<td>BOTH</td>")
	assert.NotContains(t, html, "GOSSIP")
	assert.Contains(t, html, `<option value="ASTROLOGY" selected>`)
}

func TestPredictSportsStoryPage(t *testing.T) {
	app := newTestApp(t, &recordingAppender{})
	cookie := login(t, app)

	values := []struct{ key, value string }{
		{"genre", "SPORTS NEWS"},
		{"geography", "INDIAN"},
		{"personality_popularity", "L"},
		{"personality_genre", "Cricketer"},
		{"logistics", "ON LOCATION"},
		{"story_format", "NEWS REPORT"},
	}
	form := url.Values{}
	for _, v := range values {
		form.Set(v.key, v.value)
	}

	resp := postForm(t, app, "/predict", form, cookie)
	html := body(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the record row holds exactly the submitted values, in column order,
	// and comes before the prediction
	tableStart := strings.Index(html, `id="record"`)
	require.GreaterOrEqual(t, tableStart, 0)
	tableEnd := tableStart + strings.Index(html[tableStart:], "</table>")
	table := html[tableStart:tableEnd]

	var cells []string
	for rest := table; ; {
		i := strings.Index(rest, "<td>")
		if i < 0 {
			break
		}
		rest = rest[i+len("<td>"):]
		j := strings.Index(rest, "</td>")
		require.GreaterOrEqual(t, j, 0)
		cells = append(cells, rest[:j])
		rest = rest[j:]
	}
	expected := make([]string, 0, len(values))
	for _, v := range values {
		expected = append(expected, v.value)
	}
	assert.Equal(t, expected, cells)

	for i, col := range constant.StoryColumns {
		assert.Contains(t, table, "<th>"+col+"</th>", "column %d", i)
	}

	prediction := strings.Index(html, `id="prediction"`)
	require.Greater(t, prediction, tableEnd)

	const prefix = "Predicted Rating Category: "
	start := strings.Index(html, prefix)
	require.Greater(t, start, tableEnd)
	label := html[start+len(prefix):]
	label = label[:strings.Index(label, "</p>")]
	assert.Contains(t, constant.TierLabels, label)
}
