package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/config"
	"tasklog/internal/models"
	"tasklog/internal/session"
)

func testSessions() *session.Manager {
	return session.NewManager(&config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			SessionSecret: "middleware-test-secret",
			SessionTTL:    24 * time.Hour,
		},
	})
}

func issueCookie(t *testing.T, sessions *session.Manager, principal models.Principal) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, sessions.Write(c, principal))

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSessionMiddlewareResolvesAndReissues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := testSessions()
	principal := models.Principal{ID: "user-1", Username: "alice", Role: models.UserRoleUser}

	var seen *models.Principal
	engine := gin.New()
	engine.Use(Session(sessions))
	engine.GET("/", func(c *gin.Context) {
		seen = Principal(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(issueCookie(t, sessions, principal))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.NotNil(t, seen)
	assert.Equal(t, principal, *seen)

	// The response carries a re-issued cookie with a fresh window.
	var reissued *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			reissued = cookie
		}
	}
	require.NotNil(t, reissued)
	assert.True(t, reissued.HttpOnly)
	assert.True(t, reissued.Expires.After(time.Now().Add(23*time.Hour)))
}

func TestSessionMiddlewareIgnoresInvalidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := testSessions()

	var seen *models.Principal
	engine := gin.New()
	engine.Use(Session(sessions))
	engine.GET("/", func(c *gin.Context) {
		seen = Principal(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-token"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Nil(t, seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestRequestIDGeneratedAndHonored(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-Id"))
}
