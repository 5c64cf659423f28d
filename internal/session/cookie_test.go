package session

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
)

func testManager() *Manager {
	return NewManager(&config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			SessionSecret: "unit-test-secret",
			SessionTTL:    24 * time.Hour,
		},
	})
}

func testContext(t *testing.T, cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestWriteThenRead(t *testing.T) {
	manager := testManager()
	principal := models.Principal{ID: "user-1", Username: "alice", Role: models.UserRoleUser}

	c, w := testContext(t)
	require.NoError(t, manager.Write(c, principal))

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.After(time.Now().Add(23*time.Hour)))

	c2, _ := testContext(t, cookie)
	decoded := manager.Read(c2)
	require.NotNil(t, decoded)
	assert.Equal(t, principal, *decoded)
}

func TestReadMissingCookie(t *testing.T) {
	manager := testManager()

	c, _ := testContext(t)
	assert.Nil(t, manager.Read(c))
}

func TestReadTamperedCookie(t *testing.T) {
	manager := testManager()
	principal := models.Principal{ID: "user-1", Username: "alice", Role: models.UserRoleUser}

	c, w := testContext(t)
	require.NoError(t, manager.Write(c, principal))
	cookie := sessionCookie(t, w)
	cookie.Value += "tamper"

	c2, _ := testContext(t, cookie)
	assert.Nil(t, manager.Read(c2))
}

func TestReadCookieSignedWithOtherSecret(t *testing.T) {
	principal := models.Principal{ID: "user-1", Username: "alice", Role: models.UserRoleUser}

	other := NewManager(&config.AppConfig{
		Security: config.SecurityConfig{SessionSecret: "different", SessionTTL: time.Hour},
	})
	c, w := testContext(t)
	require.NoError(t, other.Write(c, principal))
	cookie := sessionCookie(t, w)

	c2, _ := testContext(t, cookie)
	assert.Nil(t, testManager().Read(c2))
}

func TestClearExpiresCookie(t *testing.T) {
	manager := testManager()

	c, w := testContext(t)
	manager.Clear(c)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestRefreshPreservesPrincipal(t *testing.T) {
	manager := testManager()
	principal := models.Principal{ID: "user-7", Username: "carol", Role: models.UserRoleAdmin}

	c, w := testContext(t)
	require.NoError(t, manager.Write(c, principal))
	cookie := sessionCookie(t, w)

	c2, w2 := testContext(t, cookie)
	returned := manager.Refresh(c2)
	require.NotNil(t, returned)
	assert.Equal(t, principal, *returned)

	refreshed := sessionCookie(t, w2)
	c3, _ := testContext(t, refreshed)
	decoded := manager.Read(c3)
	require.NotNil(t, decoded)
	assert.Equal(t, principal, *decoded)
}

func TestRefreshNoopWithoutSession(t *testing.T) {
	manager := testManager()

	c, w := testContext(t)
	assert.Nil(t, manager.Refresh(c))

	assert.Empty(t, w.Result().Cookies())
}
