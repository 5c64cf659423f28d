// Package session adapts the signed session token to an HTTP cookie.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasklog/internal/config"
	"tasklog/internal/models"
	"tasklog/internal/security"
)

const CookieName = "session"

type Manager struct {
	secret string
	ttl    time.Duration
	secure bool
}

func NewManager(cfg *config.AppConfig) *Manager {
	return &Manager{
		secret: cfg.Security.SessionSecret,
		ttl:    cfg.Security.SessionTTL,
		secure: cfg.Environment == "production",
	}
}

// Read extracts and verifies the session cookie. Missing, expired, or
// tampered cookies all read as nil; there is no error path for callers.
func (m *Manager) Read(c *gin.Context) *models.Principal {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}

	principal, err := security.ParseSessionToken(raw, m.secret)
	if err != nil {
		return nil
	}
	return principal
}

// Write issues a fresh token for principal and sets it as an HttpOnly
// cookie. The cookie must never be readable from script.
func (m *Manager) Write(c *gin.Context, principal models.Principal) error {
	token, err := security.IssueSessionToken(m.secret, principal, m.ttl)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Refresh re-issues a valid session with a fresh expiry window on the
// outgoing response and returns the embedded principal. Absent or invalid
// sessions are left untouched and read as nil.
func (m *Manager) Refresh(c *gin.Context) *models.Principal {
	principal := m.Read(c)
	if principal == nil {
		return nil
	}
	_ = m.Write(c, *principal)
	return principal
}
