package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Manager writes and reads the session cookie.
type Manager struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(name, domain string, secure bool, ttl time.Duration) *Manager {
	return &Manager{Name: name, Domain: domain, Secure: secure, TTL: ttl}
}

// SetSession stores the session token in an HttpOnly cookie.
func (m *Manager) SetSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, token, maxAgeFrom(m.TTL), "/", m.Domain, m.Secure, true)
}

// Token returns the session token sent by the client, or "".
func (m *Manager) Token(c *gin.Context) string {
	v, err := c.Cookie(m.Name)
	if err != nil {
		return ""
	}
	return v
}

// maxAgeFrom returns 0 (a browser-session cookie) for a non-positive ttl.
func maxAgeFrom(ttl time.Duration) int {
	sec := int(ttl.Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
