package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	ContextKeySessionID = "session_id"
)

// SessionConfig holds cookie settings for the storefront session.
type SessionConfig struct {
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultSessionConfig returns secure defaults. CookieSecure should be
// disabled for plain-HTTP local development.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// Session identifies the anonymous storefront visitor. The cart and the
// activity log are keyed by this session id. A missing or malformed cookie
// gets replaced with a fresh UUID.
func Session(config SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()

			c.SetSameSite(config.CookieSameSite)
			c.SetCookie(
				SessionCookieName,
				sessionID,
				SessionMaxAge,
				config.CookiePath,
				config.CookieDomain,
				config.CookieSecure,
				true, // httpOnly
			)
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}
