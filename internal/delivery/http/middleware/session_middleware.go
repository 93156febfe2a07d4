package middleware

import (
	"net/http"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "portfolio_session"

// SessionMiddleware binds each browser to a page session. A missing or
// invalid cookie gets a fresh session, so the contact form starts idle.
func SessionMiddleware(sessions *auth.SessionManager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			if s, err := sessions.Parse(token); err == nil {
				// Active visitors keep their session (and its contact form) past the first TTL
				if sessions.NeedsRefresh(s) {
					if fresh, err := sessions.Reissue(s.ID); err == nil {
						setSessionCookie(c, sessions, fresh, secureCookie)
					} else {
						logger.Log.Warnw("Failed to refresh page session", "error", err)
					}
				}
				c.Set(string(domain.KeySessionID), s.ID)
				c.Next()
				return
			}
		}

		id, token, err := sessions.Issue()
		if err != nil {
			logger.Log.Errorw("Failed to issue page session", "error", err)
			c.Next()
			return
		}

		setSessionCookie(c, sessions, token, secureCookie)
		c.Set(string(domain.KeySessionID), id)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, sessions *auth.SessionManager, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(sessions.TTL().Seconds()), "/", "", secure, true)
}

// SessionID returns the page session bound by SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(string(domain.KeySessionID))
}
