package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
)

// sessionContextKey is the gin context key holding the request's *auth.Session
const sessionContextKey = "session"

// SessionFromContext returns the session resolved by LoadSession, or nil
func SessionFromContext(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

// LoadSession resolves the session cookie into an *auth.Session.
// Invalid or expired tokens leave the request anonymous.
func LoadSession(codec *auth.SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := codec.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(sessionContextKey, session)
		c.Set("userID", session.User.ID)
		c.Next()
	}
}

// AccessGate applies auth.Authorize to every request whose path does not
// start with one of the exempt prefixes
func AccessGate(exempt ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range exempt {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		decision := auth.Authorize(SessionFromContext(c).IsLoggedIn(), path)
		switch decision.Kind {
		case auth.Deny:
			c.Redirect(http.StatusFound, loginURL(c.Request.URL))
			c.Abort()
		case auth.Redirect:
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// loginURL points at the login page and remembers where the user was going
func loginURL(requested *url.URL) string {
	q := url.Values{}
	q.Set("callbackUrl", requested.RequestURI())
	return auth.LoginPath + "?" + q.Encode()
}
