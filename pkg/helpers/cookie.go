package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessCookieName is read by the auth middleware when no Authorization header is sent.
const AccessCookieName = "access_token"

// accessCookiePath limits the cookie to API routes.
const accessCookiePath = "/api"

// AuthCookies writes the HttpOnly access token cookie that mirrors the bearer token.
type AuthCookies struct {
	Domain string
	Secure bool
}

func NewAuthCookies(domain string, secure bool) *AuthCookies {
	return &AuthCookies{Domain: domain, Secure: secure}
}

func (a *AuthCookies) sameSite() http.SameSite {
	if a.Secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

// SetAccess stores token until exp; an already-expired exp clears the cookie.
func (a *AuthCookies) SetAccess(c *gin.Context, token string, exp time.Time) {
	maxAge := int(time.Until(exp).Seconds())
	if maxAge <= 0 {
		a.Clear(c)
		return
	}
	c.SetSameSite(a.sameSite())
	c.SetCookie(AccessCookieName, token, maxAge, accessCookiePath, a.Domain, a.Secure, true)
}

func (a *AuthCookies) Clear(c *gin.Context) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(AccessCookieName, "", -1, accessCookiePath, a.Domain, a.Secure, true)
}
