package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/webring/internal/config"
	"github.com/dkeye/webring/internal/domain"
)

// preferenceCookie owns the webring-enabled cookie. There is no server-side
// record; the cookie value "true" is the whole state.
type preferenceCookie struct {
	secure   bool
	sameSite http.SameSite
}

func newPreferenceCookie(cfg config.CookieConfig) preferenceCookie {
	return preferenceCookie{secure: cfg.Secure, sameSite: parseSameSite(cfg.SameSite)}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}

func (p preferenceCookie) enabled(c *gin.Context) bool {
	v, err := c.Cookie(domain.PreferenceCookie)
	return err == nil && v == "true"
}

func (p preferenceCookie) set(c *gin.Context) {
	c.SetSameSite(p.sameSite)
	c.SetCookie(domain.PreferenceCookie, "true", domain.PreferenceMaxAge, "/", "", p.secure, false)
}

func (p preferenceCookie) clear(c *gin.Context) {
	c.SetSameSite(p.sameSite)
	c.SetCookie(domain.PreferenceCookie, "", -1, "/", "", p.secure, false)
}
