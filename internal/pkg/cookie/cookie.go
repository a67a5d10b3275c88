package cookie

import (
	"net/http"

	"storefront-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	CartSessionCookieName = "cart_session"
	AccessTokenCookieName = "access_token"
)

func SetCartSession(c *gin.Context, cfg config.CookieConfig, sessionID string) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		CartSessionCookieName,
		sessionID,
		int(cfg.MaxAge.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func GetCartSession(c *gin.Context) string {
	id, _ := c.Cookie(CartSessionCookieName)
	return id
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
