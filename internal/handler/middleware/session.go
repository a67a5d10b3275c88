package middleware

import (
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxCartSessionKey = "cart_session"

// CartSession makes sure every request carries a cart session id, issuing a fresh one when the
// cookie is missing or not a uuid. The cookie is refreshed on every request so an active cart
// does not expire mid-visit.
func CartSession(cfg config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cookie.GetCartSession(c)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}
		cookie.SetCartSession(c, cfg, sessionID)
		c.Set(ctxCartSessionKey, sessionID)
		c.Next()
	}
}

func GetCartSession(c *gin.Context) string {
	if v, exists := c.Get(ctxCartSessionKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
