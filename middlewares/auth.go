package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"productoptions/pkg/resp"
	"productoptions/utils"
)

// AuthMiddleware resolves the active shop from a bearer JWT, or from the
// id_token query parameter that embedded admin pages receive.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if t := c.Query("id_token"); t != "" {
			tokenStr = t
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing or invalid token")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}

		c.Set(utils.CtxKeyShop, claims.Shop)
		c.Next()
	}
}
