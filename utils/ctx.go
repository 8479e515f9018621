package utils

import "github.com/gin-gonic/gin"

const CtxKeyShop = "shop"

func CurrentShop(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyShop); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
