package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"productoptions/pkg/resp"
	"productoptions/utils"
)

// Recovery logs a panic with the shop and route, then answers in the shape the
// route's client expects: the form action endpoint gets an action response,
// everything else the REST envelope.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.String("request_id", GetRequestID(c)),
			slog.String("shop", utils.CurrentShop(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		)

		err := fmt.Errorf("panic: %v", recovered)
		if c.Request.Method == http.MethodPost && c.FullPath() == "/app/options" {
			resp.ActionFail(c, err)
		} else {
			resp.Fail(c, err)
		}
		c.Abort()
	})
}
