package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productoptions/entity"
	"productoptions/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}

// Fail writes err with the status of its kind.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	body := gin.H{"ok": false, "error": apperr.PublicMessage(err)}
	if ae, ok := apperr.As(err); ok {
		if len(ae.Fields) > 0 {
			body["fields"] = ae.Fields
		}
		if len(ae.IDs) > 0 {
			body["ids"] = ae.IDs
		}
	}
	c.JSON(apperr.HTTPStatus(err), body)
}

// ActionResponse is the reply of the form-encoded option action endpoint.
type ActionResponse struct {
	Success        bool              `json:"success"`
	Option         *entity.Option    `json:"option,omitempty"`
	Count          *int              `json:"count,omitempty"`
	DeletedOptions []entity.Option   `json:"deletedOptions,omitempty"`
	Error          string            `json:"error,omitempty"`
	IDs            []string          `json:"ids,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
}

func ActionOK(c *gin.Context, out ActionResponse) {
	out.Success = true
	c.JSON(http.StatusOK, out)
}

func ActionFail(c *gin.Context, err error) {
	_ = c.Error(err)
	out := ActionResponse{Success: false, Error: apperr.PublicMessage(err)}
	if ae, ok := apperr.As(err); ok {
		out.IDs = ae.IDs
		out.Fields = ae.Fields
	}
	c.JSON(apperr.HTTPStatus(err), out)
}
