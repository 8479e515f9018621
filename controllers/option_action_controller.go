package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productoptions/pkg/apperr"
	"productoptions/pkg/resp"
	"productoptions/services"
	"productoptions/utils"
)

// OptionActionController serves the admin page: a loader that never fails and
// a single form-encoded action endpoint.
type OptionActionController struct {
	Actions *services.ActionService
	Options *services.OptionService
}

func NewOptionActionController(actions *services.ActionService, options *services.OptionService) *OptionActionController {
	return &OptionActionController{Actions: actions, Options: options}
}

// GET /app/options
func (ctl *OptionActionController) Load(c *gin.Context) {
	opts := ctl.Options.ListOrEmpty(c.Request.Context(), utils.CurrentShop(c))
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

// POST /app/options (application/x-www-form-urlencoded)
func (ctl *OptionActionController) Submit(c *gin.Context) {
	var req services.ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.ActionFail(c, apperr.ValidationErr("action", "invalid form: "+err.Error()))
		return
	}

	res, err := ctl.Actions.Handle(c.Request.Context(), utils.CurrentShop(c), req)
	if err != nil {
		resp.ActionFail(c, err)
		return
	}

	out := resp.ActionResponse{Option: res.Option}
	if res.Option == nil {
		count := res.Count
		out.Count = &count
		out.DeletedOptions = res.DeletedOptions
	}
	resp.ActionOK(c, out)
}
