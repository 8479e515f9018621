package controllers

import (
	"github.com/gin-gonic/gin"

	"productoptions/pkg/resp"
	"productoptions/services"
	"productoptions/utils"
)

type OptionController struct {
	Service *services.OptionService
}

func NewOptionController(s *services.OptionService) *OptionController {
	return &OptionController{Service: s}
}

// GET /options
func (ctl *OptionController) List(c *gin.Context) {
	opts, err := ctl.Service.List(c.Request.Context(), utils.CurrentShop(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, opts)
}

// GET /options/:id
func (ctl *OptionController) Get(c *gin.Context) {
	opt, err := ctl.Service.Get(c.Request.Context(), utils.CurrentShop(c), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, opt)
}

// POST /options
func (ctl *OptionController) Create(c *gin.Context) {
	var req services.OptionSet
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	opt, err := ctl.Service.Create(c.Request.Context(), utils.CurrentShop(c), req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, opt)
}

// PATCH /options/:id
func (ctl *OptionController) Update(c *gin.Context) {
	var req services.OptionSet
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	opt, err := ctl.Service.Update(c.Request.Context(), utils.CurrentShop(c), c.Param("id"), req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, opt)
}

// DELETE /options  body: {"ids": ["..."]}
func (ctl *OptionController) Delete(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	res, err := ctl.Service.Delete(c.Request.Context(), utils.CurrentShop(c), body.IDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, res)
}
