package controllers

import (
	"github.com/gin-gonic/gin"

	"productoptions/pkg/resp"
	"productoptions/services"
	"productoptions/utils"
)

// Product ids are catalog references such as gid://shopify/Product/1, so
// they travel in the query string rather than the path.
type ProductOptionController struct {
	Service *services.ProductOptionService
}

func NewProductOptionController(s *services.ProductOptionService) *ProductOptionController {
	return &ProductOptionController{Service: s}
}

// POST /product-options  body: {"product": "<handle or id>", "optionIds": [...]}
func (ctl *ProductOptionController) Apply(c *gin.Context) {
	var body struct {
		Product   string   `json:"product"`
		OptionIDs []string `json:"optionIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, "invalid JSON body: "+err.Error())
		return
	}

	productID, err := ctl.Service.Apply(c.Request.Context(), utils.CurrentShop(c), body.Product, body.OptionIDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"productId": productID, "optionIds": body.OptionIDs})
}

// GET /product-options?product=<id>
func (ctl *ProductOptionController) ListByProduct(c *gin.Context) {
	productID := c.Query("product")
	if productID == "" {
		resp.BadRequest(c, "product is required")
		return
	}
	opts, err := ctl.Service.ListByProduct(c.Request.Context(), utils.CurrentShop(c), productID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, opts)
}

// DELETE /product-options?product=<id>&optionId=<id>
func (ctl *ProductOptionController) Detach(c *gin.Context) {
	productID, optionID := c.Query("product"), c.Query("optionId")
	if productID == "" || optionID == "" {
		resp.BadRequest(c, "product and optionId are required")
		return
	}
	if err := ctl.Service.Detach(c.Request.Context(), utils.CurrentShop(c), productID, optionID); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "option detached"})
}
