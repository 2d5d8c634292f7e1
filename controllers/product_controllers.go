package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/utils"
)

type ProductController struct {
	API *client.Client
}

func NewProductController(api *client.Client) *ProductController {
	return &ProductController{API: api}
}

// GetAllProducts -> the menu.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.API.ListProducts(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.API.GetProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondUpstream(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product details", product)
}
