package controllers

import (
	"net/http"

	"evol-jewels-io/stylist/pkg/services"
	"evol-jewels-io/stylist/pkg/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService services.CatalogService
}

func InitCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProducts returns the whole catalog.
func (cc *CatalogController) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		products, err := cc.catalogService.ListProducts(ctx)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
