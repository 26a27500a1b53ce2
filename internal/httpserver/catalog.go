package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-cart/internal/domain"
	catalogsvc "storefront-cart/internal/service/catalog"
)

func listProductsHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			errorResponse(c, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
		products, err := svc.List(c.Request.Context())
		if err != nil {
			errorResponse(c, http.StatusInternalServerError, "list products failed")
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
	}
}

func getProductHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			errorResponse(c, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorResponse(c, http.StatusNotFound, "product not found")
				return
			}
			errorResponse(c, http.StatusInternalServerError, "get product failed")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
