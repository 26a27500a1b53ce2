package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-cart/internal/domain"
	cartsvc "storefront-cart/internal/service/cart"
)

type cartView struct {
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  int64             `json:"subtotalCents"`
	IsEmpty   bool              `json:"isEmpty"`
	IsOpen    bool              `json:"isOpen"`
}

func cartToView(svc *cartsvc.Service) cartView {
	items := svc.Items()
	return cartView{
		Items:     items,
		ItemCount: svc.ItemCount(),
		Subtotal:  svc.Subtotal(),
		IsEmpty:   len(items) == 0,
		IsOpen:    svc.IsOpen(),
	}
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartToView(svc))
	}
}

// taxRateParam parses the optional ?taxRate= override; zero means "use
// the configured rate".
func taxRateParam(c *gin.Context) (float64, bool) {
	raw := c.Query("taxRate")
	if raw == "" {
		return 0, true
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 || rate > 1 {
		return 0, false
	}
	return rate, true
}

func cartSummaryHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rate, ok := taxRateParam(c)
		if !ok {
			errorResponse(c, http.StatusBadRequest, "invalid taxRate")
			return
		}
		c.JSON(http.StatusOK, svc.Summary(rate))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func addItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		item, err := svc.AddProduct(c.Request.Context(), req.ProductID, req.VariantID, req.Quantity)
		if err != nil {
			status := http.StatusBadRequest
			if err.Error() == "product not found" || err.Error() == "variant not found" {
				status = http.StatusNotFound
			}
			if errors.Is(err, domain.ErrInvalidQuantity) {
				status = http.StatusBadRequest
			}
			errorResponse(c, status, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item, "cart": cartToView(svc)})
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		svc.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, cartToView(svc))
	}
}

func removeItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.RemoveItem(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, cartToView(svc))
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Clear(c.Request.Context())
		c.JSON(http.StatusOK, cartToView(svc))
	}
}

func openCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.OpenCart()
		c.JSON(http.StatusOK, gin.H{"isOpen": true})
	}
}

func closeCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.CloseCart()
		c.JSON(http.StatusOK, gin.H{"isOpen": false})
	}
}

func toggleCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"isOpen": svc.ToggleCart()})
	}
}

type shippingRequest struct {
	Method string `json:"method" binding:"required"`
}

func setShippingHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := svc.SetShippingMethod(req.Method); err != nil {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"method": req.Method})
	}
}

func applyCouponHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon domain.Coupon
		if err := c.ShouldBindJSON(&coupon); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := svc.ApplyCoupon(coupon); err != nil {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, svc.Summary(0))
	}
}

func removeCouponHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.RemoveCoupon()
		c.JSON(http.StatusOK, svc.Summary(0))
	}
}
