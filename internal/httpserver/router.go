package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartstore "storefront-cart/internal/cart"
	cartsvc "storefront-cart/internal/service/cart"
	catalogsvc "storefront-cart/internal/service/catalog"
)

// Deps carries the services the router exposes.
type Deps struct {
	CartStore  *cartstore.Store
	CartSvc    *cartsvc.Service
	CatalogSvc *catalogsvc.Service
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.CartStore))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.CatalogSvc))
		api.GET("/products/:id", getProductHandler(deps.CatalogSvc))

		api.GET("/cart", getCartHandler(deps.CartSvc))
		api.GET("/cart/summary", cartSummaryHandler(deps.CartSvc))
		api.POST("/cart/items", addItemHandler(deps.CartSvc))
		api.PATCH("/cart/items/:id", updateItemHandler(deps.CartSvc))
		api.DELETE("/cart/items/:id", removeItemHandler(deps.CartSvc))
		api.DELETE("/cart", clearCartHandler(deps.CartSvc))
		api.POST("/cart/open", openCartHandler(deps.CartSvc))
		api.POST("/cart/close", closeCartHandler(deps.CartSvc))
		api.POST("/cart/toggle", toggleCartHandler(deps.CartSvc))
		api.PUT("/cart/shipping", setShippingHandler(deps.CartSvc))
		api.POST("/cart/coupon", applyCouponHandler(deps.CartSvc))
		api.DELETE("/cart/coupon", removeCouponHandler(deps.CartSvc))
	}

	return router
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
