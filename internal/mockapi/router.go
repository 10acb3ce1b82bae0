package mockapi

import (
	"log"
	"time"

	"boutique-client/internal/mockapi/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// BuildRouter wires every route the storefront consumes. Exported so tests
// can mount it on httptest servers directly.
func BuildRouter(logger *log.Logger, st *store.Store, jwtSecret string, tokenTTL time.Duration) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	// The real storefront is a browser app on another origin.
	router.Use(cors.Default())

	h := &handlers{
		store:  st,
		logger: logger,
		tokens: newTokenManager(jwtSecret, tokenTTL),
	}

	router.GET("/healthz", healthHandler)

	router.POST("/users/login", h.login)
	router.POST("/users/register", h.register)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/reviews", h.listReviews)
	router.POST("/contact", h.contact)
	router.POST("/subscribe", h.subscribe)

	authed := router.Group("", h.requireAuth)
	{
		authed.GET("/users/me", h.me)
		authed.PUT("/users/profile", h.updateProfile)

		authed.GET("/cart", h.getCart)
		authed.POST("/cart", h.addToCart)
		authed.PUT("/cart/:itemId", h.updateCartItem)
		authed.DELETE("/cart/:itemId", h.removeCartItem)

		authed.POST("/orders", h.createOrder)
		authed.PUT("/orders/:id/payment-contact", h.paymentContact)

		authed.GET("/reviews/my-reviews", h.myReviews)
		authed.POST("/reviews", h.createReview)
		authed.PUT("/reviews/:id", h.updateReview)
		authed.DELETE("/reviews/:id", h.deleteReview)
	}

	admin := authed.Group("/admin", h.requireAdmin)
	{
		admin.GET("/products", h.listProducts)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
	}

	return router
}

type handlers struct {
	store  *store.Store
	logger *log.Logger
	tokens *tokenManager
}
