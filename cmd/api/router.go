package main

import (
	"github.com/gin-gonic/gin"

	"artstore-backend/internal/shared/middleware"
	"artstore-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Session cookie configuration. Secure cookies break plain-HTTP
	// local development, so relax them outside production.
	sessionConfig := middleware.DefaultSessionConfig()
	if c.Config.App.Environment == "development" {
		sessionConfig.CookieSecure = false
	}

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/ready", readinessHandler(c))

		setupProductRoutes(v1, c)
		setupCartRoutes(v1, c, sessionConfig)
		setupCheckoutRoutes(v1, c, sessionConfig)
		setupCouponRoutes(v1, c)
		setupAnalyticsRoutes(v1, c, sessionConfig)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// PRODUCT ROUTES (storefront)
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:slug", c.ProductHandler.GetBySlug)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.SessionConfig) {
	cart := v1.Group("/cart")
	cart.Use(middleware.Session(sessionConfig))
	{
		cart.GET("", c.CartHandler.Get)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PATCH("/items/:id", c.CartHandler.UpdateItem)
		cart.DELETE("/items/:id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// CHECKOUT ROUTES
// ========================================
func setupCheckoutRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.SessionConfig) {
	checkout := v1.Group("/checkout")
	checkout.Use(middleware.Session(sessionConfig))
	{
		checkout.POST("", c.CheckoutHandler.Checkout)
		checkout.GET("/shipping-estimate", c.CheckoutHandler.EstimateShipping)
		checkout.POST("/validate-coupon", c.CouponHandler.ValidateCoupon)
	}
}

// ========================================
// CAMPAIGN ROUTES (storefront)
// ========================================
func setupCouponRoutes(v1 *gin.RouterGroup, c *container.Container) {
	campaigns := v1.Group("/campaigns")
	{
		campaigns.GET("", c.CouponHandler.ListRunningCampaigns)
		campaigns.GET("/:slug", c.CouponHandler.GetCampaignBySlug)
	}
}

// ========================================
// ANALYTICS ROUTES (storefront events)
// ========================================
func setupAnalyticsRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.SessionConfig) {
	events := v1.Group("/events")
	events.Use(middleware.Session(sessionConfig))
	{
		events.POST("", c.AnalyticsHandler.RecordEvent)
	}
}

// ========================================
// ADMIN ROUTES (back office)
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Login is the only unauthenticated admin endpoint.
	v1.POST("/admin/auth/login", c.AuthHandler.Login)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		products := admin.Group("/products")
		{
			products.POST("", c.ProductHandler.Create)
			products.GET("", c.ProductHandler.ListAll)
			products.GET("/:id", c.ProductHandler.GetByID)
			products.PUT("/:id", c.ProductHandler.Update)
			products.DELETE("/:id", c.ProductHandler.Delete)
			products.POST("/:id/variants", c.ProductHandler.AddVariant)
		}

		admin.PATCH("/variants/:id/stock", c.ProductHandler.AdjustStock)

		orders := admin.Group("/orders")
		{
			orders.POST("", c.OrderHandler.Create)
			orders.GET("", c.OrderHandler.List)
			orders.GET("/:id", c.OrderHandler.Get)
			orders.PATCH("/:id", c.OrderHandler.UpdateStatus)
			orders.POST("/:id/fulfill", c.OrderHandler.Fulfill)
			orders.POST("/:id/refund", c.OrderHandler.Refund)
		}

		admin.GET("/customers", c.OrderHandler.ListCustomers)

		coupons := admin.Group("/coupons")
		{
			coupons.POST("", c.CouponHandler.Create)
			coupons.GET("", c.CouponHandler.List)
			coupons.PUT("/:id", c.CouponHandler.Update)
			coupons.DELETE("/:id", c.CouponHandler.Delete)
		}

		campaigns := admin.Group("/campaigns")
		{
			campaigns.POST("", c.CouponHandler.CreateCampaign)
			campaigns.GET("", c.CouponHandler.ListCampaigns)
			campaigns.DELETE("/:id", c.CouponHandler.DeleteCampaign)
		}

		analytics := admin.Group("/analytics")
		{
			analytics.GET("/stats", c.AnalyticsHandler.Stats)
			analytics.GET("/abandoned", c.AnalyticsHandler.AbandonedSessions)
		}
	}
}
