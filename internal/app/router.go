// internal/app/router.go
package app

import (
	authHandler "crm-service/internal/handlers/auth"
	customerHandler "crm-service/internal/handlers/customer"
	profileHandler "crm-service/internal/handlers/profile"
	wsHandler "crm-service/internal/handlers/websocket"
	"crm-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CustomerHandler *customerHandler.CustomerHandler
	ProfileHandler  *profileHandler.ProfileHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.GET("/mode", h.AuthHandler.GetAuthMode)
		authPublic.PUT("/mode", h.AuthHandler.SetAuthMode)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Identify(), h.AuthMiddleware.RequireUser())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/logout-all", h.AuthHandler.LogoutAll)
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== Customers ====================
	// Guests get the shared public partition; authenticated users get
	// their own. Either way the routes are open, partition resolution
	// does the scoping.
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Identify())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/stats", h.CustomerHandler.GetCustomerStats)
		customers.GET("/countries", h.CustomerHandler.GetCountryOptions)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)

		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Profile ====================
	profile := api.Group("/profile")
	profile.Use(h.AuthMiddleware.Identify())
	{
		profile.GET("", h.ProfileHandler.GetProfile)
		profile.PUT("", h.ProfileHandler.UpdateProfile)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Identify(), h.AuthMiddleware.RequireRole("admin"))
	{
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
