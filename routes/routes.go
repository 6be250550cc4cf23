package routes

import (
	"net/http"

	"auction-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup builds the gin engine with every route of the auction API.
func Setup(ctrl *controllers.Controller, env string, allowedOrigins []string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger)

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", ctrl.HealthCheck)
	r.GET("/version", ctrl.GetVersion)
	r.GET("/catalog", ctrl.GetCatalog)

	r.POST("/register", ctrl.Register)
	r.POST("/login", ctrl.Login)

	authed := r.Group("/", ctrl.RequireAuth)
	{
		authed.POST("/logout", ctrl.Logout)
		authed.GET("/users/me", ctrl.GetProfile)
		authed.GET("/users/me/bids", ctrl.GetMyBids)
	}

	products := r.Group("/products")
	{
		products.GET("", ctrl.GetProducts)
		products.GET("/:id", ctrl.GetProduct)
		products.POST("", ctrl.RequireAuth, ctrl.CreateProduct)
		products.POST("/:id/bids", ctrl.RequireAuth, ctrl.PlaceBid)

		products.PUT("/:id", ctrl.RequireAuth, ctrl.RequireAdmin, ctrl.UpdateProduct)
		products.PATCH("/:id/approval", ctrl.RequireAuth, ctrl.RequireAdmin, ctrl.SetApproval)
		products.DELETE("/:id", ctrl.RequireAuth, ctrl.RequireAdmin, ctrl.DeleteProduct)
	}

	r.GET("/stats", ctrl.RequireAuth, ctrl.RequireAdmin, ctrl.GetStats)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
