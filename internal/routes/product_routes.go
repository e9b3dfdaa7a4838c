package routes

import (
	"github.com/gin-gonic/gin"

	"farm_market/internal/middleware"
	"farm_market/internal/models"
)

func ProductRoutes(api *gin.RouterGroup, d Deps) {
	products := api.Group("/products")
	products.Use(middleware.RequireAuth(d.Tokens))
	{
		products.GET("/search", d.Products.Search)
		products.GET("", middleware.RequireRole(models.RoleFarmer), d.Products.ListCatalog)
	}

	// Shopper-only mutations are rejected on role before the form is parsed.
	owned := products.Group("", middleware.RequireRole(models.RoleShopper))
	{
		owned.POST("", d.Products.Create)
		owned.PUT("/:productId", d.Products.Update)
		owned.DELETE("/:productId", d.Products.Delete)
	}
}
