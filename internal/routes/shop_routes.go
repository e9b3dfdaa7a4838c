package routes

import (
	"github.com/gin-gonic/gin"

	"farm_market/internal/middleware"
	"farm_market/internal/models"
)

func ShopRoutes(api *gin.RouterGroup, d Deps) {
	shops := api.Group("")
	shops.Use(middleware.RequireAuth(d.Tokens))
	{
		shops.GET("/shops", d.Shops.List)
		shops.GET("/shops/:shopId/products", d.Products.ListByShop)
		shops.GET("/my-shops", middleware.RequireRole(models.RoleShopper), d.Shops.ListMine)
		shops.POST("/shops", middleware.RequireRole(models.RoleShopper), d.Shops.Create)
	}
}
