package routes

import (
	"github.com/gin-gonic/gin"

	"farm_market/internal/middleware"
)

func AuthRoutes(api *gin.RouterGroup, d Deps) {
	public := api.Group("")
	if d.AuthLimiter != nil {
		public.Use(d.AuthLimiter.Middleware())
	}
	{
		public.POST("/register", d.Auth.Register)
		public.POST("/login", d.Auth.Login)
	}

	api.GET("/profile", middleware.RequireAuth(d.Tokens), d.Auth.Profile)
}
