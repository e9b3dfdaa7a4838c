package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farm_market/internal/controllers"
	"farm_market/internal/imagestore"
	"farm_market/internal/metrics"
	"farm_market/internal/middleware"
)

// Deps is everything the router hands requests to.
type Deps struct {
	Auth     *controllers.AuthController
	Shops    *controllers.ShopController
	Products *controllers.ProductController

	Tokens      middleware.TokenParser
	AuthLimiter *middleware.RateLimiter

	// UploadDir is served under imagestore.MountPath when images are kept on local disk.
	UploadDir string
}

// SetupRouter registers every route on r. Global middleware is the caller's.
func SetupRouter(r *gin.Engine, d Deps) *gin.Engine {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if d.UploadDir != "" {
		r.Static(imagestore.MountPath, d.UploadDir)
	}

	api := r.Group("/api")
	AuthRoutes(api, d)
	ShopRoutes(api, d)
	ProductRoutes(api, d)

	return r
}
