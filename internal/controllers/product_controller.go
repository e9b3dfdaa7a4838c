package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/auth"
	"farm_market/internal/imagestore"
	"farm_market/internal/middleware"
	"farm_market/internal/models"
	"farm_market/internal/services"
)

type ProductService interface {
	Create(ctx context.Context, actor *auth.Actor, in services.ProductInput, img *imagestore.Image) (*models.Product, error)
	Update(ctx context.Context, actor *auth.Actor, productID uint, upd services.ProductUpdate, img *imagestore.Image) (*models.Product, error)
	Delete(ctx context.Context, actor *auth.Actor, productID uint) error
	ListByShop(ctx context.Context, actor *auth.Actor, shopID uint) ([]models.Product, error)
	Search(ctx context.Context, actor *auth.Actor, term string) ([]models.Product, error)
	ListCatalog(ctx context.Context, actor *auth.Actor) ([]models.Product, error)
}

type ProductController struct {
	svc           ProductService
	maxImageBytes int64
	log           *logrus.Logger
}

func NewProductController(svc ProductService, maxImageBytes int64, log *logrus.Logger) *ProductController {
	return &ProductController{svc: svc, maxImageBytes: maxImageBytes, log: log}
}

// Create handles a multipart product submission with an optional image.
func (pc *ProductController) Create(c *gin.Context) {
	in, img, err := productInput(c, pc.maxImageBytes)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	product, err := pc.svc.Create(c.Request.Context(), middleware.CurrentActor(c), in, img)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "product added successfully",
		"product": product,
	})
}

func (pc *ProductController) Update(c *gin.Context) {
	id, err := parseID(c.Param("productId"), "productId")
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	upd, img, err := productUpdate(c, pc.maxImageBytes)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	product, err := pc.svc.Update(c.Request.Context(), middleware.CurrentActor(c), id, upd, img)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product updated successfully",
		"product": product,
	})
}

func (pc *ProductController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("productId"), "productId")
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	if err := pc.svc.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

func (pc *ProductController) ListByShop(c *gin.Context) {
	shopID, err := parseID(c.Param("shopId"), "shopId")
	if err != nil {
		respondError(c, pc.log, err)
		return
	}

	products, err := pc.svc.ListByShop(c.Request.Context(), middleware.CurrentActor(c), shopID)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) Search(c *gin.Context) {
	products, err := pc.svc.Search(c.Request.Context(), middleware.CurrentActor(c), c.Query("name"))
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListCatalog serves the farmer price-comparison view.
func (pc *ProductController) ListCatalog(c *gin.Context) {
	products, err := pc.svc.ListCatalog(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
