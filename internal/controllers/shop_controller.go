package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/auth"
	"farm_market/internal/middleware"
	"farm_market/internal/models"
	"farm_market/internal/services"
)

type ShopService interface {
	Create(ctx context.Context, actor *auth.Actor, in services.ShopInput) (*models.Shop, error)
	List(ctx context.Context, actor *auth.Actor) ([]models.Shop, error)
	ListMine(ctx context.Context, actor *auth.Actor) ([]models.Shop, error)
}

type ShopController struct {
	svc ShopService
	log *logrus.Logger
}

func NewShopController(svc ShopService, log *logrus.Logger) *ShopController {
	return &ShopController{svc: svc, log: log}
}

func (sc *ShopController) Create(c *gin.Context) {
	var body struct {
		Name          string `json:"name" binding:"required"`
		Location      string `json:"location" binding:"required"`
		ContactNumber string `json:"contactNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := sc.svc.Create(c.Request.Context(), middleware.CurrentActor(c), services.ShopInput{
		Name:          body.Name,
		Location:      body.Location,
		ContactNumber: body.ContactNumber,
	})
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "shop added successfully",
		"shop":    shop,
	})
}

func (sc *ShopController) List(c *gin.Context) {
	shops, err := sc.svc.List(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (sc *ShopController) ListMine(c *gin.Context) {
	shops, err := sc.svc.ListMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, shops)
}
