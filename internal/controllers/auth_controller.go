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

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, actor *auth.Actor) (*models.User, error)
}

type AuthController struct {
	svc AuthService
	log *logrus.Logger
}

func NewAuthController(svc AuthService, log *logrus.Logger) *AuthController {
	return &AuthController{svc: svc, log: log}
}

type registerInput struct {
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Location      string `json:"location" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Role          string `json:"role" binding:"required,oneof=farmer shopper"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var body registerInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, token, err := ac.svc.Register(c.Request.Context(), services.RegisterInput{
		Username:      body.Username,
		Email:         body.Email,
		Password:      body.Password,
		Location:      body.Location,
		ContactNumber: body.ContactNumber,
		Role:          models.Role(body.Role),
	})
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"token":   token,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, token, err := ac.svc.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
	})
}

func (ac *AuthController) Profile(c *gin.Context) {
	user, err := ac.svc.Profile(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
