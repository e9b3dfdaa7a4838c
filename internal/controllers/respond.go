package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/logger"
	"farm_market/internal/services"
)

var statusByKind = map[services.Kind]int{
	services.KindUnauthenticated:   http.StatusUnauthorized,
	services.KindRoleDenied:        http.StatusForbidden,
	services.KindOwnershipDenied:   http.StatusForbidden,
	services.KindNotFound:          http.StatusNotFound,
	services.KindValidationFailed:  http.StatusBadRequest,
	services.KindImageUploadFailed: http.StatusBadGateway,
	services.KindDuplicateKey:      http.StatusConflict,
}

// respondError writes err as {"error": msg}. Internal errors are logged and
// hidden from the caller.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var se *services.Error
	status, known := statusByKind[services.KindOf(err)]
	if !known || !errors.As(err, &se) {
		logger.FromCtx(c.Request.Context(), log).WithError(err).
			WithField("path", c.FullPath()).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "an error occurred. please try again"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": se.Message})
}
