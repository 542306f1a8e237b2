package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
)

// respondError maps the application error kinds onto conventional status
// codes. Storage failures are logged with their cause but surfaced opaquely.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := apperr.Message(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindStorage:
		logger.Error("request failed", zap.Error(err))
		message = "server error"
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}
