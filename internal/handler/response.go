package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/volcano-island/service-campsite/internal/domain"
)

// respondError maps any engine failure to a 400 response. Domain errors
// carry their own user-facing message; everything else is logged with the
// request inputs and reduced to a generic message so internals never leak.
func respondError(c *gin.Context, log *zap.Logger, err error, inputs ...zap.Field) {
	if appErr, ok := domain.AsError(err); ok {
		log.Error(appErr.Message, inputs...)
		c.JSON(http.StatusBadRequest, appErr.Message)
		return
	}

	log.Error("unexpected error", append(inputs, zap.Error(err))...)
	c.JSON(http.StatusBadRequest, "Unexpected Error.")
}
