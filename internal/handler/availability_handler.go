package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/volcano-island/service-campsite/internal/application"
	"github.com/volcano-island/service-campsite/internal/domain/reservation"
)

// AvailabilityHandler handles HTTP requests for availability queries.
type AvailabilityHandler struct {
	service *application.AvailabilityService
	logger  *zap.Logger
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service *application.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, logger: logger}
}

// RegisterRoutes registers the availability routes on the given router group.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.ListAvailability)
}

// ListAvailability handles GET /availability. Omitted bounds default to
// tomorrow and a month out.
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate == "" {
		startDate = reservation.Today().AddDate(0, 0, 1).Format(reservation.DateLayout)
	}
	if endDate == "" {
		endDate = reservation.Today().AddDate(0, 0, reservation.MaxAdvanceReservationDays).Format(reservation.DateLayout)
	}

	dates, err := h.service.ListAvailableDates(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, h.logger, err,
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
		)
		return
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(reservation.DateLayout)
	}
	c.JSON(http.StatusOK, strings.Join(formatted, ", "))
}
