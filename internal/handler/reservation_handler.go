package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/volcano-island/service-campsite/internal/application"
)

// ReservationHandler handles HTTP requests for booking operations.
type ReservationHandler struct {
	service *application.ReservationService
	logger  *zap.Logger
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, logger: logger}
}

// RegisterRoutes registers the reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reservation", h.BookReservation)
	r.PUT("/modifyReservation", h.ModifyReservation)
	r.DELETE("/cancelReservation", h.CancelReservation)
}

// BookReservation handles POST /reservation.
func (h *ReservationHandler) BookReservation(c *gin.Context) {
	email := c.Query("email")
	firstName := c.Query("fName")
	lastName := c.Query("lName")
	arrivalDate := c.Query("aDate")
	departureDate := c.Query("dDate")

	identifier, err := h.service.Book(c.Request.Context(), email, firstName, lastName, arrivalDate, departureDate)
	if err != nil {
		respondError(c, h.logger, err,
			zap.String("email", email),
			zap.String("first_name", firstName),
			zap.String("last_name", lastName),
			zap.String("arrival_date", arrivalDate),
			zap.String("departure_date", departureDate),
		)
		return
	}

	h.logger.Info("reservation booked", zap.String("booking_identifier", identifier))
	c.JSON(http.StatusOK, "BookingId: "+identifier)
}

// ModifyReservation handles PUT /modifyReservation.
func (h *ReservationHandler) ModifyReservation(c *gin.Context) {
	email := c.Query("email")
	arrivalDate := c.Query("aDate")
	departureDate := c.Query("dDate")
	identifier := c.Query("bookingIdentifier")

	if err := h.service.Modify(c.Request.Context(), email, arrivalDate, departureDate, identifier); err != nil {
		respondError(c, h.logger, err,
			zap.String("email", email),
			zap.String("arrival_date", arrivalDate),
			zap.String("departure_date", departureDate),
			zap.String("booking_identifier", identifier),
		)
		return
	}

	h.logger.Info("reservation modified", zap.String("booking_identifier", identifier))
	c.JSON(http.StatusOK, "BookingId: "+identifier)
}

// CancelReservation handles DELETE /cancelReservation.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	email := c.Query("email")
	identifier := c.Query("bookingIdentifier")

	if err := h.service.Cancel(c.Request.Context(), email, identifier); err != nil {
		respondError(c, h.logger, err,
			zap.String("email", email),
			zap.String("booking_identifier", identifier),
		)
		return
	}

	h.logger.Info("reservation cancelled", zap.String("booking_identifier", identifier))
	c.JSON(http.StatusOK, "Canceled: "+identifier)
}
