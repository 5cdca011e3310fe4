package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/services/booking"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// BookingHandler exposes the three pipeline operations as tool endpoints.
// Well-formed calls always answer 200 with the voice envelope; the envelope
// itself carries the error flag so the agent can speak every outcome.
type BookingHandler struct {
	pipeline booking.Pipeline
	logger   *zap.Logger
}

// NewBookingHandler creates the handler over a pipeline.
func NewBookingHandler(pipeline booking.Pipeline) *BookingHandler {
	return &BookingHandler{pipeline: pipeline, logger: utils.GetLogger()}
}

// SearchAvailability handles POST /api/tools/search-availability.
func (h *BookingHandler) SearchAvailability(c *gin.Context) {
	var query models.AvailabilityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid search request", err.Error())
		return
	}

	h.logger.Info("tool called",
		zap.String("tool", "search_availability"),
		zap.String("sessionId", query.SessionID),
		zap.String("platform", query.Platform),
	)
	c.JSON(http.StatusOK, h.pipeline.SearchAvailability(c.Request.Context(), query))
}

type validateInput struct {
	SessionID        string              `json:"sessionId" binding:"required"`
	SelectedOptionID string              `json:"selectedOptionId" binding:"required"`
	CustomerInfo     models.CustomerInfo `json:"customerInfo"`
}

// ValidateBooking handles POST /api/tools/validate-booking.
func (h *BookingHandler) ValidateBooking(c *gin.Context) {
	var input validateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid validation request", err.Error())
		return
	}

	h.logger.Info("tool called",
		zap.String("tool", "validate_booking_selection"),
		zap.String("sessionId", input.SessionID),
		zap.String("optionId", input.SelectedOptionID),
	)
	c.JSON(http.StatusOK, h.pipeline.ValidateSelection(c.Request.Context(), input.SessionID, input.SelectedOptionID, input.CustomerInfo))
}

type handoffInput struct {
	SessionID         string `json:"sessionId" binding:"required"`
	ContactPreference string `json:"customerContactPreference"`
}

// PrepareHandoff handles POST /api/tools/prepare-handoff.
func (h *BookingHandler) PrepareHandoff(c *gin.Context) {
	var input handoffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid handoff request", err.Error())
		return
	}

	h.logger.Info("tool called",
		zap.String("tool", "prepare_payment_handoff"),
		zap.String("sessionId", input.SessionID),
		zap.String("contactPreference", input.ContactPreference),
	)
	c.JSON(http.StatusOK, h.pipeline.PrepareHandoff(c.Request.Context(), input.SessionID, input.ContactPreference))
}
