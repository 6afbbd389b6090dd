package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// TripHandler handles the driver-side trip transitions.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// AdvanceRequestBody is the HTTP request body for advancing a trip.
type AdvanceRequestBody struct {
	Status  string   `json:"status"` // in_progress | completed
	Mileage *float64 `json:"mileage,omitempty"`
	Fuel    *float64 `json:"fuel,omitempty"`
}

// Advance handles POST /v1/requests/:id/advance
func (h *TripHandler) Advance(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var body AdvanceRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	switch domain.RequestStatus(body.Status) {
	case domain.RequestStatusInProgress:
		req, err := h.tripService.Start(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRequestResponse(req))

	case domain.RequestStatusCompleted:
		req, err := h.tripService.Complete(c.Request.Context(), actor, c.Param("id"), service.Telemetry{
			Mileage: body.Mileage,
			Fuel:    body.Fuel,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRequestResponse(req))

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be in_progress or completed"})
	}
}
