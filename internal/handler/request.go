package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// RequestHandler handles HTTP requests for trip requests.
type RequestHandler struct {
	requestService    *service.RequestService
	allocationService *service.AllocationService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService *service.RequestService, allocationService *service.AllocationService) *RequestHandler {
	return &RequestHandler{
		requestService:    requestService,
		allocationService: allocationService,
	}
}

// CreateRequestBody is the HTTP request body for creating a trip request.
type CreateRequestBody struct {
	Purpose        string    `json:"purpose"`
	Destination    string    `json:"destination"`
	PassengerCount int       `json:"passenger_count"`
	Notes          string    `json:"notes,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// DecideRequestBody is the HTTP request body for an approver decision.
type DecideRequestBody struct {
	Action string `json:"action"` // approve | reject
	Reason string `json:"reason,omitempty"`
}

// RequestResponse is the HTTP representation of a trip request.
type RequestResponse struct {
	ID                string  `json:"id"`
	RequesterID       string  `json:"requester_id"`
	Purpose           string  `json:"purpose"`
	Destination       string  `json:"destination"`
	PassengerCount    int     `json:"passenger_count"`
	Notes             string  `json:"notes,omitempty"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Status            string  `json:"status"`
	ApproverID        string  `json:"approver_id"`
	AssignedVehicleID string  `json:"assigned_vehicle_id,omitempty"`
	AssignedDriverID  string  `json:"assigned_driver_id,omitempty"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func toRequestResponse(req *domain.TripRequest) RequestResponse {
	return RequestResponse{
		ID:                req.ID,
		RequesterID:       req.RequesterID,
		Purpose:           req.Purpose,
		Destination:       req.Destination,
		PassengerCount:    req.PassengerCount,
		Notes:             req.Notes,
		StartTime:         req.Window.Start.Format(time.RFC3339),
		EndTime:           req.Window.End.Format(time.RFC3339),
		Status:            string(req.Status),
		ApproverID:        req.ApproverID,
		AssignedVehicleID: req.AssignedVehicleID,
		AssignedDriverID:  req.AssignedDriverID,
		RejectionReason:   req.RejectionReason,
		CreatedAt:         req.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.requestService.Create(c.Request.Context(), actor, service.CreateRequestInput{
		Purpose:        body.Purpose,
		Destination:    body.Destination,
		PassengerCount: body.PassengerCount,
		Notes:          body.Notes,
		Window:         domain.TimeWindow{Start: body.StartTime, End: body.EndTime},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRequestResponse(req))
}

// Get handles GET /v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	req, err := h.requestService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponse(req))
}

// List handles GET /v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), actor, domain.RequestStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RequestResponse, 0, len(requests))
	for _, req := range requests {
		response = append(response, toRequestResponse(req))
	}
	c.JSON(http.StatusOK, response)
}

// Cancel handles POST /v1/requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	req, err := h.requestService.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponse(req))
}

// Decide handles POST /v1/requests/:id/decide
func (h *RequestHandler) Decide(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var body DecideRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	switch body.Action {
	case "approve":
		result, err := h.allocationService.Allocate(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"request": toRequestResponse(result.Request),
			"vehicle": toVehicleResponse(result.Vehicle),
		})

	case "reject":
		req, err := h.allocationService.Reject(c.Request.Context(), actor, c.Param("id"), body.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRequestResponse(req))

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "action must be approve or reject"})
	}
}
