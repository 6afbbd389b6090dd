package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	fleetService *service.FleetService
	vehicleRepo  repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(fleetService *service.FleetService, vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{
		fleetService: fleetService,
		vehicleRepo:  vehicleRepo,
	}
}

// RegisterVehicleBody is the HTTP request body for registering a vehicle.
type RegisterVehicleBody struct {
	Plate     string  `json:"plate"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Color     string  `json:"color"`
	Capacity  int     `json:"capacity"`
	Mileage   float64 `json:"mileage"`
	FuelLevel float64 `json:"fuel_level"`
}

// SetVehicleStatusBody is the HTTP request body for a manual status change.
type SetVehicleStatusBody struct {
	Status string `json:"status"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID        string  `json:"id"`
	Plate     string  `json:"plate"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Color     string  `json:"color"`
	Capacity  int     `json:"capacity"`
	Status    string  `json:"status"`
	Mileage   float64 `json:"mileage"`
	FuelLevel float64 `json:"fuel_level"`
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Color:     v.Color,
		Capacity:  v.Capacity,
		Status:    string(v.Status),
		Mileage:   v.Mileage,
		FuelLevel: v.FuelLevel,
	}
}

// Register handles POST /v1/vehicles
func (h *VehicleHandler) Register(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var body RegisterVehicleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.fleetService.RegisterVehicle(c.Request.Context(), actor, service.RegisterVehicleInput{
		Plate:     body.Plate,
		Brand:     body.Brand,
		Model:     body.Model,
		Color:     body.Color,
		Capacity:  body.Capacity,
		Mileage:   body.Mileage,
		FuelLevel: body.FuelLevel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	var (
		vehicles []*domain.Vehicle
		err      error
	)

	if status := c.Query("status"); status != "" {
		vehicles, err = h.vehicleRepo.ListByStatus(c.Request.Context(), domain.VehicleStatus(status))
	} else {
		vehicles, err = h.vehicleRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}
	c.JSON(http.StatusOK, response)
}

// SetStatus handles PUT /v1/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var body SetVehicleStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.fleetService.SetVehicleStatus(c.Request.Context(), actor, c.Param("id"), domain.VehicleStatus(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}
