package domain

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusAssigned    VehicleStatus = "assigned"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusScrapped    VehicleStatus = "scrapped"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID        string
	Plate     string // unique
	Brand     string
	Model     string
	Color     string
	Capacity  int
	Status    VehicleStatus
	Mileage   float64
	FuelLevel float64 // 0-100 inclusive
}
