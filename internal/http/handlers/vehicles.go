package handlers

import (
	"net/http"
	"strings"

	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	VehicleCode string `json:"vehicle_code" binding:"required"`
	PlateNumber string `json:"plate_number" binding:"required"`
	VehicleType string `json:"vehicle_type"`
	Color       string `json:"color"`
	Seats       *int   `json:"seats"`
	OwnerName   string `json:"owner_name"`

	DailyRentOrLease           int64   `json:"daily_rent_or_lease"`
	MileageCostPerKm           int64   `json:"mileage_cost_per_km"`
	AdditionalMileageCostPerKm int64   `json:"additional_mileage_cost_per_km"`
	FuelCostPerLitre           int64   `json:"fuel_cost_per_litre"`
	FuelEfficiencyKmPerLitre   float64 `json:"fuel_efficiency_km_per_litre"`
}

func (p vehiclePayload) model() models.Vehicle {
	return models.Vehicle{
		VehicleCode: strings.TrimSpace(p.VehicleCode),
		PlateNumber: strings.TrimSpace(p.PlateNumber),
		VehicleType: strings.TrimSpace(p.VehicleType),
		Color:       strings.TrimSpace(p.Color),
		Seats:       p.Seats,
		OwnerName:   strings.TrimSpace(p.OwnerName),
		Tariff: models.VehicleTariff{
			DailyRentOrLease:           p.DailyRentOrLease,
			MileageCostPerKm:           p.MileageCostPerKm,
			AdditionalMileageCostPerKm: p.AdditionalMileageCostPerKm,
			FuelCostPerLitre:           p.FuelCostPerLitre,
			FuelEfficiencyKmPerLitre:   p.FuelEfficiencyKmPerLitre,
		},
	}
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var req vehiclePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.VehicleRepository{}
	id, err := repo.Create(req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	v, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /api/vehicles
func GetVehicles(c *gin.Context) {
	repo := repositories.VehicleRepository{}
	vehicles, err := repo.List(c.Query("q"), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GET /api/vehicles/:id
func GetVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	v, err := repositories.VehicleRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req vehiclePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	v := req.model()
	v.ID = id
	repo := repositories.VehicleRepository{}
	if err := repo.Update(v); err != nil {
		RespondDomainError(c, err)
		return
	}
	tariffService(c).Invalidate(c.Request.Context(), id, 0)
	out, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.VehicleRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	tariffService(c).Invalidate(c.Request.Context(), id, 0)
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
