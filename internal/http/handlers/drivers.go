package handlers

import (
	"net/http"
	"strings"

	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"

	"github.com/gin-gonic/gin"
)

type driverPayload struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Status        string `json:"status"`
	CostPerDay    int64  `json:"cost_per_day"`
}

func (p driverPayload) model() models.Driver {
	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = "active"
	}
	return models.Driver{
		Name:          strings.TrimSpace(p.Name),
		Phone:         strings.TrimSpace(p.Phone),
		LicenseNumber: strings.TrimSpace(p.LicenseNumber),
		Status:        status,
		Tariff:        models.DriverTariff{CostPerDay: p.CostPerDay},
	}
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var req driverPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.DriverRepository{}
	id, err := repo.Create(req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	d, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	repo := repositories.DriverRepository{}
	drivers, err := repo.List(c.Query("q"), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GET /api/drivers/:id
func GetDriver(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	d, err := repositories.DriverRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req driverPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	d := req.model()
	d.ID = id
	repo := repositories.DriverRepository{}
	if err := repo.Update(d); err != nil {
		RespondDomainError(c, err)
		return
	}
	tariffService(c).Invalidate(c.Request.Context(), 0, id)
	out, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.DriverRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	tariffService(c).Invalidate(c.Request.Context(), 0, id)
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
