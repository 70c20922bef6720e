package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"
	"rentdesk/internal/services"
	"rentdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

type otherCostPayload struct {
	CostType string `json:"cost_type"`
	Amount   int64  `json:"amount"`
}

type createTripPayload struct {
	CustomerID int64  `json:"customer_id" binding:"required"`
	VehicleID  int64  `json:"vehicle_id" binding:"required"`
	DriverID   *int64 `json:"driver_id"`

	FromLocation        string   `json:"from_location" binding:"required"`
	ToLocation          string   `json:"to_location" binding:"required"`
	Waypoints           []string `json:"waypoints"`
	EstimatedDistanceKm float64  `json:"estimated_distance_km"`

	LeavingDatetime         string `json:"leaving_datetime" binding:"required"` // "YYYY-MM-DD HH:MM:SS"
	EstimatedReturnDatetime string `json:"estimated_return_datetime"`
	EstimatedDays           int    `json:"estimated_days" binding:"required"`

	DriverRequired bool   `json:"driver_required"`
	FuelRequired   bool   `json:"fuel_required"`
	UpDown         string `json:"up_down"`

	Discount   int64              `json:"discount"`
	OtherCosts []otherCostPayload `json:"other_costs"`
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req createTripPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	leaving, err := utils.ParseDateTime(req.LeavingDatetime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid leaving_datetime", err)
		return
	}

	in := services.CreateTripInput{
		CustomerID:          req.CustomerID,
		VehicleID:           req.VehicleID,
		DriverID:            req.DriverID,
		FromLocation:        strings.TrimSpace(req.FromLocation),
		ToLocation:          strings.TrimSpace(req.ToLocation),
		Waypoints:           req.Waypoints,
		EstimatedDistanceKm: req.EstimatedDistanceKm,
		LeavingDatetime:     leaving,
		EstimatedDays:       req.EstimatedDays,
		DriverRequired:      req.DriverRequired,
		FuelRequired:        req.FuelRequired,
		UpDown:              strings.TrimSpace(req.UpDown),
		Discount:            req.Discount,
	}
	if s := strings.TrimSpace(req.EstimatedReturnDatetime); s != "" {
		ret, err := utils.ParseDateTime(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid estimated_return_datetime", err)
			return
		}
		in.EstimatedReturnDatetime = ret
	}
	for _, oc := range req.OtherCosts {
		in.OtherCosts = append(in.OtherCosts, models.OtherCost{CostType: oc.CostType, Amount: oc.Amount})
	}

	view, err := tripService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	view, err := tripService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/trips?status=Pending&customer_id=&vehicle_id=&start=&end=&page=&limit=
func GetTrips(c *gin.Context) {
	f := repositories.TripFilter{
		Status:     strings.TrimSpace(c.Query("status")),
		CustomerID: queryInt64(c, "customer_id"),
		VehicleID:  queryInt64(c, "vehicle_id"),
		StartDate:  strings.TrimSpace(c.Query("start")),
		EndDate:    strings.TrimSpace(c.Query("end")),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 50),
	}
	trips, err := tripService(c).List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "page": f.Page, "limit": f.Limit})
}

type meterPayload struct {
	StartMeter *int64 `json:"start_meter"`
	EndMeter   *int64 `json:"end_meter"`
}

// PUT /api/trips/:id/start
func StartTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req meterPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.StartMeter == nil {
		RespondError(c, http.StatusBadRequest, "start_meter is required", nil)
		return
	}
	view, err := tripService(c).Start(c.Request.Context(), id, *req.StartMeter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/trips/:id/end
func EndTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req meterPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.EndMeter == nil {
		RespondError(c, http.StatusBadRequest, "end_meter is required", nil)
		return
	}
	view, err := tripService(c).End(c.Request.Context(), id, *req.EndMeter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/trips/:id/complete
func CompleteTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	view, err := tripService(c).Complete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/trips/:id/cancel
func CancelTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	view, err := tripService(c).Cancel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type datesPayload struct {
	LeavingDatetime         string `json:"leaving_datetime" binding:"required"`
	EstimatedReturnDatetime string `json:"estimated_return_datetime" binding:"required"`
}

// PUT /api/trips/:id/dates
func AlterTripDates(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req datesPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	leaving, err := utils.ParseDateTime(req.LeavingDatetime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid leaving_datetime", err)
		return
	}
	ret, err := utils.ParseDateTime(req.EstimatedReturnDatetime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid estimated_return_datetime", err)
		return
	}
	view, err := tripService(c).AlterDates(c.Request.Context(), id, leaving, ret)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/trips/:id/meters
func AlterTripMeters(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req meterPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.StartMeter == nil && req.EndMeter == nil {
		RespondError(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}
	view, err := tripService(c).AlterMeters(c.Request.Context(), id, req.StartMeter, req.EndMeter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type damagePayload struct {
	Amount int64 `json:"amount"`
}

// POST /api/trips/:id/damages
func AddTripDamage(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req damagePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := tripService(c).AddDamage(c.Request.Context(), id, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/trips/:id/other-costs
func AddTripOtherCost(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req otherCostPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := tripService(c).AddOtherCost(c.Request.Context(), id, strings.TrimSpace(req.CostType), req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/trips/:id/other-costs/:costId
func RemoveTripOtherCost(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	costID, err := strconv.ParseInt(strings.TrimSpace(c.Param("costId")), 10, 64)
	if err != nil || costID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid cost id", err)
		return
	}
	view, err := tripService(c).RemoveOtherCost(c.Request.Context(), id, costID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
