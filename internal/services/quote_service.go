package services

import (
	"context"
	"fmt"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/maps"
	"rentdesk/internal/utils"
)

// RouteEstimator is the mapping collaborator: free-text addresses in, a
// route distance out. Satisfied by maps.RouteService.
type RouteEstimator interface {
	EstimateRoute(ctx context.Context, origin, destination string, waypoints []string) (maps.RouteEstimate, error)
}

// QuoteService prices a prospective trip before anything is booked: resolve
// tariffs, map the route when no distance is supplied, run the cost engine.
type QuoteService struct {
	Tariffs      TariffService
	Routes       RouteEstimator // nil requires DistanceKm on the request
	FreeKmPerDay int64
	RequestID    string
}

// QuoteRequest mirrors the booking form.
type QuoteRequest struct {
	VehicleID      int64    `json:"vehicle_id"`
	DriverID       *int64   `json:"driver_id,omitempty"`
	DriverRequired bool     `json:"driver_required"`
	FromLocation   string   `json:"from_location"`
	ToLocation     string   `json:"to_location"`
	Waypoints      []string `json:"waypoints,omitempty"`
	DistanceKm     float64  `json:"distance_km,omitempty"` // 0 = estimate via mapping
	Days           int      `json:"days"`
	Discount       int64    `json:"discount"`
	OtherCostsSum  int64    `json:"other_costs_sum"`
}

// QuoteResult is the priced route.
type QuoteResult struct {
	DistanceKm float64              `json:"distance_km"`
	Breakdown  domain.CostBreakdown `json:"breakdown"`
}

// Quote prices the request. Distance precedence: an explicitly supplied
// distance wins; otherwise the route is mapped.
func (s QuoteService) Quote(ctx context.Context, req QuoteRequest) (QuoteResult, error) {
	if req.Days < 1 {
		return QuoteResult{}, domain.ValidationError{Field: "days", Msg: "must be at least 1"}
	}
	if req.Discount < 0 {
		return QuoteResult{}, domain.ValidationError{Field: "discount", Msg: "cannot be negative"}
	}
	if req.DistanceKm < 0 {
		return QuoteResult{}, domain.ValidationError{Field: "distance_km", Msg: "cannot be negative"}
	}

	snap, err := s.Tariffs.Resolve(ctx, req.VehicleID, req.DriverID, req.DriverRequired)
	if err != nil {
		return QuoteResult{}, err
	}

	distance := req.DistanceKm
	if distance == 0 {
		if s.Routes == nil {
			return QuoteResult{}, domain.ValidationError{Field: "distance_km", Msg: "required when route mapping is unavailable"}
		}
		est, err := s.Routes.EstimateRoute(ctx, req.FromLocation, req.ToLocation, req.Waypoints)
		if err != nil {
			return QuoteResult{}, domain.InternalError{Msg: "route estimate failed", Err: err}
		}
		distance = est.DistanceKm
	}

	trip := models.Trip{
		DriverRequired:      req.DriverRequired,
		Discount:            req.Discount,
		OtherCosts:          []models.OtherCost{{Amount: req.OtherCostsSum}},
		EstimatedDays:       req.Days,
		EstimatedDistanceKm: distance,
	}
	in := domain.EstimatedInput(trip, snap, s.FreeKmPerDay)

	utils.LogEvent(s.RequestID, "quote", "price", fmt.Sprintf("vehicle_id=%d distance_km=%.1f days=%d", req.VehicleID, distance, req.Days))
	return QuoteResult{DistanceKm: distance, Breakdown: domain.ComputeCost(in)}, nil
}
