package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// RouteService handles interactions with the Google Maps Directions API.
// The costing core treats the returned distance as an opaque input.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// RouteEstimate is the mapped route summary for a trip request.
type RouteEstimate struct {
	DistanceKm float64
	Duration   time.Duration
}

// EstimateRoute returns the driving distance and duration from origin to
// destination through the waypoints, visited in the given order.
func (s *RouteService) EstimateRoute(ctx context.Context, origin, destination string, waypoints []string) (RouteEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return RouteEstimate{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteEstimate{}, fmt.Errorf("no route found")
	}

	var est RouteEstimate
	for _, leg := range routes[0].Legs {
		est.DistanceKm += float64(leg.Distance.Meters) / 1000.0
		est.Duration += leg.Duration
	}
	return est, nil
}
