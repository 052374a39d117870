// Package maps wraps the Google Maps API for trip-distance resolution.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// RouteService resolves driving distances between free-form addresses.
type RouteService struct {
	client *maps.Client
}

func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DrivingDistanceKm returns the driving distance from origin to destination.
// Results are biased to Japan since all brokerage jobs are domestic.
func (s *RouteService) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "ja",
		Region:      "JP",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found from %q to %q", origin, destination)
	}

	var meters int
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / 1000.0, nil
}
