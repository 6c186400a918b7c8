package repositories

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
)

// RouteReader defines read operations for route data
type RouteReader interface {
	// FindRouteByName retrieves a route by name.
	FindRouteByName(ctx context.Context, name string) (*domain.Route, error)

	// FindRoutes retrieves all routes.
	FindRoutes(ctx context.Context) ([]domain.Route, error)
}

// RouteWriter defines write operations for route data
type RouteWriter interface {
	// SaveRoute persists a new route.
	SaveRoute(ctx context.Context, route domain.Route) error

	// UpdateRoute replaces a route's village list.
	UpdateRoute(ctx context.Context, route domain.Route) error

	// DeleteRoute removes a route.
	DeleteRoute(ctx context.Context, name string) error
}

// RouteRepositoryFacade combines all route-related repository interfaces
type RouteRepositoryFacade interface {
	RouteReader
	RouteWriter
}
