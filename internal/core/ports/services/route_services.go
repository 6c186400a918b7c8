package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// RouteSvcFacade defines CRUD operations for collection routes.
// Village membership across routes is advisory; overlaps are not rejected.
type RouteSvcFacade interface {
	// GetRoute retrieves a route by name.
	GetRoute(ctx context.Context, name string) (*domain.Route, error)

	// ListRoutes retrieves all routes.
	ListRoutes(ctx context.Context) ([]domain.Route, error)

	// CreateRoute creates a named village set.
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*domain.Route, error)

	// UpdateRoute replaces a route's villages.
	UpdateRoute(ctx context.Context, name string, req dto.UpdateRouteRequest) (*domain.Route, error)

	// DeleteRoute removes a route.
	DeleteRoute(ctx context.Context, name string) error
}
