package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
)

// routeService implements the RouteSvcFacade interface
type routeService struct {
	BaseService
	routeRepo portsrepo.RouteRepositoryFacade
	broker    *watch.Broker
	now       func() time.Time
}

// NewRouteService creates a new route service
func NewRouteService(repo portsrepo.RouteRepositoryFacade, broker *watch.Broker) portssvc.RouteSvcFacade {
	return &routeService{
		routeRepo: repo,
		broker:    broker,
		now:       time.Now,
	}
}

var _ portssvc.RouteSvcFacade = (*routeService)(nil)

func (s *routeService) publish(path, op string) {
	if s.broker != nil {
		s.broker.Publish(path, op)
	}
}

func (s *routeService) GetRoute(ctx context.Context, name string) (*domain.Route, error) {
	route, err := s.routeRepo.FindRouteByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get route %s: %w", name, err)
	}
	return route, nil
}

func (s *routeService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	routes, err := s.routeRepo.FindRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

func (s *routeService) CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*domain.Route, error) {
	if _, err := s.routeRepo.FindRouteByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("route %s already exists: %w", req.Name, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check route %s: %w", req.Name, err)
	}

	nowMillis := s.now().UnixMilli()
	route := domain.Route{
		Name:        req.Name,
		Villages:    req.Villages,
		CreatedDate: nowMillis,
		LastUpdated: nowMillis,
	}

	if err := s.routeRepo.SaveRoute(ctx, route); err != nil {
		s.LogError(ctx, err, "Failed to create route", slog.String("route_name", req.Name))
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.publish(watch.Path("routes", req.Name), watch.OpCreate)
	return &route, nil
}

func (s *routeService) UpdateRoute(ctx context.Context, name string, req dto.UpdateRouteRequest) (*domain.Route, error) {
	route, err := s.routeRepo.FindRouteByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get route %s: %w", name, err)
	}

	route.Villages = req.Villages
	route.LastUpdated = s.now().UnixMilli()

	if err := s.routeRepo.UpdateRoute(ctx, *route); err != nil {
		s.LogError(ctx, err, "Failed to update route", slog.String("route_name", name))
		return nil, fmt.Errorf("failed to update route %s: %w", name, err)
	}

	s.publish(watch.Path("routes", name), watch.OpUpdate)
	return route, nil
}

func (s *routeService) DeleteRoute(ctx context.Context, name string) error {
	if err := s.routeRepo.DeleteRoute(ctx, name); err != nil {
		return fmt.Errorf("failed to delete route %s: %w", name, err)
	}
	s.publish(watch.Path("routes", name), watch.OpDelete)
	return nil
}
