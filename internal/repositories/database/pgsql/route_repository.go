package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRouteRepository struct {
	BaseRepository
}

func newPgxRouteRepository(pool *pgxpool.Pool) portsrepo.RouteRepositoryFacade {
	return &PgxRouteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RouteRepositoryFacade = (*PgxRouteRepository)(nil)

func (r *PgxRouteRepository) FindRouteByName(ctx context.Context, name string) (*domain.Route, error) {
	var route domain.Route
	err := r.Pool.QueryRow(ctx,
		`SELECT name, villages, created_date, last_updated FROM routes WHERE name = $1;`, name).
		Scan(&route.Name, &route.Villages, &route.CreatedDate, &route.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find route %s: %w", name, err)
	}
	return &route, nil
}

func (r *PgxRouteRepository) FindRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT name, villages, created_date, last_updated FROM routes ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	routes := []domain.Route{}
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(&route.Name, &route.Villages, &route.CreatedDate, &route.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		routes = append(routes, route)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", rows.Err())
	}
	return routes, nil
}

func (r *PgxRouteRepository) SaveRoute(ctx context.Context, route domain.Route) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO routes (name, villages, created_date, last_updated) VALUES ($1, $2, $3, $4);`,
		route.Name, route.Villages, route.CreatedDate, route.LastUpdated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("route %s already exists: %w", route.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save route %s: %w", route.Name, err)
	}
	return nil
}

func (r *PgxRouteRepository) UpdateRoute(ctx context.Context, route domain.Route) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE routes SET villages = $1, last_updated = $2 WHERE name = $3;`,
		route.Villages, route.LastUpdated, route.Name)
	if err != nil {
		return fmt.Errorf("failed to update route %s: %w", route.Name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("route %s: %w", route.Name, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRouteRepository) DeleteRoute(ctx context.Context, name string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM routes WHERE name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to delete route %s: %w", name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("route %s: %w", name, apperrors.ErrNotFound)
	}
	return nil
}
