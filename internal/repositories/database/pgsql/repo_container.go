package pgsql

import (
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		AgentRepo:     newPgxAgentRepository(dbPool),
		RouteRepo:     newPgxRouteRepository(dbPool),
		RetentionRepo: newPgxRetentionRepository(dbPool),
	}
}
