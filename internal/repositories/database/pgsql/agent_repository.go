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

type PgxAgentRepository struct {
	BaseRepository
}

func newPgxAgentRepository(pool *pgxpool.Pool) portsrepo.AgentRepositoryFacade {
	return &PgxAgentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgentRepositoryFacade = (*PgxAgentRepository)(nil)

const agentColumns = `name, mobile, address, password_hash, route, created_date, last_updated`

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.Name,
		&a.Mobile,
		&a.Address,
		&a.PasswordHash,
		&a.Route,
		&a.CreatedDate,
		&a.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAgentRepository) FindAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE name = $1;`
	agent, err := scanAgent(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agent %s: %w", name, err)
	}
	return agent, nil
}

func (r *PgxAgentRepository) FindAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+agentColumns+` FROM agents ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	agents := []domain.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}
		agents = append(agents, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating agent rows: %w", rows.Err())
	}
	return agents, nil
}

func (r *PgxAgentRepository) CountCustomersByAgent(ctx context.Context, name string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE agent_name = $1;`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers for agent %s: %w", name, err)
	}
	return count, nil
}

func (r *PgxAgentRepository) SaveAgent(ctx context.Context, agent domain.Agent) error {
	query := `
		INSERT INTO agents (` + agentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		agent.Name, agent.Mobile, agent.Address, agent.PasswordHash, agent.Route,
		agent.CreatedDate, agent.LastUpdated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("agent %s already exists: %w", agent.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save agent %s: %w", agent.Name, err)
	}
	return nil
}

func (r *PgxAgentRepository) UpdateAgent(ctx context.Context, agent domain.Agent) error {
	query := `
		UPDATE agents
		SET mobile = $1, address = $2, password_hash = $3, route = $4, last_updated = $5
		WHERE name = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		agent.Mobile, agent.Address, agent.PasswordHash, agent.Route, agent.LastUpdated, agent.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update agent %s: %w", agent.Name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", agent.Name, apperrors.ErrNotFound)
	}
	return nil
}

// RenameAgent rewrites the agent row key and every customer reference to it
// in one database transaction.
func (r *PgxAgentRepository) RenameAgent(ctx context.Context, oldName, newName string, updatedAt int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx,
		`UPDATE agents SET name = $1, last_updated = $2 WHERE name = $3;`, newName, updatedAt, oldName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("agent %s already exists: %w", newName, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to rename agent %s: %w", oldName, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("agent %s: %w", oldName, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE customers SET agent_name = $1, last_updated = $2 WHERE agent_name = $3;`,
		newName, updatedAt, oldName); err != nil {
		return fmt.Errorf("failed to cascade agent rename to customers: %w", err)
	}

	return r.Commit(ctx, tx)
}
