package repositories

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
)

// AgentReader defines read operations for agent data
type AgentReader interface {
	// FindAgentByName retrieves an agent by name.
	FindAgentByName(ctx context.Context, name string) (*domain.Agent, error)

	// FindAgents retrieves all agents.
	FindAgents(ctx context.Context) ([]domain.Agent, error)

	// CountCustomersByAgent counts the customers currently assigned to an agent.
	CountCustomersByAgent(ctx context.Context, name string) (int, error)
}

// AgentWriter defines write operations for agent data
type AgentWriter interface {
	// SaveAgent persists a new agent.
	SaveAgent(ctx context.Context, agent domain.Agent) error

	// UpdateAgent updates an agent's mobile, address, routes or password hash.
	UpdateAgent(ctx context.Context, agent domain.Agent) error

	// RenameAgent renames an agent and rewrites the agent reference on every
	// customer assigned to the old name in one database transaction.
	RenameAgent(ctx context.Context, oldName, newName string, updatedAt int64) error
}

// AgentRepositoryFacade combines all agent-related repository interfaces
type AgentRepositoryFacade interface {
	AgentReader
	AgentWriter
}
