package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// AgentReaderSvc defines read operations for agent data
type AgentReaderSvc interface {
	// GetAgent retrieves an agent by name.
	GetAgent(ctx context.Context, name string) (*domain.Agent, error)

	// ListAgents retrieves all agents with their customer counts.
	ListAgents(ctx context.Context) ([]dto.AgentResponse, error)
}

// AgentWriterSvc defines write operations for agent data
type AgentWriterSvc interface {
	// CreateAgent creates an agent with a bcrypt-hashed password.
	CreateAgent(ctx context.Context, req dto.CreateAgentRequest, createdBy string) (*domain.Agent, error)

	// UpdateAgent updates an agent's mobile, address, routes or password.
	UpdateAgent(ctx context.Context, name string, req dto.UpdateAgentRequest) (*domain.Agent, error)

	// RenameAgent renames an agent, cascading the new name to all assigned
	// customers. Renaming onto an existing agent returns ErrConflict.
	RenameAgent(ctx context.Context, oldName string, req dto.RenameAgentRequest) (*domain.Agent, error)
}

// AgentLifecycleSvc defines operations for managing agent lifecycle
type AgentLifecycleSvc interface {
	// DeleteAgent moves an agent to the recycle bin. Customers assigned to
	// the agent are left in place; the retention record captures how many
	// there were at deletion time.
	DeleteAgent(ctx context.Context, name string, deletedBy string) error
}

// AgentAuthSvc defines agent credential verification
type AgentAuthSvc interface {
	// AuthenticateAgent verifies an agent's password.
	AuthenticateAgent(ctx context.Context, name, password string) (*domain.Agent, error)
}

// AgentSvcFacade combines all agent-related service interfaces
type AgentSvcFacade interface {
	AgentReaderSvc
	AgentWriterSvc
	AgentLifecycleSvc
	AgentAuthSvc
}
