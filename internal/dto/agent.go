package dto

import "github.com/Mubina-Mulla/Pigmi/internal/core/domain"

// CreateAgentRequest is the request body for creating a collection agent.
type CreateAgentRequest struct {
	Name     string   `json:"name" binding:"required"`
	Mobile   string   `json:"mobile" binding:"required,len=10,numeric"`
	Address  string   `json:"address"`
	Password string   `json:"password" binding:"required,min=6"`
	Route    []string `json:"route"`
}

// UpdateAgentRequest is the request body for updating agent details.
// Nil fields are left unchanged.
type UpdateAgentRequest struct {
	Mobile   *string   `json:"mobile,omitempty" binding:"omitempty,len=10,numeric"`
	Address  *string   `json:"address,omitempty"`
	Password *string   `json:"password,omitempty" binding:"omitempty,min=6"`
	Route    *[]string `json:"route,omitempty"`
}

// RenameAgentRequest is the request body for renaming an agent. The rename
// cascades to every customer assigned to the old name.
type RenameAgentRequest struct {
	NewName string `json:"newName" binding:"required"`
}

// AgentResponse is the API representation of an agent. The password hash is
// never serialized.
type AgentResponse struct {
	Name          string   `json:"name"`
	Mobile        string   `json:"mobile"`
	Address       string   `json:"address,omitempty"`
	Route         []string `json:"route,omitempty"`
	CustomerCount int      `json:"customerCount"`
	CreatedDate   int64    `json:"createdDate"`
	LastUpdated   int64    `json:"lastUpdated"`
}

// ToAgentResponse maps a domain agent to its API representation.
func ToAgentResponse(a domain.Agent, customerCount int) AgentResponse {
	return AgentResponse{
		Name:          a.Name,
		Mobile:        a.Mobile,
		Address:       a.Address,
		Route:         a.Route,
		CustomerCount: customerCount,
		CreatedDate:   a.CreatedDate,
		LastUpdated:   a.LastUpdated,
	}
}
