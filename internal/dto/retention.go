package dto

import "github.com/Mubina-Mulla/Pigmi/internal/core/domain"

// DeletedCustomerResponse is a recycle-bin entry for a customer.
type DeletedCustomerResponse struct {
	AccountNo        string           `json:"accountNo"`
	Customer         CustomerResponse `json:"customer"`
	TransactionCount int              `json:"transactionCount"`
	DeletedAt        int64            `json:"deletedAt"`
	DeletedBy        string           `json:"deletedBy,omitempty"`
	DaysRemaining    int              `json:"daysRemaining"`
}

// ToDeletedCustomerResponse maps a retention record to its API representation.
func ToDeletedCustomerResponse(d domain.DeletedCustomer) DeletedCustomerResponse {
	return DeletedCustomerResponse{
		AccountNo:        d.AccountNo,
		Customer:         ToCustomerResponse(d.Customer),
		TransactionCount: d.TransactionCount,
		DeletedAt:        d.DeletedAt,
		DeletedBy:        d.DeletedBy,
		DaysRemaining:    d.DaysRemaining,
	}
}

// DeletedAgentResponse is a recycle-bin entry for an agent.
type DeletedAgentResponse struct {
	Name          string        `json:"name"`
	Agent         AgentResponse `json:"agent"`
	CustomerCount int           `json:"customerCount"`
	DeletedAt     int64         `json:"deletedAt"`
	DeletedBy     string        `json:"deletedBy,omitempty"`
	DaysRemaining int           `json:"daysRemaining"`
}

// ToDeletedAgentResponse maps a retention record to its API representation.
func ToDeletedAgentResponse(d domain.DeletedAgent) DeletedAgentResponse {
	return DeletedAgentResponse{
		Name:          d.Name,
		Agent:         ToAgentResponse(d.Agent, d.CustomerCount),
		CustomerCount: d.CustomerCount,
		DeletedAt:     d.DeletedAt,
		DeletedBy:     d.DeletedBy,
		DaysRemaining: d.DaysRemaining,
	}
}
