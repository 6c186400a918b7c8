package dto

import "github.com/Mubina-Mulla/Pigmi/internal/core/domain"

// CreateRouteRequest is the request body for creating a collection route.
type CreateRouteRequest struct {
	Name     string   `json:"name" binding:"required"`
	Villages []string `json:"villages" binding:"required,min=1"`
}

// UpdateRouteRequest is the request body for replacing a route's villages.
type UpdateRouteRequest struct {
	Villages []string `json:"villages" binding:"required,min=1"`
}

// RouteResponse is the API representation of a route.
type RouteResponse struct {
	Name        string   `json:"name"`
	Villages    []string `json:"villages"`
	CreatedDate int64    `json:"createdDate"`
	LastUpdated int64    `json:"lastUpdated"`
}

// ToRouteResponse maps a domain route to its API representation.
func ToRouteResponse(r domain.Route) RouteResponse {
	return RouteResponse{
		Name:        r.Name,
		Villages:    r.Villages,
		CreatedDate: r.CreatedDate,
		LastUpdated: r.LastUpdated,
	}
}

// ToRouteResponses maps a slice of domain routes.
func ToRouteResponses(rs []domain.Route) []RouteResponse {
	out := make([]RouteResponse, len(rs))
	for i, r := range rs {
		out[i] = ToRouteResponse(r)
	}
	return out
}
