package services

import (
	"context"

	"github.com/Mubina-Mulla/Pigmi/internal/dto"
)

// AuthSvcFacade defines login for the bootstrap admin and collection agents.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a bearer token. Admin
	// credentials come from config; agent credentials are checked against
	// the stored bcrypt hash.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
