package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/utils"
)

// AuthConfig carries the token settings and the bootstrap admin credentials.
type AuthConfig struct {
	JWTSecret     string
	JWTExpiry     time.Duration
	JWTIssuer     string
	AdminUsername string
	AdminPassword string
}

// authService implements the AuthSvcFacade interface. The admin account
// comes from config; everything else authenticates as an agent.
type authService struct {
	BaseService
	cfg      AuthConfig
	agentSvc portssvc.AgentAuthSvc
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthConfig, agentSvc portssvc.AgentAuthSvc) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, agentSvc: agentSvc}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	role := "agent"

	if req.Username == s.cfg.AdminUsername {
		// Admin login stays disabled until a password is configured.
		if s.cfg.AdminPassword == "" {
			s.LogWarn(ctx, "Admin login rejected, no admin password configured")
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) != 1 {
			s.LogWarn(ctx, "Admin login failed")
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		role = "admin"
	} else {
		if _, err := s.agentSvc.AuthenticateAgent(ctx, req.Username, req.Password); err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateJWT(req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token")
		return nil, apperrors.NewInternalServerError("failed to issue token")
	}

	s.LogInfo(ctx, "Login succeeded", slog.String("username", req.Username), slog.String("role", role))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWTExpiry.Seconds()),
		Role:      role,
		Username:  req.Username,
	}, nil
}
