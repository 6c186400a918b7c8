package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/core/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock AgentAuthSvc ---
type MockAgentAuth struct {
	mock.Mock
}

func (m *MockAgentAuth) AuthenticateAgent(ctx context.Context, name, password string) (*domain.Agent, error) {
	args := m.Called(ctx, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

var _ portssvc.AgentAuthSvc = (*MockAgentAuth)(nil)

func authConfig(adminPassword string) services.AuthConfig {
	return services.AuthConfig{
		JWTSecret:     "test-secret-key-that-is-long-enough",
		JWTExpiry:     time.Hour,
		JWTIssuer:     "pigmi-test",
		AdminUsername: "admin",
		AdminPassword: adminPassword,
	}
}

func TestLogin_AdminSuccess(t *testing.T) {
	agents := new(MockAgentAuth)
	svc := services.NewAuthService(authConfig("s3cret-admin"), agents)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "s3cret-admin"})

	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "admin", resp.Username)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	agents.AssertNotCalled(t, "AuthenticateAgent")
}

func TestLogin_AdminWrongPassword(t *testing.T) {
	agents := new(MockAgentAuth)
	svc := services.NewAuthService(authConfig("s3cret-admin"), agents)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "guess"})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	agents.AssertNotCalled(t, "AuthenticateAgent")
}

func TestLogin_AdminDisabledWithoutPassword(t *testing.T) {
	agents := new(MockAgentAuth)
	svc := services.NewAuthService(authConfig(""), agents)

	// With no admin password configured, even an empty password must not
	// match; the admin account is unusable.
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: ""})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	agents.AssertNotCalled(t, "AuthenticateAgent")
}

func TestLogin_AgentDelegates(t *testing.T) {
	agents := new(MockAgentAuth)
	agents.On("AuthenticateAgent", mock.Anything, "ramesh", "agent-pass").
		Return(&domain.Agent{Name: "ramesh"}, nil).Once()
	svc := services.NewAuthService(authConfig("s3cret-admin"), agents)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ramesh", Password: "agent-pass"})

	require.NoError(t, err)
	assert.Equal(t, "agent", resp.Role)
	assert.Equal(t, "ramesh", resp.Username)
	agents.AssertExpectations(t)
}
