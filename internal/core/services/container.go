package services

import (
	portsrepo "github.com/Mubina-Mulla/Pigmi/internal/core/ports/repositories"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/watch"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Customer  portssvc.CustomerSvcFacade
	Agent     portssvc.AgentSvcFacade
	Route     portssvc.RouteSvcFacade
	Retention portssvc.RetentionSvcFacade
	Report    portssvc.ReportSvcFacade
	Auth      portssvc.AuthSvcFacade
	Import    portssvc.ImportSvcFacade
	Broker    *watch.Broker
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, authCfg AuthConfig) *Container {
	broker := watch.NewBroker()

	container := &Container{Broker: broker}

	container.Agent = NewAgentService(
		repos.AgentRepo,
		WithAgentRetentionWriter(repos.RetentionRepo),
		WithAgentBroker(broker),
	)

	container.Customer = NewCustomerService(
		repos.CustomerRepo,
		WithAgentReader(repos.AgentRepo),
		WithRetentionWriter(repos.RetentionRepo),
		WithCustomerBroker(broker),
	)

	container.Route = NewRouteService(repos.RouteRepo, broker)

	container.Retention = NewRetentionService(
		repos.RetentionRepo,
		repos.CustomerRepo,
		repos.AgentRepo,
		WithRetentionBroker(broker),
	)

	container.Report = NewReportService(repos.CustomerRepo)

	container.Auth = NewAuthService(authCfg, container.Agent)

	container.Import = NewImportService(repos.CustomerRepo, repos.AgentRepo, repos.RouteRepo)

	return container
}
