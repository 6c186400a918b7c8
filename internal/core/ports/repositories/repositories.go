package repositories

// RepositoryProvider holds all repository implementations for dependency injection
type RepositoryProvider struct {
	CustomerRepo  CustomerRepositoryWithTx
	AgentRepo     AgentRepositoryFacade
	RouteRepo     RouteRepositoryFacade
	RetentionRepo RetentionRepositoryFacade
}
