package rest

const (
	// signup
	RouteCadastro    = "/cadastro"
	RouteAPICadastro = "/api/cadastro"

	// lookups
	RouteUsuario     = "/usuario"
	RouteUserByID    = RouteUsuario + "/id/:id"
	RouteUserByEmail = RouteUsuario + "/email/:email"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
