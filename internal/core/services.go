package core

// Services bundles the domain services for handler wiring.
type Services struct {
	Schema *SchemaService
	Quartz *QuartzService
}

func NewServices(q Querier) *Services {
	return &Services{
		Schema: NewSchemaService(q),
		Quartz: NewQuartzService(q),
	}
}
