package iocboot

// FactoryProcessor is the factory-level extension point. Implementations run
// during the definition-mutation phase, before any regular component has been
// instantiated, and may adjust already-registered definitions through the
// factory handle.
type FactoryProcessor interface {
	MutateFactory(factory Factory) error
}

// RegistryProcessor refines FactoryProcessor with the capability to add or
// remove whole component definitions. MutateRegistry is only ever invoked
// while the factory still accepts new definitions; both callbacks of a
// RegistryProcessor run at most once per bootstrap.
type RegistryProcessor interface {
	FactoryProcessor
	MutateRegistry(registry Registry) error
}
