package iocboot

const emptyString = ""

// Step names emitted to the Tracer around each processor callback.
const (
	stepMutateRegistry = "iocboot.registry.mutate"
	stepMutateFactory  = "iocboot.factory.mutate"
)
