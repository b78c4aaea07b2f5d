package iocboot

import "reflect"

// Role classifies a definition. Infrastructure components are part of the
// container wiring itself and are excluded from eligibility diagnostics.
type Role int

const (
	RoleApplication Role = iota
	RoleInfrastructure
)

// Definition describes a not-yet-created managed component. The protocol
// never mutates a Definition directly; processors do, through the factory.
type Definition struct {
	// Type is the concrete component type. Capability queries (IsTypeMatch)
	// are answered from it without instantiating the component.
	Type reflect.Type

	// Constructor creates the component instance. When nil, the factory is
	// expected to zero-allocate pointer-to-struct types.
	Constructor func() (any, error)

	Singleton bool
	Role      Role
}

// Factory is the component factory collaborator consumed by the protocol.
//
// DefinitionNamesForType must return names in a stable discovery order; that
// order is the tie-break for processors of equal rank. AddInterceptor and
// AddInterceptors must remove an existing identical entry before appending,
// so that re-registering an interceptor moves it to the end of the chain.
type Factory interface {
	DefinitionNamesForType(capability reflect.Type) []string
	IsTypeMatch(name string, capability reflect.Type) bool
	Resolve(name string) (any, error)
	ContainsDefinition(name string) bool
	Definition(name string) (*Definition, error)
	AddInterceptor(interceptor Interceptor)
	AddInterceptors(interceptors []Interceptor)
	InterceptorCount() int
	ClearMergedDefinitionCache()
}

// Registry is a Factory that also accepts new definitions. The
// definition-mutation phase only runs registry processors against factories
// implementing this interface.
type Registry interface {
	Factory
	RegisterDefinition(name string, def *Definition) error
	RemoveDefinition(name string) error
}
