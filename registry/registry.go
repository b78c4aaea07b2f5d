// Package registry provides an in-memory reference implementation of the
// iocboot collaborator contracts: a definition registry with lazy singleton
// resolution and an append-ordered interceptor chain.
package registry

import (
	"reflect"

	"github.com/go-errors/errors"
	"github.com/samber/lo"

	"github.com/Station-Manager/iocboot"
)

// Initializer is an optional interface a component may implement to perform
// additional initialization of its own. The registry calls Initialize()
// between the chain's BeforeInit and AfterInit hooks.
//
// Note: this interface intentionally references no registry types, so
// components in other modules can implement it without importing anything
// beyond this package.
type Initializer interface {
	Initialize() error
}

// Registry is the source of truth for all component definitions. It
// implements both iocboot.Factory and iocboot.Registry.
//
// Bootstrap is single-threaded by contract; the registry performs no internal
// locking. Resolution is re-entrant: a constructor or processor may resolve
// other components synchronously.
type Registry struct {
	// definitions maps component names to their metadata; names preserves
	// insertion order so discovery order is deterministic.
	definitions map[string]*iocboot.Definition
	names       []string

	singletons map[string]any
	resolving  map[string]bool

	// interceptors is the chain; append position is invocation order.
	interceptors []iocboot.Interceptor

	// merged caches the frozen definition views handed to observers.
	merged map[string]*iocboot.Definition
}

func New() *Registry {
	return &Registry{
		definitions: make(map[string]*iocboot.Definition),
		singletons:  make(map[string]any),
		resolving:   make(map[string]bool),
		merged:      make(map[string]*iocboot.Definition),
	}
}

// RegisterDefinition registers component metadata under a unique name.
// Re-registering an existing name replaces the definition in place and keeps
// its discovery position.
func (r *Registry) RegisterDefinition(name string, def *iocboot.Definition) error {
	if name == "" {
		return ErrNameParamIsEmpty
	}
	if def == nil {
		return ErrDefinitionParamIsNil
	}
	if def.Type == nil {
		return ErrDefinitionTypeIsNil
	}
	if _, exists := r.definitions[name]; !exists {
		r.names = append(r.names, name)
	}
	r.definitions[name] = def
	return nil
}

// RemoveDefinition removes a definition together with any cached singleton
// and merged view.
func (r *Registry) RemoveDefinition(name string) error {
	if name == "" {
		return ErrNameParamIsEmpty
	}
	if _, exists := r.definitions[name]; !exists {
		return errors.Errorf("no definition registered under '%s'", name)
	}
	delete(r.definitions, name)
	delete(r.singletons, name)
	delete(r.merged, name)
	r.names = lo.Without(r.names, name)
	return nil
}

// Define registers a lazily-constructed singleton for a struct or
// pointer-to-struct type. Struct kinds are normalized to pointer-to-struct
// for consistent resolution semantics.
func (r *Registry) Define(name string, componentType reflect.Type) error {
	if componentType == nil {
		return ErrDefinitionTypeIsNil
	}
	switch componentType.Kind() {
	case reflect.Ptr:
		if componentType.Elem().Kind() != reflect.Struct {
			return ErrComponentTypeRejected
		}
	case reflect.Struct:
		componentType = reflect.PointerTo(componentType)
	default:
		return ErrComponentTypeRejected
	}
	return r.RegisterDefinition(name, &iocboot.Definition{
		Type:      componentType,
		Singleton: true,
	})
}

// DefineInstance registers an existing instance as a singleton. The instance
// bypasses the interceptor chain; it is assumed fully initialized.
func (r *Registry) DefineInstance(name string, instance any) error {
	if instance == nil {
		return ErrInstanceParamIsNil
	}
	instanceType := reflect.TypeOf(instance)
	if instanceType.Kind() == reflect.Struct {
		ptr := reflect.New(instanceType)
		ptr.Elem().Set(reflect.ValueOf(instance))
		instance = ptr.Interface()
		instanceType = ptr.Type()
	}
	if err := r.RegisterDefinition(name, &iocboot.Definition{
		Type:      instanceType,
		Singleton: true,
	}); err != nil {
		return err
	}
	r.singletons[name] = instance
	return nil
}

func (r *Registry) ContainsDefinition(name string) bool {
	_, ok := r.definitions[name]
	return ok
}

func (r *Registry) Definition(name string) (*iocboot.Definition, error) {
	def, ok := r.definitions[name]
	if !ok {
		return nil, errors.Errorf("no definition registered under '%s'", name)
	}
	return def, nil
}

// DefinitionNamesForType returns the names of all definitions whose component
// type satisfies the capability, in discovery order.
func (r *Registry) DefinitionNamesForType(capability reflect.Type) []string {
	return lo.Filter(r.names, func(name string, _ int) bool {
		return r.IsTypeMatch(name, capability)
	})
}

// IsTypeMatch answers a capability query from metadata alone; the component
// is never instantiated.
func (r *Registry) IsTypeMatch(name string, capability reflect.Type) bool {
	def, ok := r.definitions[name]
	if !ok || capability == nil {
		return false
	}
	if capability.Kind() == reflect.Interface {
		return def.Type.Implements(capability)
	}
	return def.Type == capability || def.Type.AssignableTo(capability)
}

// IsSingleton reports whether the named definition is singleton-scoped.
func (r *Registry) IsSingleton(name string) bool {
	def, ok := r.definitions[name]
	return ok && def.Singleton
}

// Resolve returns the named component, instantiating it on first request.
// Instantiation runs the full interceptor chain around the component's own
// initialization; the chain may replace the instance.
func (r *Registry) Resolve(name string) (any, error) {
	if name == "" {
		return nil, ErrNameParamIsEmpty
	}
	if instance, ok := r.singletons[name]; ok {
		return instance, nil
	}
	def, ok := r.definitions[name]
	if !ok {
		return nil, errors.Errorf("component '%s' not found", name)
	}

	if r.resolving[name] {
		return nil, errors.Errorf("component '%s' is currently in creation (resolution cycle)", name)
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)

	r.observeMergedDefinition(name, def)

	instance, err := createInstance(def)
	if err != nil {
		return nil, err
	}
	instance, err = r.initialize(instance, name)
	if err != nil {
		return nil, err
	}

	if def.Singleton {
		r.singletons[name] = instance
	}
	return instance, nil
}

// ResolveAs resolves a component by name and casts it to type T.
func ResolveAs[T any](r *Registry, name string) (T, error) {
	var zero T
	instance, err := r.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("component '%s' is not of requested type", name)
	}
	return typed, nil
}

// AddInterceptor appends to the chain. An existing identical entry is removed
// first, so re-registering moves the interceptor to the end.
func (r *Registry) AddInterceptor(interceptor iocboot.Interceptor) {
	if interceptor == nil {
		return
	}
	r.removeInterceptor(interceptor)
	r.interceptors = append(r.interceptors, interceptor)
}

// AddInterceptors bulk-appends, with the same move-to-end semantics.
func (r *Registry) AddInterceptors(interceptors []iocboot.Interceptor) {
	for _, interceptor := range interceptors {
		r.removeInterceptor(interceptor)
	}
	r.interceptors = append(r.interceptors, interceptors...)
}

func (r *Registry) removeInterceptor(target iocboot.Interceptor) {
	r.interceptors = lo.Reject(r.interceptors,
		func(existing iocboot.Interceptor, _ int) bool {
			return existing == target
		})
}

func (r *Registry) InterceptorCount() int {
	return len(r.interceptors)
}

// Interceptors returns a snapshot of the chain in invocation order.
func (r *Registry) Interceptors() []iocboot.Interceptor {
	return append([]iocboot.Interceptor(nil), r.interceptors...)
}

// ClearMergedDefinitionCache drops all cached merged views, so observers see
// fresh metadata for components resolved afterwards.
func (r *Registry) ClearMergedDefinitionCache() {
	r.merged = make(map[string]*iocboot.Definition)
}

// observeMergedDefinition hands the frozen definition view to every observer
// in the chain, once per name.
func (r *Registry) observeMergedDefinition(name string, def *iocboot.Definition) {
	if _, done := r.merged[name]; done {
		return
	}
	merged := *def
	r.merged[name] = &merged
	for _, interceptor := range r.Interceptors() {
		if observer, ok := interceptor.(iocboot.MergedDefinitionObserver); ok {
			observer.ObserveMergedDefinition(&merged, name)
		}
	}
}

// initialize runs the interceptor chain around the component's own
// initialization. Hooks run in chain order on both sides; a hook returning a
// different instance replaces the component from that point on.
func (r *Registry) initialize(instance any, name string) (any, error) {
	var err error
	for _, interceptor := range r.Interceptors() {
		instance, err = interceptor.BeforeInit(instance, name)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}
	if initializer, ok := instance.(Initializer); ok {
		if err := initializer.Initialize(); err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}
	for _, interceptor := range r.Interceptors() {
		instance, err = interceptor.AfterInit(instance, name)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}
	return instance, nil
}

func createInstance(def *iocboot.Definition) (any, error) {
	if def.Constructor != nil {
		instance, err := def.Constructor()
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		if instance == nil {
			return nil, errors.Errorf("constructor returned a nil instance")
		}
		return instance, nil
	}
	if def.Type.Kind() == reflect.Ptr && def.Type.Elem().Kind() == reflect.Struct {
		return reflect.New(def.Type.Elem()).Interface(), nil
	}
	if def.Type.Kind() == reflect.Struct {
		return reflect.New(def.Type).Interface(), nil
	}
	return nil, errors.Errorf("definition type %v needs an explicit constructor", def.Type)
}
