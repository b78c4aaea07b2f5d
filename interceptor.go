package iocboot

// Interceptor wraps the initialization of every component resolved after its
// registration. BeforeInit runs ahead of the component's own initialization,
// AfterInit behind it; both may replace the instance (e.g. with a wrapper)
// and must return the instance unchanged otherwise.
type Interceptor interface {
	BeforeInit(instance any, name string) (any, error)
	AfterInit(instance any, name string) (any, error)
}

// MergedDefinitionObserver is an Interceptor that additionally observes the
// finalized merged definition of a component before its first instantiation.
// Observers are re-registered at the end of the chain so they can rely on
// fully-processed metadata.
type MergedDefinitionObserver interface {
	Interceptor
	ObserveMergedDefinition(def *Definition, name string)
}

// Listener receives container events once registered with the bootstrap
// Context. Singleton components implementing Listener are picked up by the
// sentinel detector appended at the very end of the interceptor chain.
type Listener interface {
	OnEvent(event any)
}

// Context is the surrounding container handed to RegisterInterceptors. It is
// consumed, never implemented, by this package.
type Context interface {
	AddListener(listener Listener)
}
