package iocboot

// The two sentinel interceptors below are registered by dedicated calls in
// the registrar and never take part in the tiered sort.

// eligibilityChecker warns whenever a component finishes initialization while
// the chain is still shorter than the expected total, i.e. the component
// missed interceptors registered later.
type eligibilityChecker struct {
	factory     Factory
	targetCount int
	logger      Logger
}

func newEligibilityChecker(factory Factory, targetCount int, logger Logger) *eligibilityChecker {
	return &eligibilityChecker{
		factory:     factory,
		targetCount: targetCount,
		logger:      logger,
	}
}

func (c *eligibilityChecker) BeforeInit(instance any, name string) (any, error) {
	return instance, nil
}

func (c *eligibilityChecker) AfterInit(instance any, name string) (any, error) {
	if _, isInterceptor := instance.(Interceptor); !isInterceptor &&
		!c.isInfrastructure(name) &&
		c.factory.InterceptorCount() < c.targetCount {
		c.logger.Warnf("component '%s' of type [%T] is not eligible for getting "+
			"processed by all interceptors (for example: not eligible for auto-wrapping)",
			name, instance)
	}
	return instance, nil
}

func (c *eligibilityChecker) isInfrastructure(name string) bool {
	if name == emptyString || !c.factory.ContainsDefinition(name) {
		return false
	}
	def, err := c.factory.Definition(name)
	if err != nil {
		return false
	}
	return def.Role == RoleInfrastructure
}

// listenerDetector registers singleton Listener components with the bootstrap
// Context once they are fully initialized. It sits at the very end of the
// chain so it detects the final, possibly wrapped, instance.
type listenerDetector struct {
	factory    Factory
	ctx        Context
	logger     Logger
	singletons map[string]bool
}

func newListenerDetector(factory Factory, ctx Context, logger Logger) *listenerDetector {
	return &listenerDetector{
		factory:    factory,
		ctx:        ctx,
		logger:     logger,
		singletons: make(map[string]bool),
	}
}

func (d *listenerDetector) ObserveMergedDefinition(def *Definition, name string) {
	if def.Type != nil && def.Type.Implements(TypeListener) {
		d.singletons[name] = def.Singleton
	}
}

func (d *listenerDetector) BeforeInit(instance any, name string) (any, error) {
	return instance, nil
}

func (d *listenerDetector) AfterInit(instance any, name string) (any, error) {
	listener, ok := instance.(Listener)
	if !ok {
		return instance, nil
	}
	if singleton, observed := d.singletons[name]; observed {
		if singleton {
			d.ctx.AddListener(listener)
		} else {
			// Warn once, then stay silent for this name.
			d.logger.Warnf("component '%s' implements Listener but is not a "+
				"singleton; it will not receive container events", name)
			delete(d.singletons, name)
		}
	}
	return instance, nil
}
