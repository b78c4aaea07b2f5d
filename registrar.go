package iocboot

// registerInterceptors executes the interceptor-registration phase.
//
// Chain append order is registration order. Once appended, entries are never
// re-ordered, with one exception: merged-definition observers are removed and
// re-appended after all tiers, moving them behind every generic hook.
func (d *Delegate) registerInterceptors(factory Factory, ctx Context) error {
	names := factory.DefinitionNamesForType(TypeInterceptor)

	// The checker registered next counts toward the expected total, hence +1.
	targetCount := factory.InterceptorCount() + 1 + len(names)
	factory.AddInterceptor(newEligibilityChecker(factory, targetCount, d.logger))

	var priority []Interceptor
	var internal []Interceptor
	var orderedNames, plainNames []string
	for _, name := range names {
		if factory.IsTypeMatch(name, TypePriorityOrdered) {
			interceptor, err := resolveAs[Interceptor](factory, name)
			if err != nil {
				return err
			}
			priority = append(priority, interceptor)
			if _, ok := interceptor.(MergedDefinitionObserver); ok {
				internal = append(internal, interceptor)
			}
		} else if factory.IsTypeMatch(name, TypeOrdered) {
			orderedNames = append(orderedNames, name)
		} else {
			plainNames = append(plainNames, name)
		}
	}

	sortProcessors(priority, factory)
	factory.AddInterceptors(priority)

	// Ordered interceptors are resolved only now, after the Priority tier is
	// in the chain, so their creation is already intercepted by it.
	ordered := make([]Interceptor, 0, len(orderedNames))
	for _, name := range orderedNames {
		interceptor, err := resolveAs[Interceptor](factory, name)
		if err != nil {
			return err
		}
		ordered = append(ordered, interceptor)
		if _, ok := interceptor.(MergedDefinitionObserver); ok {
			internal = append(internal, interceptor)
		}
	}
	sortProcessors(ordered, factory)
	factory.AddInterceptors(ordered)

	// Plain interceptors register in resolution order.
	plain := make([]Interceptor, 0, len(plainNames))
	for _, name := range plainNames {
		interceptor, err := resolveAs[Interceptor](factory, name)
		if err != nil {
			return err
		}
		plain = append(plain, interceptor)
		if _, ok := interceptor.(MergedDefinitionObserver); ok {
			internal = append(internal, interceptor)
		}
	}
	factory.AddInterceptors(plain)

	// Merged-definition observers rely on fully-processed metadata, so they
	// move behind every generic hook, across all tiers.
	sortProcessors(internal, factory)
	factory.AddInterceptors(internal)

	// The detector has to see the final, possibly wrapped, instance, so it
	// goes last, unconditionally.
	factory.AddInterceptor(newListenerDetector(factory, ctx, d.logger))
	return nil
}
