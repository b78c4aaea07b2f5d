package iocboot

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/samber/lo"
)

// invokeFactoryProcessors executes the definition-mutation phase.
//
// The multiple passes and working lists below are deliberate and must not be
// collapsed into a single scan. Resolving a processor too early can trigger
// creation of components that still depend on processors not yet invoked;
// the Priority and Ordered contracts exist exactly to prevent that.
func (d *Delegate) invokeFactoryProcessors(factory Factory, external []FactoryProcessor) error {
	// Marks named processors whose callbacks already ran, across all passes.
	processed := make(map[string]struct{})

	if registry, ok := factory.(Registry); ok {
		var regularProcessors []FactoryProcessor
		var registryProcessors []RegistryProcessor

		// Externally supplied registry processors run first, unconditionally,
		// in input order - before any container-registered processor is even
		// looked up.
		for _, processor := range external {
			if registryProcessor, isRegistry := processor.(RegistryProcessor); isRegistry {
				if err := d.mutateRegistry(registryProcessor, registry); err != nil {
					return err
				}
				registryProcessors = append(registryProcessors, registryProcessor)
			} else {
				regularProcessors = append(regularProcessors, processor)
			}
		}

		// Definitions must stay untouched until every registry processor had
		// its chance to run, so plain FactoryProcessors are not resolved here.
		var current []RegistryProcessor

		// Priority tier.
		names := factory.DefinitionNamesForType(TypeRegistryProcessor)
		for _, name := range names {
			if factory.IsTypeMatch(name, TypePriorityOrdered) {
				processor, err := resolveAs[RegistryProcessor](factory, name)
				if err != nil {
					return err
				}
				current = append(current, processor)
				processed[name] = struct{}{}
			}
		}
		sortProcessors(current, factory)
		registryProcessors = append(registryProcessors, current...)
		if err := d.mutateRegistryAll(current, registry); err != nil {
			return err
		}
		current = current[:0]

		// Ordered tier, skipping anything already processed.
		names = factory.DefinitionNamesForType(TypeRegistryProcessor)
		for _, name := range names {
			if _, done := processed[name]; !done && factory.IsTypeMatch(name, TypeOrdered) {
				processor, err := resolveAs[RegistryProcessor](factory, name)
				if err != nil {
					return err
				}
				current = append(current, processor)
				processed[name] = struct{}{}
			}
		}
		sortProcessors(current, factory)
		registryProcessors = append(registryProcessors, current...)
		if err := d.mutateRegistryAll(current, registry); err != nil {
			return err
		}
		current = current[:0]

		// Drain loop: covers the plain tier plus any processor registered as
		// a side effect of an earlier mutate-registry call. Terminates once a
		// full scan yields nothing new.
		for reiterate := true; reiterate; {
			reiterate = false
			names = factory.DefinitionNamesForType(TypeRegistryProcessor)
			for _, name := range names {
				if _, done := processed[name]; !done {
					processor, err := resolveAs[RegistryProcessor](factory, name)
					if err != nil {
						return err
					}
					current = append(current, processor)
					processed[name] = struct{}{}
					reiterate = true
				}
			}
			sortProcessors(current, factory)
			registryProcessors = append(registryProcessors, current...)
			if err := d.mutateRegistryAll(current, registry); err != nil {
				return err
			}
			current = current[:0]
		}

		// Mutate-factory callbacks of all registry processors seen so far, in
		// the exact order their mutate-registry callbacks ran. Not re-sorted.
		asFactoryProcessors := lo.Map(registryProcessors,
			func(processor RegistryProcessor, _ int) FactoryProcessor {
				return processor
			})
		if err := d.mutateFactoryAll(asFactoryProcessors, factory); err != nil {
			return err
		}
		if err := d.mutateFactoryAll(regularProcessors, factory); err != nil {
			return err
		}
	} else {
		// The factory cannot accept new definitions; only the mutate-factory
		// callback applies, in original input order.
		if err := d.mutateFactoryAll(external, factory); err != nil {
			return err
		}
	}

	// Re-scan for plain FactoryProcessors. This pass also picks up processors
	// registered while the registry processors above were running.
	names := factory.DefinitionNamesForType(TypeFactoryProcessor)

	var priority []FactoryProcessor
	var orderedNames, plainNames []string
	for _, name := range names {
		if _, done := processed[name]; done {
			// already ran during the registry phase
		} else if factory.IsTypeMatch(name, TypePriorityOrdered) {
			processor, err := resolveAs[FactoryProcessor](factory, name)
			if err != nil {
				return err
			}
			priority = append(priority, processor)
		} else if factory.IsTypeMatch(name, TypeOrdered) {
			orderedNames = append(orderedNames, name)
		} else {
			plainNames = append(plainNames, name)
		}
	}

	sortProcessors(priority, factory)
	if err := d.mutateFactoryAll(priority, factory); err != nil {
		return err
	}

	ordered := make([]FactoryProcessor, 0, len(orderedNames))
	for _, name := range orderedNames {
		processor, err := resolveAs[FactoryProcessor](factory, name)
		if err != nil {
			return err
		}
		ordered = append(ordered, processor)
	}
	sortProcessors(ordered, factory)
	if err := d.mutateFactoryAll(ordered, factory); err != nil {
		return err
	}

	// Plain processors run in resolution order; no sort required.
	plain := make([]FactoryProcessor, 0, len(plainNames))
	for _, name := range plainNames {
		processor, err := resolveAs[FactoryProcessor](factory, name)
		if err != nil {
			return err
		}
		plain = append(plain, processor)
	}
	if err := d.mutateFactoryAll(plain, factory); err != nil {
		return err
	}

	// Mutate calls may have altered raw definitions that downstream merged
	// views were derived from.
	factory.ClearMergedDefinitionCache()
	return nil
}

func (d *Delegate) mutateRegistry(processor RegistryProcessor, registry Registry) error {
	step := d.tracer.Start(stepMutateRegistry, processorName(processor))
	defer step.End()
	if err := processor.MutateRegistry(registry); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

func (d *Delegate) mutateRegistryAll(processors []RegistryProcessor, registry Registry) error {
	for _, processor := range processors {
		if err := d.mutateRegistry(processor, registry); err != nil {
			return err
		}
	}
	return nil
}

func (d *Delegate) mutateFactory(processor FactoryProcessor, factory Factory) error {
	step := d.tracer.Start(stepMutateFactory, processorName(processor))
	defer step.End()
	if err := processor.MutateFactory(factory); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

func (d *Delegate) mutateFactoryAll(processors []FactoryProcessor, factory Factory) error {
	for _, processor := range processors {
		if err := d.mutateFactory(processor, factory); err != nil {
			return err
		}
	}
	return nil
}

func processorName(processor any) string {
	return fmt.Sprintf("%T", processor)
}

// resolveAs resolves a named definition and asserts the expected capability.
func resolveAs[T any](factory Factory, name string) (T, error) {
	var zero T
	instance, err := factory.Resolve(name)
	if err != nil {
		return zero, errors.Wrap(err, 0)
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("component '%s' is not of requested type", name)
	}
	return typed, nil
}
