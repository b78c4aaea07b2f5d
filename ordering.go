package iocboot

import (
	"reflect"
	"sort"
)

// Tier is the ordering class of a processor or interceptor. Within one phase
// pass, every Priority-tier processor runs strictly before every Ordered-tier
// one, which in turn runs before the plain rest.
type Tier int

const (
	TierPriority Tier = iota
	TierOrdered
	TierPlain
)

func (t Tier) String() string {
	switch t {
	case TierPriority:
		return "priority"
	case TierOrdered:
		return "ordered"
	default:
		return "plain"
	}
}

// Ordered assigns a numeric rank used to sort processors within their tier.
// Lower ranks run earlier.
type Ordered interface {
	Order() int
}

// PriorityOrdered marks a processor for the earliest tier. The marker method
// is never called; implementing the interface is the signal.
type PriorityOrdered interface {
	Ordered
	PriorityOrdered()
}

// Capability types answered by Factory.IsTypeMatch from metadata alone.
var (
	TypeFactoryProcessor         = reflect.TypeOf((*FactoryProcessor)(nil)).Elem()
	TypeRegistryProcessor        = reflect.TypeOf((*RegistryProcessor)(nil)).Elem()
	TypeInterceptor              = reflect.TypeOf((*Interceptor)(nil)).Elem()
	TypeOrdered                  = reflect.TypeOf((*Ordered)(nil)).Elem()
	TypePriorityOrdered          = reflect.TypeOf((*PriorityOrdered)(nil)).Elem()
	TypeMergedDefinitionObserver = reflect.TypeOf((*MergedDefinitionObserver)(nil)).Elem()
	TypeListener                 = reflect.TypeOf((*Listener)(nil)).Elem()
)

// classifyTier classifies a named definition without instantiating it.
func classifyTier(factory Factory, name string) Tier {
	if factory.IsTypeMatch(name, TypePriorityOrdered) {
		return TierPriority
	}
	if factory.IsTypeMatch(name, TypeOrdered) {
		return TierOrdered
	}
	return TierPlain
}

// OrderComparator compares two processor instances; negative means a runs
// before b. Factories may provide their own through OrderComparatorProvider.
type OrderComparator func(a, b any) int

// OrderComparatorProvider is an optional Factory refinement supplying a
// custom comparator for tie-breaking within a tier.
type OrderComparatorProvider interface {
	OrderComparator() OrderComparator
}

// unrankedOrder sorts processors without an explicit rank after all ranked
// ones.
const unrankedOrder = int(^uint(0) >> 1)

func orderOf(v any) int {
	if ordered, ok := v.(Ordered); ok {
		return ordered.Order()
	}
	return unrankedOrder
}

func defaultOrderComparator(a, b any) int {
	rankA, rankB := orderOf(a), orderOf(b)
	switch {
	case rankA < rankB:
		return -1
	case rankA > rankB:
		return 1
	default:
		return 0
	}
}

// sortProcessors orders one tier's working list by rank, ascending. The sort
// is stable: equal ranks keep their discovery order.
func sortProcessors[T any](processors []T, factory Factory) {
	if len(processors) <= 1 {
		return
	}
	compare := OrderComparator(defaultOrderComparator)
	if provider, ok := factory.(OrderComparatorProvider); ok {
		if custom := provider.OrderComparator(); custom != nil {
			compare = custom
		}
	}
	sort.SliceStable(processors, func(i, j int) bool {
		return compare(processors[i], processors[j]) < 0
	})
}
