package iocboot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// metadataFactory is a minimal Factory answering capability queries from a
// static name->type table. Everything else is unused by the classifier.
type metadataFactory struct {
	types map[string]reflect.Type
	order []string
}

func (f *metadataFactory) DefinitionNamesForType(capability reflect.Type) []string {
	matches := make([]string, 0)
	for _, name := range f.order {
		if f.IsTypeMatch(name, capability) {
			matches = append(matches, name)
		}
	}
	return matches
}

func (f *metadataFactory) IsTypeMatch(name string, capability reflect.Type) bool {
	t, ok := f.types[name]
	if !ok {
		return false
	}
	return t.Implements(capability)
}

func (f *metadataFactory) Resolve(name string) (any, error)    { return nil, nil }
func (f *metadataFactory) ContainsDefinition(name string) bool { return false }

func (f *metadataFactory) Definition(name string) (*Definition, error) {
	return nil, errors.New("not implemented")
}

func (f *metadataFactory) AddInterceptor(interceptor Interceptor)     {}
func (f *metadataFactory) AddInterceptors(interceptors []Interceptor) {}
func (f *metadataFactory) InterceptorCount() int                      { return 0 }
func (f *metadataFactory) ClearMergedDefinitionCache()                {}

type plainThing struct{}

func (p *plainThing) MutateFactory(Factory) error { return nil }

type orderedThing struct {
	plainThing
	rank int
}

func (o *orderedThing) Order() int { return o.rank }

type priorityThing struct {
	orderedThing
}

func (p *priorityThing) PriorityOrdered() {}

func TestClassifyTier(t *testing.T) {
	factory := &metadataFactory{
		order: []string{"plain", "ordered", "priority"},
		types: map[string]reflect.Type{
			"plain":    reflect.TypeOf((*plainThing)(nil)),
			"ordered":  reflect.TypeOf((*orderedThing)(nil)),
			"priority": reflect.TypeOf((*priorityThing)(nil)),
		},
	}

	require.Equal(t, TierPlain, classifyTier(factory, "plain"))
	require.Equal(t, TierOrdered, classifyTier(factory, "ordered"))
	require.Equal(t, TierPriority, classifyTier(factory, "priority"))
	// Unknown names are never matched and fall back to the plain tier.
	require.Equal(t, TierPlain, classifyTier(factory, "missing"))
}

func TestTierString(t *testing.T) {
	require.Equal(t, "priority", TierPriority.String())
	require.Equal(t, "ordered", TierOrdered.String())
	require.Equal(t, "plain", TierPlain.String())
}

func TestSortProcessors_RankAscending(t *testing.T) {
	factory := &metadataFactory{}
	a := &orderedThing{rank: 10}
	b := &orderedThing{rank: -5}
	c := &orderedThing{rank: 3}

	processors := []any{a, b, c}
	sortProcessors(processors, factory)

	require.Equal(t, []any{b, c, a}, processors)
}

func TestSortProcessors_UnrankedSortAfterRanked(t *testing.T) {
	factory := &metadataFactory{}
	ranked := &orderedThing{rank: 1000}
	first := &plainThing{}
	second := &plainThing{}

	processors := []any{first, second, ranked}
	sortProcessors(processors, factory)

	// The ranked processor moves to the front; equal (unranked) processors
	// keep their discovery order.
	require.Equal(t, []any{ranked, first, second}, processors)
}

func TestSortProcessors_StableForEqualRanks(t *testing.T) {
	factory := &metadataFactory{}
	a := &orderedThing{rank: 7}
	b := &orderedThing{rank: 7}
	c := &orderedThing{rank: 7}

	processors := []any{a, b, c}
	sortProcessors(processors, factory)

	require.Equal(t, []any{a, b, c}, processors)
}

type reverseComparatorFactory struct {
	metadataFactory
}

func (f *reverseComparatorFactory) OrderComparator() OrderComparator {
	return func(a, b any) int {
		return defaultOrderComparator(b, a)
	}
}

func TestSortProcessors_FactoryComparatorWins(t *testing.T) {
	factory := &reverseComparatorFactory{}
	a := &orderedThing{rank: 1}
	b := &orderedThing{rank: 2}

	processors := []any{a, b}
	sortProcessors(processors, factory)

	require.Equal(t, []any{b, a}, processors)
}

func TestOrderOf_Unranked(t *testing.T) {
	require.Equal(t, unrankedOrder, orderOf(&plainThing{}))
	require.Equal(t, 42, orderOf(&orderedThing{rank: 42}))
}
