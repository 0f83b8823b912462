package mapper

import (
	"fmt"
	"log/slog"

	"bimapper/accessor"
	"bimapper/catalog"
	"bimapper/decl"
	"bimapper/meta"
)

// ScalarPolicy decides what happens to scalar elements found in a
// collection of objects.
type ScalarPolicy int

const (
	// ScalarStrict fails with ElementTypeFailure.
	ScalarStrict ScalarPolicy = iota
	// ScalarPassThrough copies the scalar unchanged when the target container
	// can hold it.
	ScalarPassThrough
)

var scalarPolicyNames = map[string]ScalarPolicy{
	"strict":       ScalarStrict,
	"pass-through": ScalarPassThrough,
}

func (p ScalarPolicy) String() string {
	for name, v := range scalarPolicyNames {
		if v == p {
			return name
		}
	}

	return fmt.Sprintf("ScalarPolicy(%d)", int(p))
}

// ParseScalarPolicy parses "strict" or "pass-through".
func ParseScalarPolicy(s string) (ScalarPolicy, error) {
	p, ok := scalarPolicyNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown scalar policy %q", s)
	}

	return p, nil
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithSource sets where declarations are read from, decl.Tags by default.
func WithSource(src decl.Source) Option {
	return func(m *Mapper) {
		m.source = src
	}
}

// WithCatalog sets the catalogue used to resolve type names: Map targets
// given as string and element types named in declarations.
func WithCatalog(c *catalog.Catalog) Option {
	return func(m *Mapper) {
		m.catalog = c
	}
}

// WithAccessor replaces the reflection based property accessor.
func WithAccessor(a accessor.PropertyAccessor) Option {
	return func(m *Mapper) {
		m.accessor = a
	}
}

// WithCacheCapacity bounds the number of cached type pairs.
func WithCacheCapacity(n int) Option {
	return func(m *Mapper) {
		m.capacity = n
	}
}

// WithLogger sets the logger receiving debug records about cache use and
// skipped properties. Records are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
	}
}

// WithEvents installs observation hooks.
func WithEvents(e Events) Option {
	return func(m *Mapper) {
		m.events = e
	}
}

// WithScalarPolicy decides what happens to scalar elements found in
// collections of objects, ScalarStrict by default.
func WithScalarPolicy(p ScalarPolicy) Option {
	return func(m *Mapper) {
		m.policy = p
	}
}

// WithIterable maps containers beyond slices, arrays and maps element by
// element. Targets of such a type are rebuilt with it.Build.
func WithIterable(it meta.Iterable) Option {
	return func(m *Mapper) {
		m.iterable = it
	}
}
