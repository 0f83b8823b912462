// Package catalog resolves type names used in declarations ("warehouse.Order",
// "bimapper/warehouse.Order", "Order") to runtime types and constructs blank
// instances of them.
//
// Go cannot look a type up by name at runtime, so every type that is referred
// to by name (as a mapping target, a reciprocal partner or a collection element
// type) must be registered first.
package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bimapper/internal/common"
)

var (
	ErrUnknownType     = errors.New("unknown type")
	ErrAmbiguousType   = errors.New("ambiguous type name")
	ErrNotInstantiable = errors.New("type cannot be instantiated blank")
)

// TypeID uniquely identifies a named type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "bimapper/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the "pkg.Name" form used in declarations.
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// IDOf returns the identity of a type, looking through pointers.
// Unnamed types get their type literal as name.
func IDOf(t reflect.Type) TypeID {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" {
		return TypeID{Name: t.String()}
	}

	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// Catalog is a registry of named types. The zero value is ready to use.
type Catalog struct {
	types map[TypeID]reflect.Type
	order []TypeID
}

// New creates a catalog with the given types registered.
// See Register for accepted values.
func New(values ...any) *Catalog {
	c := &Catalog{}
	c.Register(values...)

	return c
}

// Register adds types to the catalog. Each value may be an instance, a
// pointer to an instance (nil pointers are fine, e.g. (*Order)(nil)), or a
// reflect.Type. Re-registering a type is a no-op.
func (c *Catalog) Register(values ...any) {
	if c.types == nil {
		c.types = make(map[TypeID]reflect.Type)
	}

	for _, v := range values {
		t, ok := v.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(v)
		}

		if t == nil {
			continue
		}

		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		id := IDOf(t)
		if _, exists := c.types[id]; exists {
			continue
		}

		c.types[id] = t
		c.order = append(c.order, id)
	}
}

// Types returns registered types in registration order.
func (c *Catalog) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.types[id])
	}

	return out
}

// Resolve resolves a type reference like:
// - "store.Order" (short)
// - "bimapper/store.Order" (full)
// - "Order" (name only, must be unambiguous).
func (c *Catalog) Resolve(ref string) (reflect.Type, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrUnknownType)
	}

	// 1) exact match (for fully qualified import path)
	if pkg, name, ok := splitRef(ref); ok {
		if t, found := c.types[TypeID{PkgPath: pkg, Name: name}]; found {
			return t, nil
		}
	}

	// 2) suffix or name-only match, in registration order
	var found []reflect.Type

	for _, id := range c.order {
		if matchesID(ref, id) {
			found = append(found, c.types[id])
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, ref)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %s and %s", ErrAmbiguousType, ref, found[0], found[1])
	}
}

// New resolves a type reference and returns a pointer to a blank instance.
func (c *Catalog) New(ref string) (reflect.Value, error) {
	t, err := c.Resolve(ref)
	if err != nil {
		return reflect.Value{}, err
	}

	return Instantiate(t)
}

// Instantiate returns a pointer to the zero value of a struct type. No user
// code runs: Go has no constructors, and the zero value is the blank instance.
func Instantiate(t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil type", ErrNotInstantiable)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s is %s, not a struct", ErrNotInstantiable, t, t.Kind())
	}

	return reflect.New(t), nil
}

// Matches reports whether a type reference designates t. It does not need
// the type to be registered.
func Matches(ref string, t reflect.Type) bool {
	if ref == "" || t == nil {
		return false
	}

	return matchesID(ref, IDOf(t))
}

func matchesID(ref string, id TypeID) bool {
	pkg, name, dotted := splitRef(ref)
	if !dotted {
		return id.Name == ref
	}

	if id.Name != name {
		return false
	}

	return id.PkgPath == pkg || strings.HasSuffix(id.PkgPath, "/"+pkg)
}

func splitRef(ref string) (pkg, name string, ok bool) {
	lastDot := strings.LastIndex(ref, ".")
	if lastDot <= 0 || lastDot == len(ref)-1 {
		return "", ref, false
	}

	return ref[:lastDot], ref[lastDot+1:], true
}
