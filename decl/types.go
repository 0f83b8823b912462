package decl

import (
	"errors"
	"reflect"
	"slices"

	"bimapper/catalog"
)

var (
	ErrNotStruct  = errors.New("type is not a struct")
	ErrUndeclared = errors.New("type has no declarations in this source")
	ErrInvalidTag = errors.New("invalid map tag")
)

// Mappable is the marker type of class level declarations. Use it as a blank
// field; the tag names the reciprocal type, an empty tag accepts any type.
type Mappable struct{}

var mappableType = reflect.TypeFor[Mappable]()

// Class holds everything declared on one struct type.
type Class struct {
	Type reflect.Type
	// Reciprocal lists type references this class may be mapped with.
	// An empty string accepts any type.
	Reciprocal []string
	Properties []Property
}

// Property is one exported field and its declarations.
type Property struct {
	Name   string
	Type   reflect.Type // declared field type
	MapTo  *MapTo
	Ignore bool
}

// MapTo reroutes a property to another (possibly dotted) path.
type MapTo struct {
	Path string
	// Elem is a type reference for the elements the collection maps into.
	Elem string
}

// Source describes the declarations of a type.
type Source interface {
	Describe(t reflect.Type) (*Class, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(t reflect.Type) (*Class, error)

func (f SourceFunc) Describe(t reflect.Type) (*Class, error) { return f(t) }

// Acknowledges reports whether the class accepts t as mapping partner.
func (c *Class) Acknowledges(t reflect.Type) bool {
	return slices.ContainsFunc(c.Reciprocal, func(ref string) bool {
		return ref == "" || catalog.Matches(ref, t)
	})
}

// Property returns the named property.
func (c *Class) Property(name string) (*Property, bool) {
	for i := range c.Properties {
		if c.Properties[i].Name == name {
			return &c.Properties[i], true
		}
	}

	return nil, false
}

// Names returns property names in declaration order.
func (c *Class) Names() []string {
	names := make([]string, 0, len(c.Properties))
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}

	return names
}

// Chain returns a Source asking each source in turn; a source answering
// ErrUndeclared passes the type on to the next one.
func Chain(sources ...Source) Source {
	return SourceFunc(func(t reflect.Type) (*Class, error) {
		for _, s := range sources {
			c, err := s.Describe(t)
			if errors.Is(err, ErrUndeclared) {
				continue
			}

			return c, err
		}

		return nil, ErrUndeclared
	})
}
