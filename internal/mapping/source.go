package mapping

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"bimapper/catalog"
	"bimapper/decl"
)

// Source serves the declarations of a File as a decl.Source.
type Source struct {
	classes map[reflect.Type]*Class
}

var _ decl.Source = (*Source)(nil)

// NewSource validates f against cat and indexes its classes by type.
func NewSource(f *File, cat *catalog.Catalog) (*Source, error) {
	diags := Validate(f, cat)
	if err := diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}

	s := &Source{classes: make(map[reflect.Type]*Class, len(f.Classes))}

	for i := range f.Classes {
		c := &f.Classes[i]

		t, err := cat.Resolve(c.Type)
		if err != nil {
			return nil, err
		}

		st, err := decl.StructOf(t)
		if err != nil {
			return nil, err
		}

		s.classes[st] = c
	}

	return s, nil
}

// Describe implements decl.Source. Types the file does not list yield
// decl.ErrUndeclared.
func (s *Source) Describe(t reflect.Type) (*decl.Class, error) {
	st, err := decl.StructOf(t)
	if err != nil {
		return nil, err
	}

	c, ok := s.classes[st]
	if !ok {
		return nil, fmt.Errorf("%w: %s", decl.ErrUndeclared, st)
	}

	class := &decl.Class{Type: st}

	for _, ref := range c.Mappable {
		if ref == AnyType {
			ref = ""
		}

		class.Reciprocal = append(class.Reciprocal, ref)
	}

	for _, p := range decl.Properties(st) {
		if e, ok := c.Entry(p.Name); ok {
			p.MapTo = &decl.MapTo{Path: e.Target(), Elem: e.Elem}
		}

		p.Ignore = slices.Contains(c.Ignore, p.Name)
		class.Properties = append(class.Properties, p)
	}

	return class, nil
}

// Types lists the declared types.
func (s *Source) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(s.classes))
	for t := range s.classes {
		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}
