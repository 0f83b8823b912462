package mapping

import (
	"errors"
	"reflect"

	"bimapper/catalog"
	"bimapper/decl"
)

// FromClass renders the declarations of one type as a file entry.
func FromClass(c *decl.Class) Class {
	out := Class{Type: catalog.IDOf(c.Type).Short()}

	for _, ref := range c.Reciprocal {
		if ref == "" {
			ref = AnyType
		}

		out.Mappable = append(out.Mappable, ref)
	}

	for _, p := range c.Properties {
		switch {
		case p.Ignore:
			out.Ignore = append(out.Ignore, p.Name)
		case p.MapTo != nil:
			e := MapToEntry{Property: p.Name, Path: p.MapTo.Path, Elem: p.MapTo.Elem}
			if e.Elem != "" && e.Path == p.Name {
				e.Path = ""
			}

			out.MapTo = append(out.MapTo, e)
		}
	}

	return out
}

// Export asks src for the declarations of each type and collects the types
// that declare anything.
func Export(src decl.Source, types []reflect.Type) (*File, error) {
	f := &File{Version: CurrentVersion}

	for _, t := range types {
		c, err := src.Describe(t)
		if errors.Is(err, decl.ErrUndeclared) {
			continue
		}

		if err != nil {
			return nil, err
		}

		class := FromClass(c)
		if len(class.Mappable) == 0 && len(class.MapTo) == 0 && len(class.Ignore) == 0 {
			continue
		}

		f.Classes = append(f.Classes, class)
	}

	return f, nil
}
