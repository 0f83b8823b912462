package decl

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultTagKey is the struct tag key read by Tags.
const DefaultTagKey = "map"

// Tags reads declarations from struct tags.
type Tags struct {
	// Key is the struct tag key, DefaultTagKey when empty.
	Key string
}

// Describe implements Source.
func (s Tags) Describe(t reflect.Type) (*Class, error) {
	st, err := StructOf(t)
	if err != nil {
		return nil, err
	}

	key := s.Key
	if key == "" {
		key = DefaultTagKey
	}

	class := &Class{Type: st}

	for i := range st.NumField() {
		f := st.Field(i)
		if f.Type == mappableType {
			class.Reciprocal = append(class.Reciprocal, strings.TrimSpace(f.Tag.Get(key)))
		}
	}

	for _, p := range Properties(st) {
		f, _ := st.FieldByName(p.Name)

		tag, ok := f.Tag.Lookup(key)
		if ok {
			p.MapTo, p.Ignore, err = ParseTag(tag)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", st, p.Name, err)
			}

			if p.MapTo != nil && p.MapTo.Path == "" {
				p.MapTo.Path = p.Name
			}
		}

		class.Properties = append(class.Properties, p)
	}

	return class, nil
}

// ParseTag parses a map tag value:
//
//	"-"                  ignore
//	"Path"               rename
//	"Path,elem=T"        rename with collection element type
//	",elem=T"            keep name, declare element type
//
// An empty tag declares nothing.
func ParseTag(tag string) (*MapTo, bool, error) {
	tag = strings.TrimSpace(tag)

	switch tag {
	case "":
		return nil, false, nil
	case "-":
		return nil, true, nil
	}

	path, opts, _ := strings.Cut(tag, ",")
	mt := &MapTo{Path: strings.TrimSpace(path)}

	if opts != "" {
		for _, opt := range strings.Split(opts, ",") {
			k, v, _ := strings.Cut(strings.TrimSpace(opt), "=")
			if k != "elem" || v == "" {
				return nil, false, fmt.Errorf("%w: %q: unknown option %q", ErrInvalidTag, tag, opt)
			}

			mt.Elem = v
		}
	}

	return mt, false, nil
}

// Properties lists the exported, visible fields of a struct type without any
// declarations. Fields promoted from embedded structs are listed under their
// own names; the embedded struct fields themselves are not.
func Properties(st reflect.Type) []Property {
	var out []Property

	for _, f := range reflect.VisibleFields(st) {
		if !f.IsExported() || f.Type == mappableType {
			continue
		}

		if f.Anonymous && indirect(f.Type).Kind() == reflect.Struct {
			continue
		}

		out = append(out, Property{Name: f.Name, Type: f.Type})
	}

	return out
}

// StructOf returns the struct type behind t, looking through pointers.
func StructOf(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotStruct)
	}

	st := indirect(t)
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	return st, nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
