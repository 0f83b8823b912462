// Package accessor reads and writes properties of arbitrary values by dotted
// path. The mapper only depends on the PropertyAccessor interface; Reflect is
// the default implementation over exported struct fields and string-keyed maps.
package accessor

import (
	"errors"
	"reflect"
	"strings"

	"bimapper/primitive"
)

var (
	// ErrUnwritable means the target does not support the property. Callers
	// treat it as "skip", not as a failure.
	ErrUnwritable = errors.New("property is not writable")
	// ErrIncompatible means the property exists but the value cannot be stored
	// in it.
	ErrIncompatible = errors.New("value is not assignable to property")
)

// PropertyAccessor is the property access capability used by the mapper.
type PropertyAccessor interface {
	// Read returns the value at path. ok is false when the path cannot be read
	// (missing, unexported, behind a nil pointer). A readable nil value is
	// returned with ok=true.
	Read(obj reflect.Value, path string) (v reflect.Value, ok bool)
	// Write stores v at path. It returns nil, an error wrapping ErrUnwritable,
	// or any other error for a definite write failure.
	Write(obj reflect.Value, path string, v reflect.Value) error
	// IsWritable reports whether Write at path can succeed for some value.
	IsWritable(obj reflect.Value, path string) bool
	// TypeOf returns the declared type at path.
	TypeOf(obj reflect.Value, path string) (reflect.Type, bool)
}

// Reflect is a PropertyAccessor built on package reflect.
type Reflect struct {
	// Coercions lists the scalar coercions Write may apply when a value is
	// neither assignable nor convertible to the field type.
	Coercions primitive.CategoryEnum
}

// New returns a Reflect accessor allowing the given coercions.
func New(coercions primitive.CategoryEnum) *Reflect {
	return &Reflect{Coercions: coercions}
}

var _ PropertyAccessor = (*Reflect)(nil)

func (r *Reflect) Read(obj reflect.Value, path string) (reflect.Value, bool) {
	v := obj

	for _, seg := range strings.Split(path, ".") {
		next, ok := member(v, seg)
		if !ok {
			return reflect.Value{}, false
		}

		v = next
	}

	return v, true
}

func (r *Reflect) TypeOf(obj reflect.Value, path string) (reflect.Type, bool) {
	if !obj.IsValid() {
		return nil, false
	}

	t := obj.Type()

	for _, seg := range strings.Split(path, ".") {
		next, ok := memberType(t, seg)
		if !ok {
			return nil, false
		}

		t = next
	}

	return t, true
}

func (r *Reflect) IsWritable(obj reflect.Value, path string) bool {
	if !obj.IsValid() || obj.Kind() != reflect.Pointer || obj.IsNil() {
		return false
	}

	segs := strings.Split(path, ".")
	t := obj.Type()

	for i, seg := range segs {
		container := indirectType(t)
		last := i == len(segs)-1

		switch {
		case container.Kind() == reflect.Struct:
		case container.Kind() == reflect.Map && last:
		default:
			return false
		}

		next, ok := memberType(t, seg)
		if !ok {
			return false
		}

		t = next
	}

	return true
}

func (r *Reflect) Write(obj reflect.Value, path string, v reflect.Value) error {
	parent := obj

	segs := strings.Split(path, ".")
	for _, seg := range segs[:len(segs)-1] {
		next, ok := member(parent, seg)
		if !ok {
			return ErrUnwritable
		}

		parent = next
	}

	parent, ok := indirect(parent)
	if !ok {
		return ErrUnwritable
	}

	last := segs[len(segs)-1]

	switch parent.Kind() {
	case reflect.Struct:
		fv, ok := field(parent, last)
		if !ok || !fv.CanSet() {
			return ErrUnwritable
		}

		return r.assign(fv, v)

	case reflect.Map:
		if parent.Type().Key().Kind() != reflect.String || parent.IsNil() {
			return ErrUnwritable
		}

		elem := reflect.New(parent.Type().Elem()).Elem()
		if err := r.assign(elem, v); err != nil {
			return err
		}

		parent.SetMapIndex(reflect.ValueOf(last).Convert(parent.Type().Key()), elem)

		return nil
	}

	return ErrUnwritable
}

// member returns the named member of a struct or string-keyed map value.
func member(v reflect.Value, name string) (reflect.Value, bool) {
	v, ok := indirect(v)
	if !ok {
		return reflect.Value{}, false
	}

	switch v.Kind() {
	case reflect.Struct:
		return field(v, name)

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}

		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))

		return mv, mv.IsValid()
	}

	return reflect.Value{}, false
}

func field(v reflect.Value, name string) (reflect.Value, bool) {
	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false
	}

	// promoted through a nil embedded pointer
	fv, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, false
	}

	return fv, true
}

func memberType(t reflect.Type, name string) (reflect.Type, bool) {
	t = indirectType(t)

	switch t.Kind() {
	case reflect.Struct:
		sf, ok := t.FieldByName(name)
		if !ok || !sf.IsExported() {
			return nil, false
		}

		return sf.Type, true

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, false
		}

		return t.Elem(), true
	}

	return nil, false
}

// indirect follows pointers and interfaces; ok is false on nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.IsValid()
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// IsNil reports whether v holds no value: invalid, or a nil pointer, interface,
// slice, map, channel or func.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	}

	return false
}
