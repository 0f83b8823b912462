package meta

import "reflect"

// Iterable teaches the reader and the engine a container type beyond slices,
// arrays and maps, such as a set or list struct.
type Iterable interface {
	// ElemOf reports the element type of containers of type t; ok is false
	// for types this Iterable does not handle.
	ElemOf(t reflect.Type) (elem reflect.Type, ok bool)
	// Elements returns the elements of container v as a slice of its element
	// type.
	Elements(v reflect.Value) reflect.Value
	// Build makes a container of type t holding the elements of the slice
	// elems.
	Build(t reflect.Type, elems reflect.Value) (reflect.Value, error)
}

// IterableElem asks it for the element type of t, looking through pointers.
// Slices, arrays and maps are always walked natively and never reach it.
func IterableElem(it Iterable, t reflect.Type) (reflect.Type, bool) {
	if it == nil || t == nil {
		return nil, false
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return nil, false
	}

	return it.ElemOf(t)
}
