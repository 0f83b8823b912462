package mapper

import (
	"fmt"
	"reflect"

	"bimapper/accessor"
	"bimapper/catalog"
	"bimapper/meta"
	"bimapper/primitive"
)

// mapCollection maps the elements of a slice, array, map or Iterable
// container into elem.
// declared is the target container type when known; otherwise the result has
// the source's shape with *elem values.
func (s *session) mapCollection(v reflect.Value, declared, elem reflect.Type) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			break
		}

		v = v.Elem()
	}

	if srcElem, ok := meta.IterableElem(s.m.iterable, v.Type()); ok {
		v = s.unpack(v, srcElem)
	}

	if ct := deref(declared); ct != nil {
		if slot, ok := meta.IterableElem(s.m.iterable, ct); ok {
			return s.rebuild(v, ct, slot, elem)
		}
	}

	ct, err := containerType(v.Type(), declared, elem)
	if err != nil {
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: err}
	}

	if accessor.IsNil(v) {
		return empty(ct), nil
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("%s is not a collection", v.Type())}
	}

	if v.Len() > 0 && elem == nil {
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("no element type known for %s", v.Type())}
	}

	if v.Kind() == reflect.Map {
		return s.mapEntries(v, ct, elem)
	}

	return s.mapSequence(v, ct, elem)
}

// unpack turns a container known to the Iterable into a slice of its
// elements.
func (s *session) unpack(v reflect.Value, elem reflect.Type) reflect.Value {
	if accessor.IsNil(v) {
		return reflect.Zero(reflect.SliceOf(elem))
	}

	return s.m.iterable.Elements(v)
}

// rebuild maps v into a slice of slot values and hands them to the Iterable
// to build a ct container.
func (s *session) rebuild(v reflect.Value, ct, slot, elem reflect.Type) (reflect.Value, error) {
	items, err := s.mapCollection(v, reflect.SliceOf(slot), elem)
	if err != nil {
		return reflect.Value{}, err
	}

	out, err := s.m.iterable.Build(ct, items)
	if err != nil {
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("build %s: %w", ct, err)}
	}

	return out, nil
}

func (s *session) mapSequence(v reflect.Value, ct, elem reflect.Type) (reflect.Value, error) {
	var out reflect.Value

	switch ct.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(ct, v.Len(), v.Len())
	case reflect.Array:
		if v.Len() > ct.Len() {
			return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("%d elements do not fit into %s", v.Len(), ct)}
		}

		out = reflect.New(ct).Elem()
	default:
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("cannot map %s into %s", v.Type(), ct)}
	}

	for i := range v.Len() {
		ev, err := s.element(v.Index(i), ct.Elem(), elem, i)
		if err != nil {
			return reflect.Value{}, err
		}

		out.Index(i).Set(ev)
	}

	return out, nil
}

func (s *session) mapEntries(v reflect.Value, ct, elem reflect.Type) (reflect.Value, error) {
	if ct.Kind() != reflect.Map {
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Err: fmt.Errorf("cannot map %s into %s", v.Type(), ct)}
	}

	out := reflect.MakeMapWithSize(ct, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		k, err := convertKey(iter.Key(), ct.Key())
		if err != nil {
			return reflect.Value{}, &Error{Kind: ConfigurationFailure, Key: iter.Key().Interface(), Err: err}
		}

		ev, err := s.element(iter.Value(), ct.Elem(), elem, iter.Key().Interface())
		if err != nil {
			return reflect.Value{}, err
		}

		out.SetMapIndex(k, ev)
	}

	return out, nil
}

// element maps one collection element into a value of the slot type.
func (s *session) element(ev reflect.Value, slot, elem reflect.Type, key any) (reflect.Value, error) {
	if accessor.IsNil(ev) {
		return reflect.Zero(slot), nil
	}

	obj := ev
	for obj.Kind() == reflect.Pointer || obj.Kind() == reflect.Interface {
		if obj.IsNil() {
			return reflect.Zero(slot), nil
		}

		obj = obj.Elem()
	}

	if obj.Kind() != reflect.Struct || primitive.IsScalar(obj.Type()) {
		if s.m.policy == ScalarPassThrough && obj.Type().AssignableTo(slot) {
			return obj, nil
		}

		return reflect.Value{}, &Error{Kind: ElementTypeFailure, Key: key, Err: fmt.Errorf("element is %s", obj.Type())}
	}

	et := obj.Type()
	if _, busy := s.inflight[et]; busy {
		return reflect.Value{}, &Error{Kind: CircularReferenceFailure, Key: key, Err: fmt.Errorf("%s is already being mapped", et)}
	}

	s.inflight[et] = struct{}{}
	defer delete(s.inflight, et)

	dst, err := catalog.Instantiate(elem)
	if err != nil {
		return reflect.Value{}, &Error{Kind: ConfigurationFailure, Key: key, Err: err}
	}

	if err := s.mapObject(obj, dst); err != nil {
		return reflect.Value{}, withContext(err, ConfigurationFailure, nil, nil, "", key)
	}

	s.stats.Elements++

	return fit(dst, slot, key)
}

// fit stores a mapped *elem in a container slot of type slot.
func fit(ptr reflect.Value, slot reflect.Type, key any) (reflect.Value, error) {
	switch {
	case ptr.Type().AssignableTo(slot):
		return ptr, nil
	case ptr.Elem().Type().AssignableTo(slot):
		return ptr.Elem(), nil
	}

	return reflect.Value{}, &Error{Kind: ConfigurationFailure, Key: key, Err: fmt.Errorf("%s does not fit into %s", ptr.Type(), slot)}
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// containerType picks the type of the collection to build.
func containerType(src, declared, elem reflect.Type) (reflect.Type, error) {
	declared = deref(declared)

	if declared != nil {
		switch declared.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return declared, nil
		}

		return nil, fmt.Errorf("target %s is not a collection", declared)
	}

	for src.Kind() == reflect.Pointer {
		src = src.Elem()
	}

	if elem == nil {
		return src, nil
	}

	slot := reflect.PointerTo(elem)

	switch src.Kind() {
	case reflect.Slice:
		return reflect.SliceOf(slot), nil
	case reflect.Array:
		return reflect.ArrayOf(src.Len(), slot), nil
	case reflect.Map:
		return reflect.MapOf(src.Key(), slot), nil
	}

	return nil, fmt.Errorf("%s is not a collection", src)
}

func empty(ct reflect.Type) reflect.Value {
	switch ct.Kind() {
	case reflect.Slice:
		return reflect.MakeSlice(ct, 0, 0)
	case reflect.Map:
		return reflect.MakeMap(ct)
	}

	return reflect.New(ct).Elem()
}

func convertKey(k reflect.Value, to reflect.Type) (reflect.Value, error) {
	switch {
	case k.Type().AssignableTo(to):
		return k, nil
	case primitive.BaseKind(k.Type()) != 0 && primitive.BaseKind(k.Type()) == primitive.BaseKind(to):
		return k.Convert(to), nil
	}

	return reflect.Value{}, fmt.Errorf("map key %s does not fit into %s", k.Type(), to)
}
