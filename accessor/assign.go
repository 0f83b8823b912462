package accessor

import (
	"fmt"
	"reflect"

	"bimapper/primitive"
)

// assign stores v into the settable dst, converting where the shapes allow it:
// pointer wrapping and unwrapping, identical underlying scalars, scalar
// coercion, and element-wise copies of scalar collections.
func (r *Reflect) assign(dst, v reflect.Value) error {
	if !v.IsValid() {
		dst.SetZero()
		return nil
	}

	vt, dt := v.Type(), dst.Type()

	switch {
	case vt.AssignableTo(dt):
		dst.Set(v)
		return nil

	case v.Kind() == reflect.Interface, v.Kind() == reflect.Pointer && dt.Kind() != reflect.Pointer:
		if v.IsNil() {
			dst.SetZero()
			return nil
		}

		return r.assign(dst, v.Elem())

	case dt.Kind() == reflect.Pointer:
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				dst.SetZero()
				return nil
			}

			v = v.Elem()
		}

		p := reflect.New(dt.Elem())
		if err := r.assign(p.Elem(), v); err != nil {
			return err
		}

		dst.Set(p)

		return nil
	}

	from, to := primitive.BaseKind(vt), primitive.BaseKind(dt)
	if from != 0 && to != 0 {
		if from == to && vt.ConvertibleTo(dt) {
			dst.Set(v.Convert(dt))
			return nil
		}

		c, err := primitive.Convert(v, dt, r.Coercions)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIncompatible, err)
		}

		dst.Set(c)

		return nil
	}

	switch {
	case isSequence(vt) && isSequence(dt):
		return r.assignSequence(dst, v)
	case vt.Kind() == reflect.Map && dt.Kind() == reflect.Map:
		return r.assignMap(dst, v)
	case vt.Kind() == reflect.Struct && vt.ConvertibleTo(dt):
		dst.Set(v.Convert(dt))
		return nil
	}

	return fmt.Errorf("%w: %s into %s", ErrIncompatible, vt, dt)
}

func (r *Reflect) assignSequence(dst, v reflect.Value) error {
	if v.Kind() == reflect.Slice && v.IsNil() {
		dst.SetZero()
		return nil
	}

	out := dst
	if dst.Kind() == reflect.Slice {
		out = reflect.MakeSlice(dst.Type(), v.Len(), v.Len())
	} else {
		dst.SetZero()
	}

	n := min(v.Len(), out.Len())
	for i := range n {
		if err := r.assign(out.Index(i), v.Index(i)); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}

	if dst.Kind() == reflect.Slice {
		dst.Set(out)
	}

	return nil
}

func (r *Reflect) assignMap(dst, v reflect.Value) error {
	if v.IsNil() {
		dst.SetZero()
		return nil
	}

	dt := dst.Type()
	out := reflect.MakeMapWithSize(dt, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		k := reflect.New(dt.Key()).Elem()
		if err := r.assign(k, iter.Key()); err != nil {
			return fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		e := reflect.New(dt.Elem()).Elem()
		if err := r.assign(e, iter.Value()); err != nil {
			return fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		out.SetMapIndex(k, e)
	}

	dst.Set(out)

	return nil
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
