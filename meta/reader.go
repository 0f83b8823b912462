package meta

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bimapper/decl"
	"bimapper/internal/common"
	"bimapper/primitive"
)

// TypeResolver resolves element type references; *catalog.Catalog
// implements it.
type TypeResolver interface {
	Resolve(ref string) (reflect.Type, error)
}

// Reader builds Metadata from declarations.
type Reader struct {
	src      decl.Source
	types    TypeResolver
	iterable Iterable
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithIterable extends the container types recognised as collections.
func WithIterable(it Iterable) ReaderOption {
	return func(r *Reader) {
		r.iterable = it
	}
}

// NewReader returns a Reader over src. types may be nil when no declaration
// names an element type.
func NewReader(src decl.Source, types TypeResolver, opts ...ReaderOption) *Reader {
	r := &Reader{src: src, types: types}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Build reads the declarations of a and b and derives their correspondences
// in a -> b orientation.
func (r *Reader) Build(a, b reflect.Type) (*Metadata, error) {
	ca, err := r.describe(a)
	if err != nil {
		return nil, err
	}

	cb, err := r.describe(b)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		A:     ca.Type,
		B:     cb.Type,
		Valid: ca.Acknowledges(cb.Type) && cb.Acknowledges(ca.Type),
	}

	seen := make(map[[2]string]struct{})
	add := func(c Correspondence) {
		key := [2]string{c.SourcePath, c.TargetPath}
		if _, dup := seen[key]; dup {
			return
		}

		seen[key] = struct{}{}
		md.Correspondences = append(md.Correspondences, c)
	}

	if err := r.scan(ca, cb, md, add); err != nil {
		return nil, err
	}

	if err := r.scan(cb, ca, md, func(c Correspondence) { add(c.Invert()) }); err != nil {
		return nil, err
	}

	return md, nil
}

func (r *Reader) describe(t reflect.Type) (*decl.Class, error) {
	st, err := decl.StructOf(t)
	if err != nil {
		return nil, err
	}

	class, err := r.src.Describe(st)

	switch {
	case errors.Is(err, decl.ErrUndeclared):
		// no declarations: properties only, no partner
		return &decl.Class{Type: st, Properties: decl.Properties(st)}, nil
	case err != nil:
		return nil, fmt.Errorf("describe %s: %w", st, err)
	}

	if class.Type == nil {
		class.Type = st
	}

	return class, nil
}

// scan derives the correspondences of x's properties against y in x -> y
// orientation.
func (r *Reader) scan(x, y *decl.Class, md *Metadata, add func(Correspondence)) error {
	for _, p := range x.Properties {
		if p.Ignore {
			continue
		}

		var (
			path     string
			opposite *decl.Property
		)

		if p.MapTo != nil {
			path = p.MapTo.Path

			if reason, ok := checkPath(path); !ok {
				md.Dropped = append(md.Dropped, Dropped{Type: x.Type, Property: p.Name, Path: path, Reason: reason})
				continue
			}

			root, rest := common.SplitRoot(path)

			q, ok := y.Property(root)
			if !ok {
				md.Dropped = append(md.Dropped, Dropped{
					Type:     x.Type,
					Property: p.Name,
					Path:     path,
					Reason:   fmt.Sprintf("%s has no property %q", y.Type, root),
				})

				continue
			}

			if rest == "" {
				if q.Ignore {
					continue
				}

				opposite = q
			}
		} else {
			q, ok := y.Property(p.Name)
			if !ok || q.Ignore {
				continue
			}

			// y routes its same-name property elsewhere
			if q.MapTo != nil && q.MapTo.Path != p.Name {
				continue
			}

			path, opposite = p.Name, q
		}

		c, err := r.correspondence(x, y, &p, opposite, path)
		if err != nil {
			return err
		}

		add(c)
	}

	return nil
}

func (r *Reader) correspondence(x, y *decl.Class, p, q *decl.Property, path string) (Correspondence, error) {
	c := Correspondence{SourcePath: p.Name, TargetPath: path}

	// only the root segment is checked; deeper segments resolve at write time
	yType, _ := fieldType(y.Type, path)

	xElem, xColl := r.collection(p.Type)
	yElem, yColl := r.collection(yType)
	c.IsArray = xColl || yColl

	if !c.IsArray {
		return c, nil
	}

	var err error

	c.TargetElem = structElem(yElem)
	if p.MapTo != nil && p.MapTo.Elem != "" {
		if c.TargetElem, err = r.resolve(p.MapTo.Elem); err != nil {
			return c, fmt.Errorf("%s.%s: %w", x.Type, p.Name, err)
		}
	}

	c.SourceElem = structElem(xElem)
	if q != nil && q.MapTo != nil && q.MapTo.Elem != "" {
		if c.SourceElem, err = r.resolve(q.MapTo.Elem); err != nil {
			return c, fmt.Errorf("%s.%s: %w", y.Type, q.Name, err)
		}
	}

	return c, nil
}

func (r *Reader) resolve(ref string) (reflect.Type, error) {
	if r.types == nil {
		return nil, fmt.Errorf("cannot resolve element type %q without a type resolver", ref)
	}

	t, err := r.types.Resolve(ref)
	if err != nil {
		return nil, err
	}

	return decl.StructOf(t)
}

// collection reports whether t holds objects that are mapped one by one.
// Scalar collections are plain values.
func (r *Reader) collection(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}

	if elem, ok := IterableElem(r.iterable, t); ok {
		return elem, isObject(elem)
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return t.Elem(), isObject(t.Elem())
	}

	return nil, false
}

// isObject reports whether values of t are mapped rather than copied.
func isObject(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct:
		return !primitive.IsScalar(t)
	}

	return false
}

func structElem(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}

	st, err := decl.StructOf(t)
	if err != nil {
		return nil
	}

	return st
}

// fieldType walks exported struct fields along a dotted path.
func fieldType(t reflect.Type, path string) (reflect.Type, bool) {
	for _, seg := range strings.Split(path, ".") {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		if t.Kind() != reflect.Struct {
			return nil, false
		}

		f, ok := t.FieldByName(seg)
		if !ok || !f.IsExported() {
			return nil, false
		}

		t = f.Type
	}

	return t, true
}

func checkPath(path string) (string, bool) {
	if path == "" {
		return "empty path", false
	}

	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return "empty path segment", false
		}
	}

	return "", true
}
