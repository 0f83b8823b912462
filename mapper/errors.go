package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Error is a mapping failure with the context it happened in.
type Error struct {
	Kind   Kind
	Source reflect.Type
	Target reflect.Type
	// Path is the target property path, empty when the failure is not tied
	// to a property.
	Path string
	// Key is the collection index or map key of the failing element.
	Key any
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("mapper: ")
	b.WriteString(e.Kind.Error())

	if e.Source != nil || e.Target != nil {
		fmt.Fprintf(&b, ": %s -> %s", typeName(e.Source), typeName(e.Target))
	}

	if e.Path != "" || e.Key != nil {
		b.WriteString(": ")
		b.WriteString(e.Path)

		if e.Key != nil {
			fmt.Fprintf(&b, "[%v]", e.Key)
		}
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Is matches the failure Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// withContext fills in the types, path and key an error does not carry yet.
// Errors that already name a path are returned unchanged; anything that is
// not an *Error becomes one of kind k.
func withContext(err error, k Kind, src, dst reflect.Type, path string, key any) error {
	var me *Error
	if !errors.As(err, &me) {
		return &Error{Kind: k, Source: src, Target: dst, Path: path, Key: key, Err: err}
	}

	if me.Path != "" {
		return err
	}

	out := *me
	if out.Source == nil && out.Target == nil {
		out.Source, out.Target = src, dst
	}

	out.Path = path
	if out.Key == nil {
		out.Key = key
	}

	return &out
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "?"
	}

	return t.String()
}
