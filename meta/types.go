package meta

import (
	"fmt"
	"reflect"
)

// Correspondence links a property path of one type to a property path of the
// other. Values are immutable; Invert returns a new one.
type Correspondence struct {
	SourcePath string
	TargetPath string
	// IsArray marks collections whose elements are mapped one by one.
	IsArray bool
	// TargetElem is the element type instantiated when mapping source to
	// target, SourceElem the one used in the opposite direction. Nil when
	// unknown.
	SourceElem reflect.Type
	TargetElem reflect.Type
}

// Invert swaps the direction.
func (c Correspondence) Invert() Correspondence {
	return Correspondence{
		SourcePath: c.TargetPath,
		TargetPath: c.SourcePath,
		IsArray:    c.IsArray,
		SourceElem: c.TargetElem,
		TargetElem: c.SourceElem,
	}
}

func (c Correspondence) String() string {
	if !c.IsArray {
		return c.SourcePath + " -> " + c.TargetPath
	}

	return fmt.Sprintf("%s[] -> %s[] (%s)", c.SourcePath, c.TargetPath, typeName(c.TargetElem))
}

// Dropped is a declaration the reader could not honour.
type Dropped struct {
	Type     reflect.Type
	Property string
	Path     string
	Reason   string
}

func (d Dropped) String() string {
	return fmt.Sprintf("%s.%s -> %s: %s", typeName(d.Type), d.Property, d.Path, d.Reason)
}

// Metadata describes how two struct types map onto each other. A is the
// source type of the direction first requested.
type Metadata struct {
	A, B            reflect.Type
	Correspondences []Correspondence // A -> B orientation
	// Valid is true when both types acknowledge each other as partner.
	Valid   bool
	Dropped []Dropped
}

// Oriented returns the correspondences for mapping src into dst: the stored
// list for A -> B, inverted copies for B -> A. ok is false when the pair does
// not belong to this metadata.
func (m *Metadata) Oriented(src, dst reflect.Type) ([]Correspondence, bool) {
	switch {
	case src == m.A && dst == m.B:
		return m.Correspondences, true
	case src == m.B && dst == m.A:
		out := make([]Correspondence, len(m.Correspondences))
		for i, c := range m.Correspondences {
			out[i] = c.Invert()
		}

		return out, true
	}

	return nil, false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "?"
	}

	return t.String()
}
