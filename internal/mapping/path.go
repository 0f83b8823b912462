package mapping

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Path is a parsed dotted property path.
type Path []string

// ParsePath parses "Field" or "Nested.Field". Every segment must be an
// exported Go identifier.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, errors.New("empty path")
	}

	var p Path

	for seg := range strings.SplitSeq(s, ".") {
		if seg == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", s)
		}

		if !isExportedIdent(seg) {
			return nil, fmt.Errorf("invalid path %q: %q is not an exported identifier", s, seg)
		}

		p = append(p, seg)
	}

	return p, nil
}

// Root is the first segment.
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}

	return p[0]
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

func isExportedIdent(s string) bool {
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsUpper(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_':
			return false
		}
	}

	return s != ""
}
