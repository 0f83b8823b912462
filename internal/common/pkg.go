package common

import (
	"path"
	"strings"
)

// UnknownStr is the rendering used for enum values without a name.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitRoot splits a dotted property path into its first segment and the rest.
// "Address.City" -> ("Address", "City"); "Name" -> ("Name", "").
func SplitRoot(p string) (root, rest string) {
	root, rest, _ = strings.Cut(p, ".")
	return root, rest
}

// IsNested reports whether a property path has more than one segment.
func IsNested(p string) bool {
	return strings.Contains(p, ".")
}
