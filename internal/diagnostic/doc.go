// Package diagnostic collects structured findings about mapping declarations:
// unknown types and properties, invalid paths, pairs that do not acknowledge
// each other and declarations the metadata reader had to drop.
package diagnostic
