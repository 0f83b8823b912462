// Package match ranks identifiers by similarity. It backs the "did you mean"
// suggestions of declaration file validation.
package match
