package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"bimapper/internal/common"
)

// Diagnostic codes.
const (
	CodeParse           = "parse"
	CodeUnknownType     = "unknown-type"
	CodeUnknownProperty = "unknown-property"
	CodeDuplicateClass  = "duplicate-class"
	CodeInvalidPath     = "invalid-path"
	CodeNotReciprocal   = "not-reciprocal"
	CodeDropped         = "dropped-declaration"
	CodeReader          = "reader"
)

// Diagnostics holds all findings of one check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is one of the Code* constants.
	Code    string
	Message string
	// TypePair is "A <-> B" for pair level findings, the type name for class
	// level ones.
	TypePair string
	// FieldPath is the property or path concerned, if any.
	FieldPath string
	// Suggestions are likely intended names.
	Suggestions []string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add files d by its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typePair, fieldPath string, suggestions ...string) {
	d.Add(Diagnostic{SeverityError, code, message, typePair, fieldPath, suggestions})
}

func (d *Diagnostics) AddWarning(code, message, typePair, fieldPath string, suggestions ...string) {
	d.Add(Diagnostic{SeverityWarning, code, message, typePair, fieldPath, suggestions})
}

func (d *Diagnostics) AddInfo(code, message, typePair, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, TypePair: typePair, FieldPath: fieldPath})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's findings.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Err joins the error findings, nil when there are none.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

func (d Diagnostic) String() string {
	var b strings.Builder

	if d.TypePair != "" {
		b.WriteString("[" + d.TypePair + "] ")
	}

	if d.FieldPath != "" {
		b.WriteString(d.FieldPath + ": ")
	}

	fmt.Fprintf(&b, "%s: %s", d.Code, d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}
