package primitive

import "strings"

// CategoryEnum is a bit set of scalar coercion families a write may use when
// the source value is neither assignable nor convertible to the target field.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected

	// CategoryDefault allows every coercion that cannot lose information;
	// values out of the target range fail with ErrOverflow.
	CategoryDefault = CategorySafeNumber | CategoryTextNumber | CategoryTextualBool |
		CategoryDatetime | CategoryDuration
)

var categoryNames = map[string]CategoryEnum{
	"safe-number":   CategorySafeNumber,
	"unsafe-number": CategoryUnsafeNumber,
	"text-number":   CategoryTextNumber,
	"numeric-bool":  CategoryNumericBool,
	"textual-bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"seconds":       CategorySeconds,
	"all":           CategoryAll,
	"default":       CategoryDefault,
	"none":          CategoryNone,
}

// ParseCategories folds category names (as used in configuration files) into
// a bit set. Unknown names are reported with ok=false.
func ParseCategories(names []string) (CategoryEnum, bool) {
	var out CategoryEnum

	for _, n := range names {
		c, ok := categoryNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, false
		}

		out |= c
	}

	return out, true
}

// CategoryOf returns the single category that covers a from->to coercion, or
// CategoryNone when the kinds cannot be coerced at all.
func CategoryOf(from, to KindEnum) CategoryEnum {
	switch {
	case from == 0 || to == 0:
		return CategoryNone

	case from.IsNumber() && to.IsNumber():
		if isSafeNumber(from, to) {
			return CategorySafeNumber
		}
		return CategoryUnsafeNumber

	case from.IsNumber() && to == KindString, from == KindString && to.IsNumber():
		return CategoryTextNumber

	case from.IsInteger() && to == KindBool, from == KindBool && to.IsInteger():
		return CategoryNumericBool

	case from == KindString && to == KindBool, from == KindBool && to == KindString:
		return CategoryTextualBool

	case from == KindString && to == KindTime, from == KindTime && to == KindString:
		return CategoryDatetime

	case from.IsInteger() && to == KindTime, from == KindTime && to.IsInteger():
		return CategoryTimestamp

	case from == KindString && to == KindDuration, from == KindDuration && to == KindString:
		return CategoryDuration

	case from.IsInteger() && to == KindDuration, from == KindDuration && to.IsInteger():
		return CategoryNanoseconds

	case from.IsFloat() && to == KindDuration, from == KindDuration && to.IsFloat():
		return CategorySeconds
	}

	return CategoryNone
}

// isSafeNumber reports whether every value of from is representable in to.
func isSafeNumber(from, to KindEnum) bool {
	switch {
	case from == to:
		return true
	case from.IsFloat():
		return to.IsFloat() && to.Bits() >= from.Bits()
	case to.IsFloat():
		// integer into float: must fit the mantissa
		mantissa := 24
		if to == KindFloat64 {
			mantissa = 53
		}
		return from.Bits() < mantissa
	case from.IsSigned() && to.IsUnsigned():
		return false
	case from.IsUnsigned() && to.IsSigned():
		return to.Bits() > from.Bits()
	default:
		return to.Bits() >= from.Bits()
	}
}
