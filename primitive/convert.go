package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"

	"bimapper/internal/common"
)

var (
	ErrNotPrimitive       = errors.New("value is not a primitive")
	ErrNoConversion       = errors.New("no coercion exists between kinds")
	ErrCategoryDisallowed = errors.New("coercion category is not allowed")
	ErrOverflow           = errors.New("value does not fit the target kind")
)

var textualBools = map[string]bool{
	"yes": true, "y": true, "on": true,
	"no": false, "n": false, "off": false,
}

// Convert coerces a scalar value into the target type when the kinds' category
// is part of allowed. Named target types (e.g. `type Status string`) receive
// the coerced value through a reflect conversion.
func Convert(v reflect.Value, to reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	from, toKind := BaseKind(v.Type()), BaseKind(to)
	if from == 0 || toKind == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrNotPrimitive, v.Type(), to)
	}

	cat := CategoryOf(from, toKind)
	if cat == CategoryNone {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrNoConversion, from, toKind)
	}

	if allowed&cat == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrCategoryDisallowed, from, toKind)
	}

	out, err := coerce(plain(v, from), toKind)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("coerce %s to %s: %w", v.Type(), to, err)
	}

	if !fits(out, toKind) {
		return reflect.Value{}, fmt.Errorf("%w: %v -> %s", ErrOverflow, out, to)
	}

	return reflect.ValueOf(out).Convert(to), nil
}

// plain unwraps named types so the cast library sees builtin values.
func plain(v reflect.Value, k KindEnum) any {
	switch {
	case k == KindTime || k == KindDuration:
		return v.Interface()
	case k.IsSigned():
		return v.Int()
	case k.IsUnsigned():
		return v.Uint()
	case k.IsFloat():
		return v.Float()
	case k == KindBool:
		return v.Bool()
	default:
		return v.String()
	}
}

func coerce(x any, to KindEnum) (any, error) {
	switch to {
	case KindString:
		return toString(x)
	case KindBool:
		return toBool(x)
	case KindTime:
		return toTime(x)
	case KindDuration:
		return toDuration(x)
	}

	switch t := x.(type) {
	case time.Time:
		x = t.Unix()
	case time.Duration:
		if to.IsFloat() {
			return t.Seconds(), nil
		}
		x = int64(t)
	}

	switch n := x.(type) {
	case uint64:
		if to.IsSigned() && n > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d", ErrOverflow, n)
		}
	case float64:
		if to.IsInteger() && (math.IsNaN(n) || n < math.MinInt64 || n >= math.MaxInt64) {
			return nil, fmt.Errorf("%w: %g", ErrOverflow, n)
		}
	}

	switch {
	case to.IsSigned():
		return cast.ToInt64E(x)
	case to.IsUnsigned():
		return cast.ToUint64E(x)
	default:
		return cast.ToFloat64E(x)
	}
}

// fits reports whether a coerced int64, uint64 or float64 is representable
// in the target kind.
func fits(x any, to KindEnum) bool {
	if !to.IsNumber() || to.Bits() == 64 {
		return true
	}

	switch n := x.(type) {
	case int64:
		limit := int64(1) << (to.Bits() - 1)
		return common.IsInRange(-limit, n, limit-1)
	case uint64:
		return n <= uint64(1)<<to.Bits()-1
	case float64:
		return math.IsNaN(n) || math.IsInf(n, 0) || common.IsInRange(-math.MaxFloat32, n, math.MaxFloat32)
	}

	return true
}

func toString(x any) (string, error) {
	if t, ok := x.(time.Time); ok {
		return t.Format(time.RFC3339Nano), nil
	}

	return cast.ToStringE(x)
}

func toBool(x any) (bool, error) {
	if s, ok := x.(string); ok {
		if b, known := textualBools[strings.ToLower(strings.TrimSpace(s))]; known {
			return b, nil
		}
	}

	return cast.ToBoolE(x)
}

func toTime(x any) (time.Time, error) {
	switch n := x.(type) {
	case int64:
		return time.Unix(n, 0).UTC(), nil
	case uint64:
		return time.Unix(int64(n), 0).UTC(), nil
	}

	return cast.ToTimeE(x)
}

func toDuration(x any) (time.Duration, error) {
	switch n := x.(type) {
	case int64:
		return time.Duration(n), nil
	case uint64:
		return time.Duration(n), nil
	case float64:
		return time.Duration(n * float64(time.Second)), nil
	}

	return cast.ToDurationE(x)
}
