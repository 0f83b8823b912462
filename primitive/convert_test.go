package primitive

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		from, to KindEnum
		want     CategoryEnum
	}{
		{KindInt8, KindInt64, CategorySafeNumber},
		{KindInt64, KindInt8, CategoryUnsafeNumber},
		{KindUint16, KindInt32, CategorySafeNumber},
		{KindUint32, KindInt32, CategoryUnsafeNumber},
		{KindInt32, KindUint64, CategoryUnsafeNumber},
		{KindInt16, KindFloat32, CategorySafeNumber},
		{KindInt32, KindFloat32, CategoryUnsafeNumber},
		{KindFloat64, KindFloat32, CategoryUnsafeNumber},
		{KindInt, KindString, CategoryTextNumber},
		{KindString, KindFloat64, CategoryTextNumber},
		{KindBool, KindInt, CategoryNumericBool},
		{KindString, KindBool, CategoryTextualBool},
		{KindTime, KindString, CategoryDatetime},
		{KindInt64, KindTime, CategoryTimestamp},
		{KindString, KindDuration, CategoryDuration},
		{KindInt64, KindDuration, CategoryNanoseconds},
		{KindDuration, KindFloat64, CategorySeconds},
		{KindBool, KindTime, CategoryNone},
		{0, KindString, CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.from, tt.to))
		})
	}
}

func TestParseCategories(t *testing.T) {
	c, ok := ParseCategories([]string{"safe-number", " Text-Number "})
	require.True(t, ok)
	assert.Equal(t, CategorySafeNumber|CategoryTextNumber, c)

	_, ok = ParseCategories([]string{"bogus"})
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	type Status string

	tests := []struct {
		name string
		in   any
		to   reflect.Type
		want any
	}{
		{"int to string", 42, reflect.TypeFor[string](), "42"},
		{"string to int64", "17", reflect.TypeFor[int64](), int64(17)},
		{"widen int8", int8(-3), reflect.TypeFor[int](), -3},
		{"yes to bool", "on", reflect.TypeFor[bool](), true},
		{"true to bool", "true", reflect.TypeFor[bool](), true},
		{"int to named string", 7, reflect.TypeFor[Status](), Status("7")},
		{"duration text", "1h30m", reflect.TypeFor[time.Duration](), 90 * time.Minute},
		{
			"datetime", "2024-01-02T03:04:05Z", reflect.TypeFor[time.Time](),
			time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			"time to text", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), reflect.TypeFor[string](),
			"2024-01-02T03:04:05Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(reflect.ValueOf(tt.in), tt.to, CategoryDefault)
			require.NoError(t, err)

			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.Interface().(time.Time)), "got %v", got)
				return
			}

			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestConvert_Rejects(t *testing.T) {
	_, err := Convert(reflect.ValueOf(int64(300)), reflect.TypeFor[int8](), CategoryDefault)
	require.ErrorIs(t, err, ErrCategoryDisallowed)

	got, err := Convert(reflect.ValueOf(int16(300)), reflect.TypeFor[int64](), CategoryDefault)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Interface())

	_, err = Convert(reflect.ValueOf(true), reflect.TypeFor[time.Time](), CategoryAll)
	require.ErrorIs(t, err, ErrNoConversion)

	_, err = Convert(reflect.ValueOf(struct{}{}), reflect.TypeFor[string](), CategoryAll)
	require.ErrorIs(t, err, ErrNotPrimitive)

	_, err = Convert(reflect.ValueOf("abc"), reflect.TypeFor[int](), CategoryAll)
	require.Error(t, err)
}

func TestConvert_Overflow(t *testing.T) {
	tests := []struct {
		in      any
		to      reflect.Type
		allowed CategoryEnum
	}{
		{"300", reflect.TypeFor[int8](), CategoryDefault},
		{"-129", reflect.TypeFor[int8](), CategoryDefault},
		{"256", reflect.TypeFor[uint8](), CategoryDefault},
		{"70000", reflect.TypeFor[uint16](), CategoryDefault},
		{"1e39", reflect.TypeFor[float32](), CategoryDefault},
		{int64(1 << 40), reflect.TypeFor[int32](), CategoryAll},
		{uint64(1 << 63), reflect.TypeFor[int64](), CategoryAll},
		{1e20, reflect.TypeFor[int64](), CategoryAll},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v->%s", tt.in, tt.to), func(t *testing.T) {
			_, err := Convert(reflect.ValueOf(tt.in), tt.to, tt.allowed)
			assert.ErrorIs(t, err, ErrOverflow)
		})
	}

	got, err := Convert(reflect.ValueOf("-128"), reflect.TypeFor[int8](), CategoryDefault)
	require.NoError(t, err)
	assert.Equal(t, int8(-128), got.Interface())

	got, err = Convert(reflect.ValueOf("255"), reflect.TypeFor[uint8](), CategoryDefault)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.Interface())
}
