package primitive_test

import (
	"bimapper/primitive"
	"fmt"
	"reflect"
	"time"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.BaseKind(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	fmt.Println(primitive.IsScalar(reflect.TypeOf(&Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindString
	// KindDuration
	// KindTime
	// KindEnum(0)
	// false
}
