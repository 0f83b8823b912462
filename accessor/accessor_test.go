package accessor

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bimapper/primitive"
)

type Status string

type Address struct {
	Street string
	City   string
}

type Meta struct {
	Version int
}

type Customer struct {
	*Meta

	Name     string
	Age      int
	Status   Status
	Home     *Address
	Work     Address
	Labels   map[string]string
	Tags     []string
	Since    time.Time
	Any      any
	internal string
}

func TestReflect_Read(t *testing.T) {
	c := &Customer{
		Name:   "Ann",
		Home:   &Address{City: "Oslo"},
		Labels: map[string]string{"tier": "gold"},
		Any:    &Address{Street: "Main"},
	}
	obj := reflect.ValueOf(c)
	r := New(primitive.CategoryDefault)

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"Name", "Ann", true},
		{"Home.City", "Oslo", true},
		{"Work.City", "", true},
		{"Labels.tier", "gold", true},
		{"Labels.missing", nil, false},
		{"Any.Street", "Main", true},
		{"Missing", nil, false},
		{"internal", nil, false},
		{"Version", nil, false}, // promoted through nil *Meta
		{"Name.Length", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := r.Read(obj, tt.path)
			require.Equal(t, tt.ok, ok)

			if ok {
				assert.Equal(t, tt.want, v.Interface())
			}
		})
	}
}

func TestReflect_ReadNil(t *testing.T) {
	r := New(primitive.CategoryDefault)

	v, ok := r.Read(reflect.ValueOf(&Customer{}), "Home")
	require.True(t, ok)
	assert.True(t, IsNil(v))

	_, ok = r.Read(reflect.ValueOf(&Customer{}), "Home.City")
	assert.False(t, ok)
}

func TestReflect_TypeOf(t *testing.T) {
	r := New(primitive.CategoryDefault)
	obj := reflect.ValueOf(&Customer{})

	typ, ok := r.TypeOf(obj, "Home")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*Address](), typ)

	typ, ok = r.TypeOf(obj, "Home.Street")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[string](), typ)

	typ, ok = r.TypeOf(obj, "Version")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[int](), typ)

	_, ok = r.TypeOf(obj, "Any.Street")
	assert.False(t, ok)
}

func TestReflect_IsWritable(t *testing.T) {
	r := New(primitive.CategoryDefault)

	ptr := reflect.ValueOf(&Customer{})
	assert.True(t, r.IsWritable(ptr, "Name"))
	assert.True(t, r.IsWritable(ptr, "Home.City"))
	assert.True(t, r.IsWritable(ptr, "Labels.tier"))
	assert.False(t, r.IsWritable(ptr, "internal"))
	assert.False(t, r.IsWritable(ptr, "Missing"))
	assert.False(t, r.IsWritable(ptr, "Any.Street"))

	assert.False(t, r.IsWritable(reflect.ValueOf(Customer{}), "Name"), "values are not addressable")
}

func TestReflect_Write(t *testing.T) {
	r := New(primitive.CategoryDefault)
	c := &Customer{Home: &Address{}, Labels: map[string]string{}}
	obj := reflect.ValueOf(c)

	require.NoError(t, r.Write(obj, "Name", reflect.ValueOf("Bob")))
	require.NoError(t, r.Write(obj, "Home.City", reflect.ValueOf("Rome")))
	require.NoError(t, r.Write(obj, "Work.Street", reflect.ValueOf("Via Roma")))
	require.NoError(t, r.Write(obj, "Labels.tier", reflect.ValueOf("silver")))
	require.NoError(t, r.Write(obj, "Status", reflect.ValueOf("active")))
	require.NoError(t, r.Write(obj, "Age", reflect.ValueOf(int16(42))))

	assert.Equal(t, "Bob", c.Name)
	assert.Equal(t, "Rome", c.Home.City)
	assert.Equal(t, "Via Roma", c.Work.Street)
	assert.Equal(t, "silver", c.Labels["tier"])
	assert.Equal(t, Status("active"), c.Status)
	assert.Equal(t, 42, c.Age)
}

func TestReflect_WriteUnwritable(t *testing.T) {
	r := New(primitive.CategoryDefault)
	obj := reflect.ValueOf(&Customer{})

	assert.ErrorIs(t, r.Write(obj, "internal", reflect.ValueOf("x")), ErrUnwritable)
	assert.ErrorIs(t, r.Write(obj, "Missing", reflect.ValueOf("x")), ErrUnwritable)
	assert.ErrorIs(t, r.Write(obj, "Home.City", reflect.ValueOf("x")), ErrUnwritable, "nil intermediate")
	assert.ErrorIs(t, r.Write(obj, "Labels.tier", reflect.ValueOf("x")), ErrUnwritable, "nil map")
}

func TestReflect_WriteIncompatible(t *testing.T) {
	r := New(primitive.CategorySafeNumber)
	obj := reflect.ValueOf(&Customer{})

	err := r.Write(obj, "Age", reflect.ValueOf("42"))
	require.ErrorIs(t, err, ErrIncompatible)
	assert.ErrorIs(t, err, primitive.ErrCategoryDisallowed)

	err = r.Write(obj, "Work", reflect.ValueOf(Meta{Version: 1}))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestReflect_WriteOverflow(t *testing.T) {
	type Small struct {
		Signed   int8
		Unsigned uint8
		Float    float32
	}

	r := New(primitive.CategoryDefault)
	obj := reflect.ValueOf(&Small{})

	for path, in := range map[string]string{"Signed": "300", "Unsigned": "256", "Float": "1e39"} {
		err := r.Write(obj, path, reflect.ValueOf(in))
		require.ErrorIs(t, err, ErrIncompatible, path)
		assert.ErrorIs(t, err, primitive.ErrOverflow, path)
	}

	require.NoError(t, r.Write(obj, "Signed", reflect.ValueOf("-128")))
	require.NoError(t, r.Write(obj, "Unsigned", reflect.ValueOf("255")))
	assert.Equal(t, Small{Signed: -128, Unsigned: 255}, *obj.Interface().(*Small))
}

func TestReflect_WritePointers(t *testing.T) {
	type Target struct {
		Name  *string
		Count int
		Home  *Address
	}

	r := New(primitive.CategoryDefault)
	tgt := &Target{}
	obj := reflect.ValueOf(tgt)

	require.NoError(t, r.Write(obj, "Name", reflect.ValueOf("Ann")))
	n := 7
	require.NoError(t, r.Write(obj, "Count", reflect.ValueOf(&n)))
	require.NoError(t, r.Write(obj, "Home", reflect.ValueOf(Address{City: "Oslo"})))

	require.NotNil(t, tgt.Name)
	assert.Equal(t, "Ann", *tgt.Name)
	assert.Equal(t, 7, tgt.Count)
	require.NotNil(t, tgt.Home)
	assert.Equal(t, "Oslo", tgt.Home.City)
}

func TestReflect_WriteScalarCollections(t *testing.T) {
	type Target struct {
		Codes  []Status
		Fixed  [2]int64
		Counts map[Status]float64
	}

	r := New(primitive.CategoryDefault)
	tgt := &Target{}
	obj := reflect.ValueOf(tgt)

	require.NoError(t, r.Write(obj, "Codes", reflect.ValueOf([]string{"a", "b"})))
	require.NoError(t, r.Write(obj, "Fixed", reflect.ValueOf([]int{1, 2, 3})))
	require.NoError(t, r.Write(obj, "Counts", reflect.ValueOf(map[string]int32{"x": 1})))

	assert.Equal(t, []Status{"a", "b"}, tgt.Codes)
	assert.Equal(t, [2]int64{1, 2}, tgt.Fixed)
	assert.Equal(t, map[Status]float64{"x": 1}, tgt.Counts)
}

func TestIsNil(t *testing.T) {
	var nilMap map[string]int

	assert.True(t, IsNil(reflect.Value{}))
	assert.True(t, IsNil(reflect.ValueOf(nilMap)))
	assert.True(t, IsNil(reflect.ValueOf((*Address)(nil))))
	assert.False(t, IsNil(reflect.ValueOf(0)))
	assert.False(t, IsNil(reflect.ValueOf("")))
}
