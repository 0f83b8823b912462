package mapper_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"bimapper/catalog"
	"bimapper/decl"
	"bimapper/mapper"
	"bimapper/store"
	"bimapper/warehouse"
)

type Src struct {
	_ decl.Mappable `map:"mapper_test.Dst"`

	Name string `map:"FullName"`
}

type Dst struct {
	_ decl.Mappable `map:"mapper_test.Src"`

	FullName string
}

// Lonely names Snob as partner, Snob does not answer.
type Lonely struct {
	_ decl.Mappable `map:"mapper_test.Snob"`

	Name string
}

type Snob struct {
	_ decl.Mappable `map:"mapper_test.Dst"`

	Name string
}

type Profile struct {
	_ decl.Mappable `map:"mapper_test.Account"`

	Nick *string
	Bio  string
	Age  int
	Tags []string
}

type Account struct {
	_ decl.Mappable `map:"mapper_test.Profile"`

	Nick string
	Bio  string
	Age  int
	Tags []string
}

type Node struct {
	_ decl.Mappable `map:"mapper_test.NodeDTO"`

	Name  string
	Links []*Node
}

type NodeDTO struct {
	_ decl.Mappable `map:"mapper_test.Node"`

	Name  string
	Links []*NodeDTO
}

type Box struct {
	_ decl.Mappable

	Label string
}

type Basket struct {
	_ decl.Mappable `map:"mapper_test.Crate"`
	_ decl.Mappable `map:"mapper_test.Bag"`

	Items []any `map:"Items,elem=mapper_test.Box"`
}

type Crate struct {
	_ decl.Mappable `map:"mapper_test.Basket"`

	Items []*Box
}

type Bag struct {
	_ decl.Mappable `map:"mapper_test.Basket"`

	Items []any
}

type Meter struct {
	_ decl.Mappable `map:"mapper_test.Gauge"`

	Reading string
	Level   *string
}

type Gauge struct {
	_ decl.Mappable `map:"mapper_test.Meter"`

	Reading int
	Level   int8
}

type Shipment struct {
	_ decl.Mappable `map:"mapper_test.Pallet"`

	Boxes []Box
}

// Pallet holds at most two boxes.
type Pallet struct {
	_ decl.Mappable `map:"mapper_test.Shipment"`

	Boxes [2]*Box
}

type Street struct {
	_ decl.Mappable

	Name string
}

type Road struct {
	_ decl.Mappable

	Name string
}

// StreetSet and RoadSet are containers the mapper only walks through
// setIterable.
type StreetSet struct{ Items []Street }

type RoadSet struct{ Items []*Road }

type Town struct {
	_ decl.Mappable `map:"mapper_test.City"`

	Streets StreetSet `map:"Roads"`
}

type City struct {
	_ decl.Mappable `map:"mapper_test.Town"`

	Roads *RoadSet
}

type setIterable struct{}

func (setIterable) ElemOf(t reflect.Type) (reflect.Type, bool) {
	switch t {
	case reflect.TypeFor[StreetSet]():
		return reflect.TypeFor[Street](), true
	case reflect.TypeFor[RoadSet]():
		return reflect.TypeFor[*Road](), true
	}

	return nil, false
}

func (setIterable) Elements(v reflect.Value) reflect.Value {
	return v.FieldByName("Items")
}

func (setIterable) Build(t reflect.Type, elems reflect.Value) (reflect.Value, error) {
	switch t {
	case reflect.TypeFor[StreetSet]():
		return reflect.ValueOf(StreetSet{Items: elems.Interface().([]Street)}), nil
	case reflect.TypeFor[RoadSet]():
		return reflect.ValueOf(RoadSet{Items: elems.Interface().([]*Road)}), nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported set %s", t)
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		store.Customer{}, store.Order{}, store.OrderItem{}, store.Product{}, store.Shelf{},
		warehouse.Customer{}, warehouse.Order{}, warehouse.OrderItem{}, warehouse.Product{}, warehouse.Bin{},
		warehouse.Address{},
		Src{}, Dst{}, Box{}, Basket{}, Crate{}, Bag{},
	)
}

func newMapper(t *testing.T, opts ...mapper.Option) *mapper.Mapper {
	t.Helper()

	m, err := mapper.New(append([]mapper.Option{mapper.WithCatalog(testCatalog())}, opts...)...)
	require.NoError(t, err)

	return m
}
