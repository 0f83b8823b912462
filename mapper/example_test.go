package mapper_test

import (
	"fmt"

	"bimapper/catalog"
	"bimapper/mapper"
	"bimapper/store"
	"bimapper/warehouse"
)

func ExampleMapper_Map() {
	m, err := mapper.New(mapper.WithCatalog(catalog.New(warehouse.Product{}, store.Product{})))
	if err != nil {
		panic(err)
	}

	out, err := m.Map(&store.Product{SKU: "TEA-1", Name: "Green tea", PriceCents: 450}, "warehouse.Product")
	if err != nil {
		panic(err)
	}

	p := out.(*warehouse.Product)
	fmt.Println(p.SKU, p.Name, p.Price)

	back, err := mapper.To[store.Product](m, p)
	if err != nil {
		panic(err)
	}

	fmt.Println(back.PriceCents)
	// Output:
	// TEA-1 Green tea 450
	// 450
}
