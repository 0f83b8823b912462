// Package warehouse holds the fulfilment side of the sample domain. Mapping
// declarations mostly live on the store types; these types only acknowledge
// their storefront partners.
package warehouse

import (
	"time"

	"bimapper/decl"
)

// Address is a shipping address. It has no partner of its own and is only
// reached through dotted paths.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

type Customer struct {
	_ decl.Mappable `map:"store.Customer"`

	ID           int64
	Email        string
	DisplayName  string
	Phone        string
	PasswordHash string `map:"-"`
	Address      *Address
	Orders       []Order
	CreatedAt    time.Time
}

type Product struct {
	_ decl.Mappable `map:"store.Product"`

	ID     int64
	SKU    string
	Name   string
	Price  int64 // in cents
	Stock  int64
	Weight float64 // in grams
}

// Order is an order as picked and shipped.
type Order struct {
	_ decl.Mappable `map:"store.Order"`

	ID              int64
	CustomerID      int64
	OrderNumber     string
	Status          string
	TotalAmount     int64 // in cents
	Currency        string
	ShippingAddress *Address
	Items           []*OrderItem
	PlacedAt        *time.Time
}

type OrderItem struct {
	_ decl.Mappable `map:"store.OrderItem"`

	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int
	UnitPrice  int64
	TotalPrice int64
	Product    *Product
}

// Bin is a storage location holding products keyed by SKU.
type Bin struct {
	_ decl.Mappable `map:"store.Shelf"`

	Code     string
	Products map[string]*Product
}
