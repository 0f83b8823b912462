// Package store holds the storefront side of the sample domain. Its types
// declare how they map onto the fulfilment types of package warehouse.
package store

import (
	"time"

	"bimapper/decl"
)

// Product is an item available for sale. Prices are in cents.
type Product struct {
	_ decl.Mappable `map:"warehouse.Product"`

	ID          int64
	SKU         string
	Name        string
	Description string `map:"-"` // marketing copy, not shipped to the warehouse
	PriceCents  int64  `map:"Price"`
	Inventory   int    `map:"Stock"`
	CreatedAt   time.Time
}

// Customer places orders.
type Customer struct {
	_ decl.Mappable `map:"warehouse.Customer"`

	ID       int64
	Email    string
	FullName string   `map:"DisplayName"`
	Street   string   `map:"Address.Street"`
	City     string   `map:"Address.City"`
	IsActive bool     `map:"-"`
	Orders   []*Order `map:"Orders,elem=warehouse.Order"`
}

// Order is a purchase made by a customer.
type Order struct {
	_ decl.Mappable `map:"warehouse.Order"`

	ID         int64
	CustomerID int64
	Status     OrderStatus
	TotalCents int64 `map:"TotalAmount"`
	Items      []OrderItem
	OrderedAt  time.Time `map:"PlacedAt"`
}

// OrderItem is one product line of an order, priced at purchase time.
type OrderItem struct {
	_ decl.Mappable `map:"warehouse.OrderItem"`

	ProductID int64
	SKU       string `map:"Product.SKU"`
	Quantity  int
	UnitPrice int64
}

// Shelf groups the products on display by SKU.
type Shelf struct {
	_ decl.Mappable `map:"warehouse.Bin"`

	Label    string `map:"Code"`
	Products map[string]*Product
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
