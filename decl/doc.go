// Package decl is the declaration vocabulary of the mapper and the capability
// that reads it.
//
// Three facts can be declared:
//   - a class takes part in mapping, optionally naming a reciprocal partner
//     (decl.Mappable marker field, repeatable);
//   - a property maps to another path, optionally naming the element type of a
//     collection (`map:"Path"`, `map:"Items,elem=warehouse.Item"`);
//   - a property is ignored (`map:"-"`).
//
// Example:
//
//	type Customer struct {
//	    _ decl.Mappable `map:"warehouse.Customer"`
//
//	    Name   string   `map:"DisplayName"`
//	    City   string   `map:"Address.City"`
//	    Orders []*Order `map:",elem=warehouse.Order"`
//	    Secret string   `map:"-"`
//	}
//
// The core never reads tags directly: it asks a Source to Describe a type.
// Tags is the struct tag Source; other sources (for example declaration files)
// can be put in front of it with Chain.
package decl
