// Package mapper copies property values between instances of two struct
// types that declare each other as mapping partners.
//
// Declarations live on the types themselves (see package decl):
//
//	type Customer struct {
//		_ decl.Mappable `map:"warehouse.Client"`
//
//		Name   string   `map:"FullName"`
//		City   string   `map:"Address.City"`
//		Orders []*Order `map:"Orders,elem=warehouse.Order"`
//		Notes  string   `map:"-"`
//	}
//
// One declaration serves both directions: mapping a Customer into a
// warehouse.Client and a warehouse.Client back into a Customer use the same
// correspondences, read once and cached per type pair.
//
// Mapping rules:
//   - unreadable and nil source values are skipped, so a partial source never
//     erases target fields; zero scalars ("" and 0) are written;
//   - nil pointers along a dotted target path are filled with blank structs;
//   - collections of structs are mapped element by element, keeping map keys
//     and slice order;
//   - target fields that cannot be written are skipped, write failures and
//     missing configuration are errors.
//
// Containers other than slices, arrays and maps are mapped element by element
// once a meta.Iterable describing them is installed with WithIterable.
//
// The cycle guard tracks the element types being mapped, not instances. A
// tree whose elements hold collections of their own type more than one level
// deep (a Category with subcategories with subcategories) is reported as a
// circular reference; map such trees level by level with MapCollection.
//
// Every failure is a *Error whose Kind can be matched with errors.Is, for
// example errors.Is(err, mapper.ErrReciprocity).
//
// A Mapper is not safe for concurrent use.
package mapper
