// Package meta turns the declarations of two struct types into the list of
// property correspondences between them.
//
// A Reader scans both types against each other, so a rename declared on
// either side is honoured in both directions. The resulting Metadata is kept
// in one orientation (the pair as first requested) and inverted on demand by
// Oriented. Cache memoises Metadata per unordered type pair.
//
// Example:
//
//	r := meta.NewReader(decl.Tags{}, cat)
//	md, err := r.Build(reflect.TypeFor[store.Order](), reflect.TypeFor[warehouse.Order]())
//	for _, c := range md.Correspondences {
//		fmt.Println(c)
//	}
package meta
