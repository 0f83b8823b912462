// Package mapping reads mapping declarations from YAML files, for types that
// cannot carry struct tags (generated code, third party packages).
//
// # Schema
//
//	version: "1"
//	classes:
//	  - type: store.Customer
//	    mappable: [warehouse.Customer]   # string or list, "*" accepts any type
//	    map_to:
//	      FullName: DisplayName           # property: path
//	      City: Address.City              # dotted target path
//	      Orders: {path: Orders, elem: warehouse.Order}
//	    ignore: [IsActive]
//
// Type references are resolved through a catalog.Catalog. A class listed in
// the file is described by the file alone; its struct tags are not read. Use
// decl.Chain(source, decl.Tags{}) to fall back to tags for every other type.
//
// Validate reports unknown types and properties (with suggestions), invalid
// paths and duplicate classes as diagnostics.
package mapping
