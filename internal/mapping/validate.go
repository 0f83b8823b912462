package mapping

import (
	"fmt"
	"reflect"
	"slices"

	"bimapper/catalog"
	"bimapper/decl"
	"bimapper/internal/diagnostic"
	"bimapper/internal/match"
)

// maxSuggestions bounds the "did you mean" list of one diagnostic.
const maxSuggestions = 3

// Validate checks a declaration file against the types of a catalogue.
func Validate(f *File, cat *catalog.Catalog) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if f == nil {
		d.AddError(diagnostic.CodeParse, "declaration file is nil", "", "")
		return d
	}

	if f.Version != CurrentVersion {
		d.AddError(diagnostic.CodeParse, fmt.Sprintf("unsupported version %q, want %q", f.Version, CurrentVersion), "", "version")
	}

	if cat == nil {
		cat = catalog.New()
	}

	v := validator{cat: cat, diags: &d, seen: make(map[reflect.Type]string)}
	for i := range f.Classes {
		v.class(&f.Classes[i])
	}

	return d
}

type validator struct {
	cat   *catalog.Catalog
	diags *diagnostic.Diagnostics
	seen  map[reflect.Type]string
}

func (v *validator) class(c *Class) {
	t, ok := v.resolve(c.Type, c.Type, "type")
	if !ok {
		return
	}

	if prev, dup := v.seen[t]; dup {
		v.diags.AddError(diagnostic.CodeDuplicateClass,
			fmt.Sprintf("%s is already declared as %q", t, prev), c.Type, "type")

		return
	}

	v.seen[t] = c.Type

	st, err := decl.StructOf(t)
	if err != nil {
		v.diags.AddError(diagnostic.CodeUnknownType, err.Error(), c.Type, "type")
		return
	}

	names := propertyNames(st)

	var partners []reflect.Type

	for _, ref := range c.Mappable {
		if ref == AnyType {
			continue
		}

		if pt, ok := v.resolve(ref, c.Type, "mappable"); ok {
			partners = append(partners, pt)
		}
	}

	for _, e := range c.MapTo {
		field := "map_to." + e.Property

		if !slices.Contains(names, e.Property) {
			v.unknownProperty(st, e.Property, names, c.Type, field)
			continue
		}

		p, err := ParsePath(e.Target())
		if err != nil {
			v.diags.AddError(diagnostic.CodeInvalidPath, err.Error(), c.Type, field)
			continue
		}

		if e.Elem != "" {
			v.resolve(e.Elem, c.Type, field+".elem")
		}

		v.checkRoot(p, partners, c.Type, field)
	}

	for _, name := range c.Ignore {
		if !slices.Contains(names, name) {
			v.unknownProperty(st, name, names, c.Type, "ignore")
		}
	}
}

// checkRoot warns when no partner has the root property of a path. Only the
// root is checked; deeper segments resolve at mapping time.
func (v *validator) checkRoot(p Path, partners []reflect.Type, class, field string) {
	if len(partners) == 0 {
		return
	}

	var candidates []string

	for _, pt := range partners {
		st, err := decl.StructOf(pt)
		if err != nil {
			continue
		}

		names := propertyNames(st)
		if slices.Contains(names, p.Root()) {
			return
		}

		candidates = append(candidates, names...)
	}

	v.diags.AddWarning(diagnostic.CodeUnknownProperty,
		fmt.Sprintf("no partner type has a property %q", p.Root()),
		class, field, match.Suggest(p.Root(), candidates, maxSuggestions)...)
}

func (v *validator) unknownProperty(st reflect.Type, name string, names []string, class, field string) {
	v.diags.AddError(diagnostic.CodeUnknownProperty,
		fmt.Sprintf("%s has no exported property %q", st, name),
		class, field, match.Suggest(name, names, maxSuggestions)...)
}

func (v *validator) resolve(ref, class, field string) (reflect.Type, bool) {
	t, err := v.cat.Resolve(ref)
	if err == nil {
		return t, true
	}

	var known []string
	for _, kt := range v.cat.Types() {
		known = append(known, catalog.IDOf(kt).Short())
	}

	v.diags.AddError(diagnostic.CodeUnknownType, err.Error(), class, field,
		match.Suggest(ref, known, maxSuggestions)...)

	return nil, false
}

func propertyNames(st reflect.Type) []string {
	props := decl.Properties(st)

	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}

	return names
}
