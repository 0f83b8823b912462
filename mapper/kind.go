package mapper

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies mapping failures. A Kind is itself an error so it can be
// used as errors.Is target.
type Kind int

const (
	_ Kind = iota

	ReflectionFailure        // a type cannot be described
	ReciprocityFailure       // the types do not acknowledge each other
	InstantiationFailure     // the target cannot be created blank
	ConfigurationFailure     // declarations miss information the mapping needs
	PropertyWriteFailure     // the accessor rejected a write
	ElementTypeFailure       // a collection element is not an object
	CircularReferenceFailure // a collection element is already being mapped
)

var (
	ErrReflection        error = ReflectionFailure
	ErrReciprocity       error = ReciprocityFailure
	ErrInstantiation     error = InstantiationFailure
	ErrConfiguration     error = ConfigurationFailure
	ErrPropertyWrite     error = PropertyWriteFailure
	ErrElementType       error = ElementTypeFailure
	ErrCircularReference error = CircularReferenceFailure
)

var kindMessages = map[Kind]string{
	ReflectionFailure:        "cannot read declarations",
	ReciprocityFailure:       "types are not reciprocal",
	InstantiationFailure:     "cannot instantiate target",
	ConfigurationFailure:     "incomplete mapping configuration",
	PropertyWriteFailure:     "cannot write property",
	ElementTypeFailure:       "collection element is not an object",
	CircularReferenceFailure: "circular reference",
}

func (k Kind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}

	return k.String()
}
