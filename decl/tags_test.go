package decl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	CreatedBy string
}

type Invoice struct {
	_ Mappable `map:"billing.Invoice"`
	_ Mappable `map:"ledger.Entry"`
	Audit

	Number   string
	Customer string   `map:"Buyer.Name"`
	Lines    []*Line  `map:",elem=billing.Line"`
	Secret   string   `map:"-"`
	Tags     []string `map:""`
	internal int
}

type Line struct {
	_ Mappable

	SKU string
}

func TestTags_Describe(t *testing.T) {
	c, err := Tags{}.Describe(reflect.TypeFor[*Invoice]())
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[Invoice](), c.Type)
	assert.Equal(t, []string{"billing.Invoice", "ledger.Entry"}, c.Reciprocal)
	assert.Equal(t, []string{"CreatedBy", "Number", "Customer", "Lines", "Secret", "Tags"}, c.Names())

	p, ok := c.Property("Customer")
	require.True(t, ok)
	assert.Equal(t, &MapTo{Path: "Buyer.Name"}, p.MapTo)

	p, _ = c.Property("Lines")
	assert.Equal(t, &MapTo{Path: "Lines", Elem: "billing.Line"}, p.MapTo)
	assert.Equal(t, reflect.TypeFor[[]*Line](), p.Type)

	p, _ = c.Property("Secret")
	assert.True(t, p.Ignore)
	assert.Nil(t, p.MapTo)

	p, _ = c.Property("Tags")
	assert.False(t, p.Ignore)
	assert.Nil(t, p.MapTo)

	_, ok = c.Property("internal")
	assert.False(t, ok)
}

func TestTags_AnyPartner(t *testing.T) {
	c, err := Tags{}.Describe(reflect.TypeFor[Line]())
	require.NoError(t, err)

	assert.Equal(t, []string{""}, c.Reciprocal)
	assert.True(t, c.Acknowledges(reflect.TypeFor[Invoice]()))
}

func TestTags_CustomKey(t *testing.T) {
	type Row struct {
		_    Mappable `dto:"Row"`
		Name string   `dto:"Title" map:"-"`
	}

	c, err := Tags{Key: "dto"}.Describe(reflect.TypeFor[Row]())
	require.NoError(t, err)

	p, _ := c.Property("Name")
	assert.False(t, p.Ignore)
	assert.Equal(t, "Title", p.MapTo.Path)
	assert.Equal(t, []string{"Row"}, c.Reciprocal)
}

func TestTags_Errors(t *testing.T) {
	_, err := Tags{}.Describe(reflect.TypeFor[[]Line]())
	require.ErrorIs(t, err, ErrNotStruct)

	_, err = Tags{}.Describe(nil)
	require.ErrorIs(t, err, ErrNotStruct)

	type Bad struct {
		Items []Line `map:"Items,kind=x"`
	}

	_, err = Tags{}.Describe(reflect.TypeFor[Bad]())
	require.ErrorIs(t, err, ErrInvalidTag)
	assert.Contains(t, err.Error(), "Items")
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		want   *MapTo
		ignore bool
		err    bool
	}{
		{tag: ""},
		{tag: "-", ignore: true},
		{tag: "FullName", want: &MapTo{Path: "FullName"}},
		{tag: " Address.City ", want: &MapTo{Path: "Address.City"}},
		{tag: "Items,elem=Item", want: &MapTo{Path: "Items", Elem: "Item"}},
		{tag: ",elem=pkg.Item", want: &MapTo{Elem: "pkg.Item"}},
		{tag: "Items,elem=", err: true},
		{tag: "Items,omitempty", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			mt, ignore, err := ParseTag(tt.tag)
			if tt.err {
				require.ErrorIs(t, err, ErrInvalidTag)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, mt)
			assert.Equal(t, tt.ignore, ignore)
		})
	}
}

func TestChain(t *testing.T) {
	override := SourceFunc(func(t reflect.Type) (*Class, error) {
		if t != reflect.TypeFor[Line]() {
			return nil, ErrUndeclared
		}

		return &Class{Type: t, Reciprocal: []string{"Override"}}, nil
	})

	src := Chain(override, Tags{})

	c, err := src.Describe(reflect.TypeFor[Line]())
	require.NoError(t, err)
	assert.Equal(t, []string{"Override"}, c.Reciprocal)

	c, err = src.Describe(reflect.TypeFor[Invoice]())
	require.NoError(t, err)
	assert.Len(t, c.Reciprocal, 2)

	_, err = Chain(override).Describe(reflect.TypeFor[Invoice]())
	require.ErrorIs(t, err, ErrUndeclared)
}
