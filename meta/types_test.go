package meta

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrespondence_Invert(t *testing.T) {
	cs := []Correspondence{
		{SourcePath: "Name", TargetPath: "DisplayName"},
		{SourcePath: "City", TargetPath: "Address.City"},
		{
			SourcePath: "Friends",
			TargetPath: "Contacts",
			IsArray:    true,
			SourceElem: reflect.TypeFor[Person](),
			TargetElem: reflect.TypeFor[Contact](),
		},
	}

	for _, c := range cs {
		t.Run(c.String(), func(t *testing.T) {
			inv := c.Invert()
			assert.Equal(t, c.SourcePath, inv.TargetPath)
			assert.Equal(t, c.TargetElem, inv.SourceElem)
			assert.Equal(t, c, inv.Invert())
		})
	}
}

func TestMetadata_Oriented(t *testing.T) {
	person, contact := reflect.TypeFor[Person](), reflect.TypeFor[Contact]()
	md := &Metadata{
		A: person,
		B: contact,
		Correspondences: []Correspondence{
			{SourcePath: "Name", TargetPath: "DisplayName"},
		},
	}

	cs, ok := md.Oriented(person, contact)
	assert.True(t, ok)
	assert.Equal(t, "Name", cs[0].SourcePath)

	cs, ok = md.Oriented(contact, person)
	assert.True(t, ok)
	assert.Equal(t, "DisplayName", cs[0].SourcePath)
	assert.Equal(t, "Name", md.Correspondences[0].SourcePath, "stored list is not modified")

	_, ok = md.Oriented(person, reflect.TypeFor[Stranger]())
	assert.False(t, ok)
}

func ExampleCorrespondence_String() {
	fmt.Println(Correspondence{SourcePath: "Name", TargetPath: "DisplayName"})
	fmt.Println(Correspondence{
		SourcePath: "Friends",
		TargetPath: "Friends",
		IsArray:    true,
		TargetElem: reflect.TypeFor[Contact](),
	})
	// Output:
	// Name -> DisplayName
	// Friends[] -> Friends[] (meta.Contact)
}
