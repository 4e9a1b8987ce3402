package element

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataSetKeepsOrder(t *testing.T) {
	var m Metadata
	m.Set("source", "a.pdf")
	m.Set("page_number", 1)
	m.Set("source", "b.pdf")

	assert.Equal(t, []string{"source", "page_number"}, m.Keys())
	v, ok := m.Get("source")
	require.True(t, ok)
	assert.Equal(t, "b.pdf", v)
	assert.False(t, m.Has("missing"))
}

func TestMetadataMarshalJSONOrdered(t *testing.T) {
	m := Metadata{{"z", 1}, {"a", "x"}, {"m", []int{1, 2}}}

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":[1,2]}`, string(b))
}

func TestMetadataString(t *testing.T) {
	m := Metadata{{"filename", "paper.pdf"}, {"page_number", 2}}
	assert.Equal(t, `{"filename": "paper.pdf", "page_number": 2}`, m.String())
	assert.Equal(t, `{}`, Metadata(nil).String())
}

func TestMetadataCloneIsIndependent(t *testing.T) {
	m := Metadata{{"a", 1}}
	c := m.Clone()
	c.Set("a", 2)

	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
}

func TestHasCoordinates(t *testing.T) {
	assert.False(t, Element{}.HasCoordinates())
	assert.False(t, Element{Coordinates: &Coordinates{}}.HasCoordinates())
	assert.True(t, Element{Coordinates: &Coordinates{Points: Rect(0, 0, 1, 1)}}.HasCoordinates())
}
