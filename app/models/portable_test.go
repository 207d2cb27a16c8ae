package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableRoundTrip(t *testing.T) {
	root, _, b, c, _ := sampleTree()
	leaf := &Mission{ID: "leaf-1", Title: "leaf", Kind: KindLeaf, Description: "no slot", Completed: true}
	root, err := RefreshNode(root, Append(b, leaf))
	require.NoError(t, err)
	root, err = RefreshNode(root, Append(Find(root, c.ID), NewMission("gone")))
	require.NoError(t, err)
	emptied := Find(root, c.ID)
	root, err = RefreshNode(root, Delete(emptied, emptied.Children[0]))
	require.NoError(t, err)

	p := ToPortable(root)
	got, err := FromPortable(p, nil)
	require.NoError(t, err)

	assert.NotSame(t, root, got)
	assert.Equal(t, p, ToPortable(got))
	assert.Nil(t, got.Parent())
	requireLinked(t, got)

	gotLeaf := Find(got, "leaf-1")
	require.NotNil(t, gotLeaf)
	assert.Equal(t, KindLeaf, gotLeaf.Kind)
	assert.Nil(t, gotLeaf.Children)
	assert.Equal(t, "no slot", gotLeaf.Description)
	assert.True(t, gotLeaf.Completed)

	gotEmptied := Find(got, c.ID)
	require.NotNil(t, gotEmptied)
	assert.NotNil(t, gotEmptied.Children)
	assert.Empty(t, gotEmptied.Children)
}

func TestPortableNullVersusEmptyChildren(t *testing.T) {
	parent := Append(NewMission("p"), NewMission("c"))
	parent = Delete(parent, parent.Children[0])
	root := Append(Append(NewRootMission(), parent), NewMission("bare"))

	data, err := json.Marshal(ToPortable(root))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"children":[]`)
	assert.Contains(t, string(data), `"children":null`)

	var p Portable
	require.NoError(t, json.Unmarshal(data, &p))
	require.Len(t, p.Children, 2)
	assert.NotNil(t, p.Children[0].Children)
	assert.Empty(t, p.Children[0].Children)
	assert.Nil(t, p.Children[1].Children)

	got, err := FromPortable(&p, nil)
	require.NoError(t, err)
	assert.NotNil(t, got.Children[0].Children)
	assert.Nil(t, got.Children[1].Children)
}

func TestPortableHasNoParentField(t *testing.T) {
	data, err := json.Marshal(ToPortable(Append(NewRootMission(), NewMission("x"))))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "parent")
	assert.Contains(t, string(data), `"kind":"root"`)
	assert.Contains(t, string(data), `"kind":"normal"`)
}

func TestFromPortableAttachesToParent(t *testing.T) {
	holder := NewMission("holder")
	got, err := FromPortable(&Portable{ID: "x", Title: "x", Kind: "normal"}, holder)
	require.NoError(t, err)
	assert.Same(t, holder, got.Parent())
}

func TestFromPortableMalformed(t *testing.T) {
	tests := []struct {
		name string
		p    *Portable
	}{
		{"unknown kind", &Portable{ID: "r", Kind: "branch"}},
		{"empty id", &Portable{Kind: "root", Children: []*Portable{}}},
		{"nested root", &Portable{ID: "r", Kind: "root", Children: []*Portable{
			{ID: "r2", Kind: "root"},
		}}},
		{"duplicate id", &Portable{ID: "r", Kind: "root", Children: []*Portable{
			{ID: "x", Kind: "normal"},
			{ID: "x", Kind: "leaf"},
		}}},
		{"null child", &Portable{ID: "r", Kind: "root", Children: []*Portable{nil}}},
		{"bad grandchild", &Portable{ID: "r", Kind: "root", Children: []*Portable{
			{ID: "x", Kind: "normal", Children: []*Portable{{ID: "y", Kind: "?"}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromPortable(tt.p, nil)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}
