package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeJSON(t *testing.T) {
	root, _, _, _, _ := sampleTree()
	root.Children[0].Description = "with details"

	data, err := EncodeJSON(root)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))

	got, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, ToPortable(root), ToPortable(got))
	requireLinked(t, got)
}

func TestDecodeJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"id":`},
		{"missing kind", `{"id":"r","title":"root node","children":[]}`},
		{"missing children", `{"id":"r","title":"root node","kind":"root"}`},
		{"unknown kind", `{"id":"r","title":"root node","kind":"trunk","children":[]}`},
		{"wrong type", `{"id":"r","title":"root node","kind":"root","completed":"yes","children":[]}`},
		{"not a root", `{"id":"r","title":"x","kind":"normal","children":null}`},
		{"bad child", `{"id":"r","title":"root node","kind":"root","children":[{"id":"","title":"x","kind":"normal","children":null}]}`},
		{"child missing title", `{"id":"r","title":"root node","kind":"root","children":[{"id":"c","kind":"leaf","children":null}]}`},
		{"duplicate ids", `{"id":"r","title":"root node","kind":"root","children":[{"id":"r","title":"x","kind":"normal","children":null}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON([]byte(tt.data))
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestDecodeJSONAcceptsMinimalTree(t *testing.T) {
	data := `{
  "id": "r",
  "title": "root node",
  "kind": "root",
  "children": [
    {"id": "a", "title": "buy milk", "completed": true, "kind": "normal", "children": null},
    {"id": "b", "title": "errands", "expanded": true, "kind": "normal", "children": []}
  ]
}`
	got, err := DecodeJSON([]byte(data))
	require.NoError(t, err)

	require.Len(t, got.Children, 2)
	assert.True(t, got.Children[0].Completed)
	assert.Nil(t, got.Children[0].Children)
	assert.NotNil(t, got.Children[1].Children)
	assert.Same(t, got, got.Children[1].Parent())

	keys := CollectKeys(got)
	assert.Equal(t, []string{"a"}, keys.Completed.Sorted())
	assert.Equal(t, []string{"b"}, keys.Expanded.Sorted())
}
