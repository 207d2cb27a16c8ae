package models

import "sort"

// KeySet is a set of mission ids.
type KeySet map[string]struct{}

// Has reports whether id is in the set.
func (s KeySet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s KeySet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Keys holds the ids of completed and expanded missions of a tree.
type Keys struct {
	Completed KeySet
	Expanded  KeySet
}

// CollectKeys gathers the completed and expanded ids of m and its descendants.
func CollectKeys(m *Mission) Keys {
	keys := Keys{Completed: KeySet{}, Expanded: KeySet{}}
	collectKeys(m, keys)
	return keys
}

func collectKeys(m *Mission, keys Keys) {
	if m.Completed {
		keys.Completed[m.ID] = struct{}{}
	}
	if m.Expanded {
		keys.Expanded[m.ID] = struct{}{}
	}
	for _, child := range m.Children {
		collectKeys(child, keys)
	}
}
