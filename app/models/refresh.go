package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAncestor is returned when the ancestor handed to RefreshNode
	// does not hold the changed mission.
	ErrInvalidAncestor = errors.New("invalid ancestor")
	// ErrInvalidTarget is returned when a move cannot locate its drop target
	// in the rebuilt tree.
	ErrInvalidTarget = errors.New("invalid operation target")
	// ErrMalformed is returned when portable data cannot be materialized.
	ErrMalformed = errors.New("malformed portable data")
)

// RefreshNode rebuilds every mission on the path from the changed mission up to
// ancestor and returns the new ancestor. Missions off that path are shared with
// the old tree.
//
// ancestor must be the reference the caller currently holds and changed the
// newly created mission whose parent back-reference still points into that tree.
func RefreshNode(ancestor, changed *Mission) (*Mission, error) {
	pointer := changed
	for {
		parent := pointer.Parent()
		if parent == ancestor {
			break
		}
		if parent == nil || parent.IsRoot() {
			return nil, fmt.Errorf("refresh %s below %s: %w", changed.ID, ancestor.ID, ErrInvalidAncestor)
		}
		pointer = parent
	}

	if changed.Parent() == ancestor {
		return Update(ancestor, changed), nil
	}
	return RefreshNode(ancestor, Update(changed.Parent(), changed))
}

// Rebuild returns the root of the tree after changed was produced by an edit.
// A changed root replaces the tree as a whole.
func Rebuild(root, changed *Mission) (*Mission, error) {
	if changed.IsRoot() {
		return relink(changed), nil
	}
	return RefreshNode(root, changed)
}
