package models

import (
	"fmt"
	"strings"
)

// Position is where a dragged mission lands relative to its drop target.
type Position int

const (
	Before Position = iota
	Into
	After
)

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "into"
	}
}

// ParsePosition reads a position name.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(s) {
	case "before":
		return Before, nil
	case "into", "":
		return Into, nil
	case "after":
		return After, nil
	}
	return Into, fmt.Errorf("unknown position %q", s)
}

// Reorder moves drag next to or into target and returns the new root.
//
// Removing drag rebuilds the path above it, which may replace target itself, so
// target is located again by id in the intermediate tree before the insert.
func Reorder(root, drag, target *Mission, pos Position) (*Mission, error) {
	if drag.IsRoot() {
		return nil, fmt.Errorf("move root %s: %w", drag.ID, ErrInvalidTarget)
	}
	from := drag.Parent()
	if from == nil {
		return nil, fmt.Errorf("move detached %s: %w", drag.ID, ErrInvalidTarget)
	}

	// ids from the target up to its root, captured before the delete relinks anything
	trail, err := idTrail(target)
	if err != nil {
		return nil, err
	}

	pruned, err := Rebuild(root, Delete(from, drag))
	if err != nil {
		Relink(root)
		return nil, err
	}

	live := locate(pruned, trail)
	if live == nil {
		// removing drag pointed missions of the held tree at pruned ones
		Relink(root)
		return nil, fmt.Errorf("locate %s after removing %s: %w", target.ID, drag.ID, ErrInvalidTarget)
	}

	if pos == Into {
		return Rebuild(pruned, Append(live, drag))
	}

	parent := live.Parent()
	if parent == nil {
		Relink(root)
		return nil, fmt.Errorf("drop %s %s root: %w", drag.ID, pos, ErrInvalidTarget)
	}
	index := IndexOf(parent, live.ID)
	if pos == After {
		index++
	}
	return Rebuild(pruned, InsertAt(parent, drag, index))
}

// idTrail walks up from m and returns the ids on the way, root last.
func idTrail(m *Mission) ([]string, error) {
	var trail []string
	for pointer := m; ; pointer = pointer.Parent() {
		if pointer == nil {
			return nil, fmt.Errorf("target %s is detached: %w", m.ID, ErrInvalidTarget)
		}
		trail = append(trail, pointer.ID)
		if pointer.IsRoot() {
			return trail, nil
		}
	}
}

// locate follows a trail produced by idTrail downwards from root.
func locate(root *Mission, trail []string) *Mission {
	last := len(trail) - 1
	if last < 0 || root.ID != trail[last] {
		return nil
	}
	node := root
	for i := last - 1; i >= 0; i-- {
		idx := IndexOf(node, trail[i])
		if idx < 0 {
			return nil
		}
		node = node.Children[idx]
	}
	return node
}

// IndexOf returns the position of the child with the given id, or -1.
func IndexOf(parent *Mission, id string) int {
	for i, child := range parent.Children {
		if child.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the mission with the given id below and including m.
func Find(m *Mission, id string) *Mission {
	if m.ID == id {
		return m
	}
	for _, child := range m.Children {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}
