package models

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Kind tags the variant of a mission node.
type Kind int

const (
	KindNormal Kind = iota
	KindRoot
	KindLeaf
)

// RootTitle is the fixed title of the root mission.
const RootTitle = "root node"

// String returns the portable tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLeaf:
		return "leaf"
	default:
		return "normal"
	}
}

// ParseKind maps a portable tag back to its kind.
func ParseKind(tag string) (Kind, bool) {
	switch tag {
	case "root":
		return KindRoot, true
	case "normal":
		return KindNormal, true
	case "leaf":
		return KindLeaf, true
	}
	return KindNormal, false
}

// Mission is a task node. Missions are never changed once they are part of a
// tree; every edit produces new missions along the edited path.
//
// A nil Children slice means the mission has no child slot at all, which is
// distinct from an empty one.
type Mission struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Expanded    bool
	Kind        Kind
	Children    []*Mission

	// parent is a back-reference recomputed on every structural change.
	parent atomic.Pointer[Mission]
}

// NewMission creates a normal mission with a fresh id.
func NewMission(title string) *Mission {
	return &Mission{
		ID:    uuid.New().String(),
		Title: title,
		Kind:  KindNormal,
	}
}

// NewRootMission creates the tree entry point.
func NewRootMission() *Mission {
	return &Mission{
		ID:       uuid.New().String(),
		Title:    RootTitle,
		Kind:     KindRoot,
		Children: []*Mission{},
	}
}

// Parent returns the mission currently holding m as a child, or nil.
func (m *Mission) Parent() *Mission {
	return m.parent.Load()
}

func (m *Mission) setParent(p *Mission) {
	m.parent.Store(p)
}

// IsRoot reports whether m is the tree entry point.
func (m *Mission) IsRoot() bool {
	return m.Kind == KindRoot
}

// Clone returns a shallow copy of m. The children slice is shared with m and
// must be replaced, not modified, before the copy is published.
func Clone(m *Mission) *Mission {
	c := &Mission{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		Expanded:    m.Expanded,
		Kind:        m.Kind,
		Children:    m.Children,
	}
	// the root always owns a child slot
	if m.Kind == KindRoot && c.Children == nil {
		c.Children = []*Mission{}
	}
	c.setParent(m.Parent())
	return c
}
