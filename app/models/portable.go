package models

import "fmt"

// Portable is the parent-free form of a mission used for storage and
// transport. A nil Children slice encodes as null and an empty one as [].
type Portable struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Completed   bool        `json:"completed"`
	Expanded    bool        `json:"expanded"`
	Kind        string      `json:"kind"`
	Children    []*Portable `json:"children"`
}

// ToPortable converts m and its descendants to portable records.
func ToPortable(m *Mission) *Portable {
	p := &Portable{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		Expanded:    m.Expanded,
		Kind:        m.Kind.String(),
	}
	if m.Children != nil {
		p.Children = make([]*Portable, len(m.Children))
		for i, child := range m.Children {
			p.Children[i] = ToPortable(child)
		}
	}
	return p
}

// FromPortable materializes a record as a mission attached to parent, which may
// be nil. The whole load fails on an unknown kind, an empty or duplicate id, or
// a root record below the top; no partial tree is returned.
func FromPortable(p *Portable, parent *Mission) (*Mission, error) {
	return fromPortable(p, parent, map[string]struct{}{})
}

func fromPortable(p *Portable, parent *Mission, seen map[string]struct{}) (*Mission, error) {
	if p == nil {
		return nil, fmt.Errorf("null mission record: %w", ErrMalformed)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("mission %q without id: %w", p.Title, ErrMalformed)
	}
	if _, dup := seen[p.ID]; dup {
		return nil, fmt.Errorf("duplicate mission id %s: %w", p.ID, ErrMalformed)
	}
	seen[p.ID] = struct{}{}

	kind, ok := ParseKind(p.Kind)
	if !ok {
		return nil, fmt.Errorf("mission %s has unknown kind %q: %w", p.ID, p.Kind, ErrMalformed)
	}
	if kind == KindRoot && parent != nil {
		return nil, fmt.Errorf("root mission %s nested below %s: %w", p.ID, parent.ID, ErrMalformed)
	}

	m := &Mission{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		Expanded:    p.Expanded,
		Kind:        kind,
	}
	if p.Children != nil {
		m.Children = make([]*Mission, len(p.Children))
		for i, child := range p.Children {
			c, err := fromPortable(child, m, seen)
			if err != nil {
				return nil, err
			}
			m.Children[i] = c
		}
	}
	m.setParent(parent)
	return m, nil
}
