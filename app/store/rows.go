package store

import (
	"fmt"
	"sort"

	"icando-go/app/models"
)

// row is one mission flattened for table and graph backends. ParentID is
// empty for the root. HasChildren distinguishes an empty child slot from none.
type row struct {
	ID          string
	ParentID    string
	Position    int
	Title       string
	Description string
	Completed   bool
	Expanded    bool
	Kind        string
	HasChildren bool
}

// flatten lists root and its descendants in pre-order.
func flatten(root *models.Mission) []row {
	var rows []row
	var walk func(p *models.Portable, parentID string, pos int)
	walk = func(p *models.Portable, parentID string, pos int) {
		rows = append(rows, row{
			ID:          p.ID,
			ParentID:    parentID,
			Position:    pos,
			Title:       p.Title,
			Description: p.Description,
			Completed:   p.Completed,
			Expanded:    p.Expanded,
			Kind:        p.Kind,
			HasChildren: p.Children != nil,
		})
		for i, child := range p.Children {
			walk(child, p.ID, i)
		}
	}
	walk(models.ToPortable(root), "", 0)
	return rows
}

// assemble rebuilds the tree from rows in any order. It returns nil for no
// rows and ErrMalformed when the rows do not form a single rooted tree.
func assemble(rows []row) (*models.Mission, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	records := make(map[string]*models.Portable, len(rows))
	for _, r := range rows {
		if _, dup := records[r.ID]; dup {
			return nil, fmt.Errorf("duplicate mission row %s: %w", r.ID, models.ErrMalformed)
		}
		p := &models.Portable{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Completed:   r.Completed,
			Expanded:    r.Expanded,
			Kind:        r.Kind,
		}
		if r.HasChildren {
			p.Children = []*models.Portable{}
		}
		records[r.ID] = p
	}

	ordered := make([]row, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	var top *models.Portable
	for _, r := range ordered {
		if r.ParentID == "" {
			if top != nil {
				return nil, fmt.Errorf("second top-level mission %s: %w", r.ID, models.ErrMalformed)
			}
			top = records[r.ID]
			continue
		}
		parent, ok := records[r.ParentID]
		if !ok {
			return nil, fmt.Errorf("mission %s has unknown parent %s: %w", r.ID, r.ParentID, models.ErrMalformed)
		}
		if parent.Children == nil {
			return nil, fmt.Errorf("mission %s has children but no child slot: %w", r.ParentID, models.ErrMalformed)
		}
		parent.Children = append(parent.Children, records[r.ID])
	}
	if top == nil {
		return nil, fmt.Errorf("no top-level mission: %w", models.ErrMalformed)
	}
	if top.Kind != models.KindRoot.String() {
		return nil, fmt.Errorf("top-level mission %s has kind %q: %w", top.ID, top.Kind, models.ErrMalformed)
	}

	root, err := models.FromPortable(top, nil)
	if err != nil {
		return nil, err
	}
	if n := count(root); n != len(rows) {
		return nil, fmt.Errorf("%d of %d missions unreachable from root: %w", len(rows)-n, len(rows), models.ErrMalformed)
	}
	return root, nil
}

func count(m *models.Mission) int {
	n := 1
	for _, child := range m.Children {
		n += count(child)
	}
	return n
}
