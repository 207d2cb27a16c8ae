package models

// relink points every direct child of parent back at parent.
func relink(parent *Mission) *Mission {
	for _, child := range parent.Children {
		child.setParent(parent)
	}
	return parent
}

// Relink recomputes the back-references of every mission below m.
func Relink(m *Mission) {
	relink(m)
	for _, child := range m.Children {
		Relink(child)
	}
}

// Append returns a copy of parent with mission added as its last child.
func Append(parent, mission *Mission) *Mission {
	target := Clone(parent)
	children := make([]*Mission, 0, len(parent.Children)+1)
	children = append(children, parent.Children...)
	target.Children = append(children, mission)
	return relink(target)
}

// InsertAt returns a copy of parent with mission spliced in at index. The
// index is clamped to the bounds of the children slice.
func InsertAt(parent, mission *Mission, index int) *Mission {
	target := Clone(parent)
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	children := make([]*Mission, 0, len(parent.Children)+1)
	children = append(children, parent.Children[:index]...)
	children = append(children, mission)
	target.Children = append(children, parent.Children[index:]...)
	return relink(target)
}

// Update returns a copy of parent in which the child with mission's id is
// replaced by mission. Nothing is replaced if no child carries that id.
func Update(parent, mission *Mission) *Mission {
	target := Clone(parent)
	if parent.Children != nil {
		children := make([]*Mission, len(parent.Children))
		for i, child := range parent.Children {
			if child.ID == mission.ID {
				children[i] = mission
			} else {
				children[i] = child
			}
		}
		target.Children = children
	}
	if len(mission.Children) > 0 {
		relink(mission)
	}
	return relink(target)
}

// Delete returns a copy of parent without the child carrying mission's id.
func Delete(parent, mission *Mission) *Mission {
	target := Clone(parent)
	if parent.Children != nil {
		children := make([]*Mission, 0, len(parent.Children))
		for _, child := range parent.Children {
			if child.ID != mission.ID {
				children = append(children, child)
			}
		}
		target.Children = children
	}
	return relink(target)
}
