package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"icando-go/app/models"
)

type printOptions struct {
	showCompleted bool
	showIDs       bool
}

var (
	doneColor    = color.New(color.FgGreen)
	pendingColor = color.New(color.FgYellow)
	idColor      = color.New(color.Faint)
)

// printTree writes the missions below root as an indented checklist. A
// hidden completed mission hides its subtree too.
func printTree(w io.Writer, root *models.Mission, opts printOptions) {
	for _, child := range root.Children {
		printMission(w, child, 0, opts)
	}
}

func printMission(w io.Writer, m *models.Mission, depth int, opts printOptions) {
	if m.Completed && !opts.showCompleted {
		return
	}

	indent := strings.Repeat("  ", depth)
	if m.Completed {
		doneColor.Fprintf(w, "%s[x] ", indent)
	} else {
		pendingColor.Fprintf(w, "%s[ ] ", indent)
	}
	fmt.Fprint(w, m.Title)
	if opts.showIDs {
		idColor.Fprintf(w, "  %s", m.ID)
	}
	fmt.Fprintln(w)
	if m.Description != "" {
		fmt.Fprintf(w, "%s    %s\n", indent, m.Description)
	}

	for _, child := range m.Children {
		printMission(w, child, depth+1, opts)
	}
}
