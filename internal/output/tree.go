package output

import (
	"path/filepath"
	"sort"
	"strings"
)

// Tree connectors.
const (
	branchMid  = "├── "
	branchEnd  = "└── "
	indentPipe = "│   "
	indentGap  = "    "

	// descColumn is where descriptions start when the entry is short enough.
	descColumn = 34
)

// treeEntry is a file or directory in a rendered project tree.
type treeEntry struct {
	name     string
	desc     string
	dir      bool
	children map[string]*treeEntry
}

func (e *treeEntry) child(name string, dir bool) *treeEntry {
	if e.children == nil {
		e.children = make(map[string]*treeEntry)
	}
	c, ok := e.children[name]
	if !ok {
		c = &treeEntry{name: name}
		e.children[name] = c
	}
	c.dir = c.dir || dir
	return c
}

// sorted returns the children with directories before files, each by name.
func (e *treeEntry) sorted() []*treeEntry {
	out := make([]*treeEntry, 0, len(e.children))
	for _, c := range e.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dir != out[j].dir {
			return out[i].dir
		}
		return out[i].name < out[j].name
	})
	return out
}

// RenderFileTree draws the created paths below rootName. Keys ending in "/"
// are directories; values are optional descriptions shown dimmed in a
// column.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &treeEntry{name: rootName, dir: true}
	for p, desc := range files {
		slashed := filepath.ToSlash(p)
		parts := strings.Split(strings.Trim(slashed, "/"), "/")
		node := root
		for i, part := range parts {
			last := i == len(parts)-1
			node = node.child(part, !last || strings.HasSuffix(slashed, "/"))
		}
		node.desc = desc
	}

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(rootName + "/"))
	sb.WriteString("\n")
	writeEntries(&sb, root, "")
	return sb.String()
}

func writeEntries(sb *strings.Builder, parent *treeEntry, indent string) {
	children := parent.sorted()
	for i, e := range children {
		connector, next := branchMid, indentPipe
		if i == len(children)-1 {
			connector, next = branchEnd, indentGap
		}

		line := indent + connector + e.name
		if e.dir {
			line += "/"
		}
		if e.desc != "" {
			gap := max(descColumn-len([]rune(line)), 2)
			line += strings.Repeat(" ", gap) + StyleDim.Render(e.desc)
		}
		sb.WriteString(line)
		sb.WriteString("\n")

		writeEntries(sb, e, indent+next)
	}
}
