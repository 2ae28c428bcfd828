package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

// maxChildren caps the entries listed per directory.
const maxChildren = 20

// node is an entry in the directory tree.
type node struct {
	name     string
	isDir    bool
	file     *analyzer.FileRecord // nil for directories
	children []*node
	index    map[string]*node
}

func newDir(name string) *node {
	return &node{name: name, isDir: true, index: make(map[string]*node)}
}

// dir returns the child directory called name, creating it if needed.
func (n *node) dir(name string) *node {
	if child, ok := n.index[name]; ok {
		return child
	}
	child := newDir(name)
	n.index[name] = child
	n.children = append(n.children, child)
	return child
}

// buildTree turns the flat file list into a hierarchy rooted at the project.
// Directories are synthesized from file paths.
func buildTree(res *analyzer.Result) *node {
	root := newDir(filepath.Base(res.ProjectPath))
	for _, f := range res.Files {
		rel, err := filepath.Rel(res.ProjectPath, f.Path)
		if err != nil || rel == "." {
			rel = f.Name
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")

		parent := root
		for _, part := range parts[:len(parts)-1] {
			parent = parent.dir(part)
		}
		parent.children = append(parent.children, &node{name: parts[len(parts)-1], file: f})
	}
	sortChildren(root)
	return root
}

// sortChildren orders directories before files, then by case-insensitive name.
func sortChildren(n *node) {
	sort.SliceStable(n.children, func(i, j int) bool {
		a, b := n.children[i], n.children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return strings.ToLower(a.name) < strings.ToLower(b.name)
	})
	for _, child := range n.children {
		if child.isDir {
			sortChildren(child)
		}
	}
}

// Tree renders the analyzed files as a box-drawing tree. Directories deeper
// than maxDepth are collapsed to "..."; maxDepth <= 0 disables the limit.
func Tree(res *analyzer.Result, maxDepth int) string {
	root := buildTree(res)

	var b strings.Builder
	b.WriteString(root.name)
	b.WriteString("/\n")
	printNode(&b, root, "", 0, maxDepth)
	return b.String()
}

func printNode(b *strings.Builder, n *node, prefix string, depth, maxDepth int) {
	if maxDepth > 0 && depth >= maxDepth {
		if len(n.children) > 0 {
			b.WriteString(prefix + "...\n")
		}
		return
	}

	shown := n.children
	if len(shown) > maxChildren {
		shown = shown[:maxChildren]
	}
	for i, child := range shown {
		connector := "├── "
		next := prefix + "│   "
		if i == len(shown)-1 {
			connector = "└── "
			next = prefix + "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		if child.isDir {
			b.WriteString(child.name + "/\n")
			printNode(b, child, next, depth+1, maxDepth)
			continue
		}
		f := child.file
		fmt.Fprintf(b, "%s (%s) - %s, %d lines\n", child.name, f.Category, FormatSize(f.Size), f.Lines)
	}
	if len(n.children) > maxChildren {
		b.WriteString(prefix + "...\n")
	}
}
