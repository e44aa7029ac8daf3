package formatter

import (
	"strings"

	"golang.org/x/net/html"
)

// preformatted elements keep their children as-is; inserting whitespace would
// change what they render.
var preformatted = map[string]bool{
	"pre":      true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

// Indenter re-derives indentation text nodes from element nesting depth.
// It only touches whitespace-only text nodes; elements, attributes and other
// text are left as they are. An Indenter is not safe for concurrent use.
type Indenter struct {
	unit     string
	inserted int
	removed  int
}

// NewIndenter creates an indenter repeating unit once per depth level.
// An empty unit defaults to a tab.
func NewIndenter(unit string) *Indenter {
	if unit == "" {
		unit = "\t"
	}
	return &Indenter{unit: unit}
}

// Inserted returns how many indentation nodes were inserted so far.
func (in *Indenter) Inserted() int {
	return in.inserted
}

// Removed returns how many stale whitespace nodes were dropped so far.
func (in *Indenter) Removed() int {
	return in.removed
}

// Reindent indents the children of n, starting at level, and returns n.
//
// Every element child is preceded by a newline plus level units, and is
// itself reindented at level+1. After the last element child a closing newline
// plus level-1 units is appended. A node without element children is left
// untouched. Reindenting an already indented tree reproduces it exactly.
func (in *Indenter) Reindent(n *html.Node, level int) *html.Node {
	if n == nil || preformatted[n.Data] {
		return n
	}

	// Iterate over the original element children only; the text nodes
	// inserted below are never visited.
	children := elementChildren(n)
	if len(children) == 0 {
		return n
	}

	in.dropIndentation(n)

	before := in.indent(level)
	after := in.indent(level - 1)
	last := lastElementChild(n)

	for _, child := range children {
		n.InsertBefore(in.textNode(before), child)
		in.Reindent(child, level+1)
		if child == last {
			n.AppendChild(in.textNode(after))
		}
	}
	return n
}

// dropIndentation removes whitespace-only text children of n, which are
// either previous indentation or source formatting about to be replaced.
func (in *Indenter) dropIndentation(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			n.RemoveChild(c)
			in.removed++
		}
		c = next
	}
}

func (in *Indenter) indent(level int) string {
	if level <= 0 {
		return "\n"
	}
	return "\n" + strings.Repeat(in.unit, level)
}

func (in *Indenter) textNode(data string) *html.Node {
	in.inserted++
	return &html.Node{Type: html.TextNode, Data: data}
}

// elementChildren returns a snapshot of n's element children.
func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// lastElementChild returns the last element child of n, or nil.
func lastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Reindent indents the tree rooted at n with tab units. See Indenter.Reindent.
func Reindent(n *html.Node, level int) *html.Node {
	return NewIndenter("\t").Reindent(n, level)
}
