/*  This file is part of lvfpga-hdltools.
    lvfpga-hdltools is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    lvfpga-hdltools is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with lvfpga-hdltools.  If not, see <http://www.gnu.org/licenses/>. */

// Package xnode holds a plain XML tree used both to build generated
// documents and to query hand-authored IP descriptors. Queries match tags,
// attribute names and attribute values case-insensitively because descriptor
// capitalization is not reliable; a miss is an empty result, never an error.
package xnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Attr struct {
	Name, Value string
}

type Node struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Node
	depth    int
}

func New(name string) *Node {
	return &Node{Name: name}
}

// AddNode appends a child element and returns it. An optional second
// argument sets the child's text.
func (n *Node) AddNode(name string, text ...string) *Node {
	child := &Node{Name: name, depth: n.depth + 1}
	if len(text) > 0 {
		child.Text = strings.Join(text, "")
	}
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) AddAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{name, value})
	return n
}

func (n *Node) SetText(value string) *Node {
	n.Text = value
	return n
}

// Attr returns the value of the named attribute, matching the attribute name
// case-insensitively. A missing attribute is an empty string.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, tag) {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the named direct child, or def when the
// child is absent or empty.
func (n *Node) ChildText(tag, def string) string {
	if c := n.Child(tag); c != nil && c.Text != "" {
		return c.Text
	}
	return def
}

// FindAll returns every node in the subtree, n included, whose tag matches.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	n.walk(func(e *Node) {
		if strings.EqualFold(e.Name, tag) {
			found = append(found, e)
		}
	})
	return found
}

// FindAttr returns the first node in the subtree with the given tag carrying
// the given attribute value. Tag, attribute name and value all match
// case-insensitively.
func (n *Node) FindAttr(tag, attr, value string) *Node {
	var found *Node
	n.walk(func(e *Node) {
		if found != nil || !strings.EqualFold(e.Name, tag) {
			return
		}
		for _, a := range e.Attrs {
			if strings.EqualFold(a.Name, attr) && strings.EqualFold(a.Value, value) {
				found = e
				return
			}
		}
	})
	return found
}

// FindPath returns every child tagged child under every node tagged parent
// anywhere in the subtree, in document order.
func (n *Node) FindPath(parent, child string) []*Node {
	var found []*Node
	n.walk(func(e *Node) {
		if !strings.EqualFold(e.Name, parent) {
			return
		}
		for _, c := range e.Children {
			if strings.EqualFold(c.Name, child) {
				found = append(found, c)
			}
		}
	})
	return found
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Decode builds a tree from an XML document. Character data is trimmed, as
// indentation whitespace carries no meaning in the descriptors handled here.
func Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{a.Name.Local, a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = node
			} else {
				top := stack[len(stack)-1]
				node.depth = top.depth + 1
				top.Children = append(top.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += strings.TrimSpace(string(t))
			}
		}
	}
	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	node, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse XML file %s: %w", path, err)
	}
	return node, nil
}

func xml_str(in string) string {
	out := strings.ReplaceAll(in, "&", "&amp;")
	out = strings.ReplaceAll(out, "'", "&apos;")
	out = strings.ReplaceAll(out, `"`, "&quot;")
	out = strings.ReplaceAll(out, "<", "&lt;")
	out = strings.ReplaceAll(out, ">", "&gt;")
	return out
}

// Dump renders the subtree as indented XML text.
func (n *Node) Dump() string {
	var s, indent string
	for k := 0; k < n.depth; k++ {
		indent += "  "
	}
	s = fmt.Sprintf("%s<%s", indent, n.Name)
	for _, a := range n.Attrs {
		s += fmt.Sprintf(" %s=\"%v\"", a.Name, xml_str(a.Value))
	}
	if len(n.Text) > 0 {
		s += ">" + xml_str(n.Text) + fmt.Sprintf("</%s>", n.Name)
	} else if len(n.Children) > 0 {
		s += ">"
		for _, c := range n.Children {
			s += "\n" + c.Dump()
		}
		s += fmt.Sprintf("\n%s</%s>", indent, n.Name)
	} else {
		s += "/>"
	}
	return s
}

// WriteFile writes the tree as a standalone XML document. The depth fields
// are renumbered first so a tree assembled from detached nodes still indents
// correctly.
func WriteFile(root *Node, path string) error {
	root.renumber(0)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create output folder for %s: %w", path, err)
	}
	text := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" + root.Dump() + "\n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write XML file %s: %w", path, err)
	}
	return nil
}

func (n *Node) renumber(depth int) {
	n.depth = depth
	for _, c := range n.Children {
		c.renumber(depth + 1)
	}
}
