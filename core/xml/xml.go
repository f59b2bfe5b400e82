// Package xml is the XML access layer used to read treebank files.
// It wraps xmlquery parsing and XPath selection behind small Document and
// Node types so the rest of the module never touches xmlquery directly.
//
// Security Notes:
//   - xmlquery uses Go's encoding/xml internally, which does not fetch
//     external entities, so XXE payloads in a treebank are inert.
package xml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// Expr is a compiled XPath expression that can be reused across nodes.
type Expr struct {
	src  string
	expr *xpath.Expr
}

// Compile compiles an XPath expression.
func Compile(expr string) (*Expr, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return &Expr{src: expr, expr: e}, nil
}

// MustCompile is Compile for expressions known at build time.
func MustCompile(expr string) *Expr {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the expression source.
func (e *Expr) String() string {
	return e.src
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses XML from r and returns a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	if err := checkTopLevel(root); err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// checkTopLevel rejects documents with more than one root element or with
// text outside the root element.
func checkTopLevel(doc *xmlquery.Node) error {
	elements := 0
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			elements++
			if elements > 1 {
				return fmt.Errorf("parsing XML: junk after document element: <%s>", child.Data)
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if text := strings.TrimSpace(child.Data); text != "" {
				return fmt.Errorf("parsing XML: text outside document element: %q", text)
			}
		}
	}
	return nil
}

// Root returns the root element of the document, or nil for a document
// without elements.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Select returns the elements matched by a compiled expression, in
// document order.
func (d *Document) Select(e *Expr) []*Node {
	return wrap(xmlquery.QuerySelectorAll(d.root, e.expr))
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return d.Select(e), nil
}

// Select returns the nodes matched by e relative to n.
func (n *Node) Select(e *Expr) []*Node {
	if n.node == nil {
		return nil
	}
	return wrap(xmlquery.QuerySelectorAll(n.node, e.expr))
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Attributes returns all attributes of the node keyed by local name.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}
	attrs := make(map[string]string, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(name string) bool {
	if n.node == nil {
		return false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

func wrap(nodes []*xmlquery.Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		out = append(out, &Node{node: n})
	}
	return out
}
