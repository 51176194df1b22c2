// Package memdom is an in-memory dom.Document with synchronous event
// dispatch. Elements live in a golang.org/x/net/html tree and selectors are
// matched by cascadia, so Query and Closest accept the CSS a browser would.
// It backs the validator tests and the terminal flows, and records side
// effects (scroll requests, prevented submits and clicks) for inspection.
package memdom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// Node is an element in the in-memory tree. Live state a browser keeps off
// the markup (value, layout height, scroll requests) sits beside the
// underlying html.Node.
type Node struct {
	doc          *Document
	h            *html.Node
	value        string
	style        map[string]string
	clientHeight float64
	scrolls      []dom.ScrollBlock
}

var _ dom.Element = (*Node)(nil)

// HTML exposes the underlying html.Node.
func (n *Node) HTML() *html.Node { return n.h }

func (n *Node) ID() string {
	id, _ := n.Attribute("id")
	return id
}

func (n *Node) Tag() string { return n.h.Data }

func (n *Node) Value() string         { return n.value }
func (n *Node) SetValue(value string) { n.value = value }

// Text joins the node's own text children.
func (n *Node) Text() string {
	var sb strings.Builder
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// SetText replaces the node's text children with text. Element children
// stay in place.
func (n *Node) SetText(text string) {
	for c := n.h.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			n.h.RemoveChild(c)
		}
		c = next
	}
	if text == "" {
		return
	}
	n.h.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, n.h.FirstChild)
}

func (n *Node) AddClass(name string) {
	if name == "" || n.HasClass(name) {
		return
	}
	n.setClasses(append(n.Classes(), name))
}

func (n *Node) RemoveClass(name string) {
	classes := n.Classes()
	out := classes[:0]
	for _, class := range classes {
		if class != name {
			out = append(out, class)
		}
	}
	n.setClasses(out)
}

func (n *Node) HasClass(name string) bool {
	for _, class := range n.Classes() {
		if class == name {
			return true
		}
	}
	return false
}

// ToggleClass flips name and reports whether it is now present.
func (n *Node) ToggleClass(name string) bool {
	if n.HasClass(name) {
		n.RemoveClass(name)
		return false
	}
	n.AddClass(name)
	return true
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	class, _ := n.Attribute("class")
	return strings.Fields(class)
}

func (n *Node) setClasses(classes []string) {
	if len(classes) == 0 {
		n.removeAttr("class")
		return
	}
	n.setAttr("class", strings.Join(classes, " "))
}

func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute writes an attribute. Setting id reindexes the node and
// setting style replaces its inline declarations.
func (n *Node) SetAttribute(name, value string) {
	switch name {
	case "id":
		n.doc.reindex(n, value)
	case "style":
		n.style = parseStyle(value)
		n.syncStyle()
	default:
		n.setAttr(name, value)
	}
}

func (n *Node) setAttr(name, value string) {
	for i, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			n.h.Attr[i].Val = value
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: name, Val: value})
}

func (n *Node) removeAttr(name string) {
	out := n.h.Attr[:0]
	for _, a := range n.h.Attr {
		if a.Namespace != "" || a.Key != name {
			out = append(out, a)
		}
	}
	n.h.Attr = out
}

func (n *Node) Style(property string) string {
	return n.style[property]
}

func (n *Node) SetStyle(property, value string) {
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[property] = value
	n.syncStyle()
}

// syncStyle mirrors the declarations into the style attribute, sorted by
// property, so attribute selectors see them.
func (n *Node) syncStyle() {
	if len(n.style) == 0 {
		n.removeAttr("style")
		return
	}
	props := make([]string, 0, len(n.style))
	for prop := range n.style {
		props = append(props, prop)
	}
	sort.Strings(props)
	decls := make([]string, 0, len(props))
	for _, prop := range props {
		decls = append(decls, prop+": "+n.style[prop])
	}
	n.setAttr("style", strings.Join(decls, "; "))
}

func parseStyle(raw string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if prop = strings.TrimSpace(prop); ok && prop != "" {
			out[prop] = strings.TrimSpace(value)
		}
	}
	return out
}

func (n *Node) Show() { n.SetStyle("display", "block") }
func (n *Node) Hide() { n.SetStyle("display", "none") }

// Visible reports whether neither the node nor any ancestor is hidden.
func (n *Node) Visible() bool {
	for cur := n; cur != nil; cur = cur.parent() {
		if cur.style["display"] == "none" {
			return false
		}
	}
	return true
}

func (n *Node) ScrollIntoView(block dom.ScrollBlock) {
	n.scrolls = append(n.scrolls, block)
}

// ScrollRequests lists every ScrollIntoView call made on the node.
func (n *Node) ScrollRequests() []dom.ScrollBlock {
	return append([]dom.ScrollBlock(nil), n.scrolls...)
}

func (n *Node) parent() *Node {
	if n.h.Parent == nil {
		return nil
	}
	return n.doc.nodes[n.h.Parent]
}

// Parent returns the enclosing element. The body has none.
func (n *Node) Parent() (dom.Element, bool) {
	if p := n.parent(); p != nil {
		return p, true
	}
	return nil, false
}

// Closest returns the nearest inclusive ancestor matching selector. It
// panics on an invalid selector, as Element.closest throws.
func (n *Node) Closest(selector string) (dom.Element, bool) {
	sel := n.doc.compile(selector)
	for cur := n; cur != nil; cur = cur.parent() {
		if sel.Match(cur.h) {
			return cur, true
		}
	}
	return nil, false
}

func (n *Node) ClientHeight() float64 { return n.clientHeight }

// SetClientHeight fixes the layout height reported by ClientHeight.
func (n *Node) SetClientHeight(h float64) *Node {
	n.clientHeight = h
	return n
}

// Children returns the node's element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		if child, ok := n.doc.nodes[c]; ok {
			out = append(out, child)
		}
	}
	return out
}

// WithClass adds classes and returns the node for chaining.
func (n *Node) WithClass(names ...string) *Node {
	for _, name := range names {
		n.AddClass(name)
	}
	return n
}

// WithAttr sets an attribute and returns the node for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	n.SetAttribute(name, value)
	return n
}

// WithValue sets the value and returns the node for chaining.
func (n *Node) WithValue(value string) *Node {
	n.value = value
	return n
}

// Add appends a child element.
func (n *Node) Add(tag, id string) *Node {
	return n.doc.Add(n, tag, id)
}
