package memdom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// Document is an in-memory html tree whose elements are added under a body.
// It implements dom.Document, dom.Viewport and dom.Events.
type Document struct {
	root      *html.Node
	body      *Node
	nodes     map[*html.Node]*Node
	byID      map[string]*Node
	selectors map[string]cascadia.Matcher

	scrollY         float64
	scrollTos       []float64
	prevented       int
	preventedClicks int

	submit      map[string][]func()
	blur        map[string][]func()
	input       map[string][]func()
	click       map[string][]func()
	elClick     map[*Node][]func()
	anchorClick map[*Node][]func()
	onError     map[*Node][]func()
	docClick    []func(dom.Element)
	scroll      []func(float64)
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Viewport = (*Document)(nil)
	_ dom.Events   = (*Document)(nil)
)

// New returns a document holding an empty body.
func New() *Document {
	d := &Document{
		root:        &html.Node{Type: html.DocumentNode},
		nodes:       make(map[*html.Node]*Node),
		byID:        make(map[string]*Node),
		selectors:   make(map[string]cascadia.Matcher),
		submit:      make(map[string][]func()),
		blur:        make(map[string][]func()),
		input:       make(map[string][]func()),
		click:       make(map[string][]func()),
		elClick:     make(map[*Node][]func()),
		anchorClick: make(map[*Node][]func()),
		onError:     make(map[*Node][]func()),
	}
	root := element("html")
	d.root.AppendChild(root)
	body := element("body")
	root.AppendChild(body)
	d.body = d.wrap(body)
	return d
}

func element(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func (d *Document) wrap(h *html.Node) *Node {
	n := &Node{doc: d, h: h}
	d.nodes[h] = n
	return n
}

// Add creates an element under parent (the body when parent is nil) and
// indexes it by id.
func (d *Document) Add(parent *Node, tag, id string) *Node {
	if parent == nil {
		parent = d.body
	}
	h := element(tag)
	parent.h.AppendChild(h)
	n := d.wrap(h)
	if id != "" {
		d.reindex(n, id)
	}
	return n
}

// Node returns the concrete node for id, or nil.
func (d *Document) Node(id string) *Node {
	return d.byID[id]
}

// Root exposes the html document node.
func (d *Document) Root() *html.Node { return d.root }

// Remove detaches the element with id, and everything under it, from the
// tree.
func (d *Document) Remove(id string) {
	n, ok := d.byID[id]
	if !ok {
		return
	}
	if n.h.Parent != nil {
		n.h.Parent.RemoveChild(n.h)
	}
	d.forget(n.h)
}

func (d *Document) forget(h *html.Node) {
	if n, ok := d.nodes[h]; ok {
		if id := n.ID(); id != "" && d.byID[id] == n {
			delete(d.byID, id)
		}
		delete(d.nodes, h)
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func (d *Document) reindex(n *Node, id string) {
	if old := n.ID(); old != "" && d.byID[old] == n {
		delete(d.byID, old)
	}
	if id == "" {
		n.removeAttr("id")
		return
	}
	n.setAttr("id", id)
	d.byID[id] = n
}

// compile caches parsed selectors. It panics on an invalid selector, as
// querySelectorAll throws.
func (d *Document) compile(selector string) cascadia.Matcher {
	if sel, ok := d.selectors[selector]; ok {
		return sel
	}
	sel := cascadia.MustCompile(selector)
	d.selectors[selector] = sel
	return sel
}

func (d *Document) ElementByID(id string) (dom.Element, bool) {
	n, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Query returns the body's descendants matching selector in document order.
func (d *Document) Query(selector string) []dom.Element {
	var out []dom.Element
	for _, h := range cascadia.QueryAll(d.body.h, d.compile(selector)) {
		if n, ok := d.nodes[h]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (d *Document) Body() dom.Element { return d.body }

func (d *Document) Create(tag string, parent dom.Element) dom.Element {
	p, _ := parent.(*Node)
	return d.Add(p, tag, "")
}

func (d *Document) ScrollY() float64 { return d.scrollY }

func (d *Document) ScrollTo(y float64) {
	d.scrollY = y
	d.scrollTos = append(d.scrollTos, y)
}

// ScrollToCalls lists every ScrollTo target in call order.
func (d *Document) ScrollToCalls() []float64 {
	return append([]float64(nil), d.scrollTos...)
}

func (d *Document) OnSubmit(formID string, fn func()) {
	d.submit[formID] = append(d.submit[formID], fn)
}

func (d *Document) OnBlur(fieldID string, fn func()) {
	d.blur[fieldID] = append(d.blur[fieldID], fn)
}

func (d *Document) OnInput(fieldID string, fn func()) {
	d.input[fieldID] = append(d.input[fieldID], fn)
}

func (d *Document) OnClick(id string, fn func()) {
	d.click[id] = append(d.click[id], fn)
}

func (d *Document) OnElementClick(el dom.Element, fn func()) {
	if n, ok := el.(*Node); ok {
		d.elClick[n] = append(d.elClick[n], fn)
	}
}

func (d *Document) OnAnchorClick(el dom.Element, fn func()) {
	if n, ok := el.(*Node); ok {
		d.anchorClick[n] = append(d.anchorClick[n], fn)
	}
}

func (d *Document) OnDocumentClick(fn func(target dom.Element)) {
	d.docClick = append(d.docClick, fn)
}

func (d *Document) OnError(el dom.Element, fn func()) {
	if n, ok := el.(*Node); ok {
		d.onError[n] = append(d.onError[n], fn)
	}
}

func (d *Document) OnScroll(fn func(y float64)) {
	d.scroll = append(d.scroll, fn)
}

// Submit dispatches a submit event for formID with the default action
// prevented.
func (d *Document) Submit(formID string) {
	d.prevented++
	for _, fn := range d.submit[formID] {
		fn()
	}
}

// PreventedSubmits counts dispatched submits whose navigation was prevented.
func (d *Document) PreventedSubmits() int { return d.prevented }

// PreventedClicks counts dispatched clicks whose default action an anchor
// handler prevented.
func (d *Document) PreventedClicks() int { return d.preventedClicks }

// Blur dispatches a blur event for fieldID.
func (d *Document) Blur(fieldID string) {
	for _, fn := range d.blur[fieldID] {
		fn()
	}
}

// Input dispatches an input event for fieldID.
func (d *Document) Input(fieldID string) {
	for _, fn := range d.input[fieldID] {
		fn()
	}
}

// Type replaces the value of fieldID and dispatches an input event.
func (d *Document) Type(fieldID, value string) {
	if n, ok := d.byID[fieldID]; ok {
		n.value = value
	}
	d.Input(fieldID)
}

// Click dispatches a click on the element with id, bubbling to document
// handlers.
func (d *Document) Click(id string) {
	n, ok := d.byID[id]
	if !ok {
		return
	}
	d.ClickNode(n)
}

// ClickNode dispatches a click on n, bubbling to document handlers.
func (d *Document) ClickNode(n *Node) {
	if n == nil {
		return
	}
	if id := n.ID(); id != "" {
		for _, fn := range d.click[id] {
			fn()
		}
	}
	for _, fn := range d.elClick[n] {
		fn()
	}
	if handlers := d.anchorClick[n]; len(handlers) > 0 {
		d.preventedClicks++
		for _, fn := range handlers {
			fn()
		}
	}
	for _, fn := range d.docClick {
		fn(n)
	}
}

// Fail dispatches an error event on n, as when an image fails to load.
func (d *Document) Fail(n *Node) {
	handlers := append([]func(){}, d.onError[n]...)
	for _, fn := range handlers {
		fn()
	}
}

// Scroll moves the viewport and dispatches scroll handlers.
func (d *Document) Scroll(y float64) {
	d.scrollY = y
	for _, fn := range d.scroll {
		fn(y)
	}
}
