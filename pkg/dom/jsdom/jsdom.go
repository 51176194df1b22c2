//go:build js && wasm

// Package jsdom adapts the browser document to the dom capability
// interfaces through syscall/js. Handlers registered through Events hold
// js.Func values for the lifetime of the page; they are never released.
package jsdom

import (
	"strconv"
	"strings"
	"syscall/js"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// Element wraps a live DOM node.
type Element struct {
	v js.Value
}

var _ dom.Element = Element{}

// Wrap adapts a js.Value holding an element.
func Wrap(v js.Value) Element { return Element{v: v} }

// JSValue exposes the underlying js.Value.
func (e Element) JSValue() js.Value { return e.v }

func (e Element) ID() string  { return e.v.Get("id").String() }
func (e Element) Tag() string { return strings.ToLower(e.v.Get("tagName").String()) }

func (e Element) Value() string {
	v := e.v.Get("value")
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func (e Element) SetValue(value string) { e.v.Set("value", value) }

func (e Element) Text() string        { return e.v.Get("textContent").String() }
func (e Element) SetText(text string) { e.v.Set("textContent", text) }

func (e Element) AddClass(name string)    { e.v.Get("classList").Call("add", name) }
func (e Element) RemoveClass(name string) { e.v.Get("classList").Call("remove", name) }

func (e Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e Element) ToggleClass(name string) bool {
	return e.v.Get("classList").Call("toggle", name).Bool()
}

func (e Element) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }

func (e Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e Element) Show() { e.SetStyle("display", "block") }
func (e Element) Hide() { e.SetStyle("display", "none") }

// Visible reports whether the element takes part in layout.
func (e Element) Visible() bool {
	return !e.v.Get("offsetParent").IsNull() || e.Style("position") == "fixed"
}

func (e Element) ScrollIntoView(block dom.ScrollBlock) {
	opts := js.Global().Get("Object").New()
	opts.Set("behavior", "smooth")
	opts.Set("block", string(block))
	e.v.Call("scrollIntoView", opts)
}

func (e Element) Parent() (dom.Element, bool) {
	return wrapOptional(e.v.Get("parentElement"))
}

func (e Element) Closest(selector string) (dom.Element, bool) {
	return wrapOptional(e.v.Call("closest", selector))
}

func (e Element) ClientHeight() float64 { return e.v.Get("clientHeight").Float() }

func wrapOptional(v js.Value) (dom.Element, bool) {
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return Element{v: v}, true
}

// Document wraps window.document and window. It implements dom.Document,
// dom.Viewport and dom.Events.
type Document struct {
	window js.Value
	doc    js.Value
}

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Viewport = (*Document)(nil)
	_ dom.Events   = (*Document)(nil)
)

// Global returns the page's document.
func Global() *Document {
	window := js.Global()
	return &Document{window: window, doc: window.Get("document")}
}

func (d *Document) ElementByID(id string) (dom.Element, bool) {
	return wrapOptional(d.doc.Call("getElementById", id))
}

func (d *Document) Query(selector string) []dom.Element {
	list := d.doc.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Element{v: list.Index(i)})
	}
	return out
}

func (d *Document) Body() dom.Element { return Element{v: d.doc.Get("body")} }

func (d *Document) Create(tag string, parent dom.Element) dom.Element {
	el := d.doc.Call("createElement", tag)
	if p, ok := parent.(Element); ok {
		p.v.Call("appendChild", el)
	}
	return Element{v: el}
}

func (d *Document) ScrollY() float64 { return d.window.Get("scrollY").Float() }

func (d *Document) ScrollTo(y float64) {
	opts := js.Global().Get("Object").New()
	opts.Set("top", y)
	opts.Set("behavior", "smooth")
	d.window.Call("scrollTo", opts)
}

func (d *Document) OnSubmit(formID string, fn func()) {
	d.listenID(formID, "submit", func(event js.Value) {
		event.Call("preventDefault")
		fn()
	})
}

func (d *Document) OnBlur(fieldID string, fn func()) {
	d.listenID(fieldID, "blur", func(js.Value) { fn() })
}

func (d *Document) OnInput(fieldID string, fn func()) {
	d.listenID(fieldID, "input", func(js.Value) { fn() })
}

func (d *Document) OnClick(id string, fn func()) {
	d.listenID(id, "click", func(js.Value) { fn() })
}

func (d *Document) OnElementClick(el dom.Element, fn func()) {
	if e, ok := el.(Element); ok {
		listen(e.v, "click", func(js.Value) { fn() })
	}
}

func (d *Document) OnAnchorClick(el dom.Element, fn func()) {
	if e, ok := el.(Element); ok {
		listen(e.v, "click", func(event js.Value) {
			event.Call("preventDefault")
			fn()
		})
	}
}

func (d *Document) OnDocumentClick(fn func(target dom.Element)) {
	listen(d.doc, "click", func(event js.Value) {
		fn(Element{v: event.Get("target")})
	})
}

func (d *Document) OnError(el dom.Element, fn func()) {
	if e, ok := el.(Element); ok {
		listen(e.v, "error", func(js.Value) { fn() })
	}
}

func (d *Document) OnScroll(fn func(y float64)) {
	listen(d.window, "scroll", func(js.Value) { fn(d.ScrollY()) })
}

func (d *Document) listenID(id, event string, fn func(js.Value)) {
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return
	}
	listen(el, event, fn)
}

func listen(target js.Value, event string, fn func(js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	target.Call("addEventListener", event, cb)
}

// Observer implements site.IntersectionObserver with the browser's
// IntersectionObserver. Each element fires once and is then unobserved.
type Observer struct {
	observer js.Value
	pending  map[string]func()
	seq      int
}

// NewObserver creates an observer with the given threshold and root margin,
// e.g. NewObserver(0.1, "0px 0px -50px 0px").
func NewObserver(threshold float64, rootMargin string) *Observer {
	o := &Observer{pending: make(map[string]func())}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			target := entry.Get("target")
			key := target.Get("dataset").Get("revealKey").String()
			if fn, ok := o.pending[key]; ok {
				delete(o.pending, key)
				fn()
			}
			o.observer.Call("unobserve", target)
		}
		return nil
	})
	opts := js.Global().Get("Object").New()
	opts.Set("threshold", threshold)
	opts.Set("rootMargin", rootMargin)
	o.observer = js.Global().Get("IntersectionObserver").New(cb, opts)
	return o
}

// Observe calls fn the first time el intersects the viewport.
func (o *Observer) Observe(el dom.Element, fn func()) {
	e, ok := el.(Element)
	if !ok {
		return
	}
	o.seq++
	key := "r" + strconv.Itoa(o.seq)
	e.v.Get("dataset").Set("revealKey", key)
	o.pending[key] = fn
	o.observer.Call("observe", e.v)
}
