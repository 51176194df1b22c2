// Package dom declares the capability interfaces the validator and the page
// features are written against. Implementations adapt a concrete document:
// memdom keeps an in-memory tree for tests and the CLI, jsdom wraps the
// browser document under GOOS=js GOARCH=wasm.
package dom

// ScrollBlock mirrors the block option of Element.scrollIntoView.
type ScrollBlock string

const (
	ScrollStart  ScrollBlock = "start"
	ScrollCenter ScrollBlock = "center"
)

// Element is the subset of a DOM element the site touches.
type Element interface {
	ID() string
	Tag() string
	Value() string
	SetValue(value string)
	Text() string
	SetText(text string)
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
	ToggleClass(name string) bool
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	Style(property string) string
	SetStyle(property, value string)
	Show()
	Hide()
	Visible() bool
	ScrollIntoView(block ScrollBlock)
	Parent() (Element, bool)
	Closest(selector string) (Element, bool)
	ClientHeight() float64
}

// Document resolves and creates elements. Query takes a CSS selector group
// and returns matches in document order.
type Document interface {
	ElementByID(id string) (Element, bool)
	Query(selector string) []Element
	Body() Element
	Create(tag string, parent Element) Element
}

// Viewport exposes window scrolling.
type Viewport interface {
	ScrollY() float64
	ScrollTo(y float64)
}

// Events registers handlers for the discrete events the site reacts to. A
// toolkit binding implements it; handlers run synchronously on dispatch.
// OnSubmit and OnAnchorClick handlers run with the default action prevented.
type Events interface {
	OnSubmit(formID string, fn func())
	OnBlur(fieldID string, fn func())
	OnInput(fieldID string, fn func())
	OnClick(id string, fn func())
	OnElementClick(el Element, fn func())
	OnAnchorClick(el Element, fn func())
	OnDocumentClick(fn func(target Element))
	OnError(el Element, fn func())
	OnScroll(fn func(y float64))
}

// Lookup resolves id against doc, treating a nil document as empty.
func Lookup(doc Document, id string) (Element, bool) {
	if doc == nil || id == "" {
		return nil, false
	}
	el, ok := doc.ElementByID(id)
	if !ok || el == nil {
		return nil, false
	}
	return el, true
}
