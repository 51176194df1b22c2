package site

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

const (
	fallbackAttr         = "data-fallback"
	fallbackSelector     = "img[data-fallback]"
	placeholderClass     = "image-fallback"
	placeholderText      = "Image unavailable"
	defaultPlaceholderPx = 220
)

// Placeholder describes the box rendered in place of an image that could not
// be loaded from either its source or its fallback.
type Placeholder struct {
	Label  string
	Height string
}

// ImageFallback tracks one image through its load failures: the first error
// swaps in the data-fallback source, the next one gives up and renders a
// placeholder. Once it has given up further errors are ignored.
type ImageFallback struct {
	img         dom.Element
	fallback    string
	triedSource bool
	done        bool
}

// NewImageFallback reads the fallback source from img.
func NewImageFallback(img dom.Element) *ImageFallback {
	fallback, _ := img.Attribute(fallbackAttr)
	return &ImageFallback{img: img, fallback: strings.TrimSpace(fallback)}
}

// Failed handles one load error. It returns the placeholder to render when
// the image has run out of sources.
func (f *ImageFallback) Failed() (Placeholder, bool) {
	if f.done {
		return Placeholder{}, false
	}
	if !f.triedSource && f.fallback != "" {
		f.triedSource = true
		f.img.SetAttribute("data-tried-fallback", "true")
		f.img.SetAttribute("src", f.fallback)
		return Placeholder{}, false
	}

	f.done = true
	alt, _ := f.img.Attribute("alt")
	if strings.TrimSpace(alt) == "" {
		alt = "Image"
	}
	height := strconv.Itoa(defaultPlaceholderPx) + "px"
	if parent, ok := f.img.Parent(); ok && parent.ClientHeight() > 0 {
		height = strconv.FormatFloat(parent.ClientHeight(), 'f', -1, 64) + "px"
	}
	return Placeholder{Label: alt + " unavailable", Height: height}, true
}

// Render hides the image and appends the placeholder next to it.
func (f *ImageFallback) Render(doc dom.Document, ph Placeholder) dom.Element {
	f.img.SetStyle("display", "none")
	parent, ok := f.img.Parent()
	if !ok {
		return nil
	}
	box := doc.Create("div", parent)
	box.SetAttribute("class", placeholderClass)
	box.SetAttribute("role", "img")
	box.SetAttribute("aria-label", ph.Label)
	box.SetText(placeholderText)
	box.SetStyle("width", "100%")
	box.SetStyle("height", ph.Height)
	return box
}

// BindImageFallbacks attaches a fallback tracker to every image that
// declares a data-fallback source.
func BindImageFallbacks(doc dom.Document, events dom.Events) []*ImageFallback {
	var trackers []*ImageFallback
	for _, img := range doc.Query(fallbackSelector) {
		tracker := NewImageFallback(img)
		trackers = append(trackers, tracker)
		events.OnError(img, func() {
			if ph, ok := tracker.Failed(); ok {
				tracker.Render(doc, ph)
			}
		})
	}
	return trackers
}
