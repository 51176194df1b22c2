package site

import (
	"strings"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

const (
	// HeaderShadowThreshold is the scroll offset past which the header gets
	// its stronger shadow.
	HeaderShadowThreshold = 100
	// ScrollTopThreshold is the scroll offset past which the scroll-to-top
	// button is shown.
	ScrollTopThreshold = 500

	headerShadowRaised  = "0 4px 12px rgba(0,0,0,0.15)"
	headerShadowResting = "0 2px 4px rgba(0,0,0,0.1)"

	headerSelector = ".header"
	scrollTopLabel = "Scroll to top"
)

// HeaderShadow returns the box-shadow for the header at scroll offset y.
func HeaderShadow(y float64) string {
	if y > HeaderShadowThreshold {
		return headerShadowRaised
	}
	return headerShadowResting
}

// ScrollTopVisible reports whether the scroll-to-top button shows at y.
func ScrollTopVisible(y float64) bool {
	return y > ScrollTopThreshold
}

// BindHeaderShadow keeps the header shadow in step with the scroll offset.
func BindHeaderShadow(doc dom.Document, events dom.Events) {
	events.OnScroll(func(y float64) {
		headers := doc.Query(headerSelector)
		if len(headers) == 0 {
			return
		}
		headers[0].SetStyle("box-shadow", HeaderShadow(y))
	})
}

var scrollTopStyle = map[string]string{
	"position":         "fixed",
	"bottom":           "30px",
	"right":            "30px",
	"width":            "50px",
	"height":           "50px",
	"border-radius":    "50%",
	"background-color": "var(--primary-color)",
	"color":            "white",
	"border":           "none",
	"font-size":        "1.5rem",
	"cursor":           "pointer",
	"transition":       "opacity 0.3s ease, visibility 0.3s ease",
	"z-index":          "999",
	"box-shadow":       "0 4px 12px rgba(0,0,0,0.2)",
}

// ScrollTopButton appends a fixed button to the body that scrolls the window
// back to the top. It stays hidden until the page is scrolled past
// ScrollTopThreshold.
func ScrollTopButton(doc dom.Document, viewport dom.Viewport, events dom.Events) dom.Element {
	button := doc.Create("button", doc.Body())
	button.SetText("↑")
	button.SetAttribute("aria-label", scrollTopLabel)
	for property, value := range scrollTopStyle {
		button.SetStyle(property, value)
	}
	applyScrollTop(button, viewport.ScrollY())

	events.OnElementClick(button, func() {
		viewport.ScrollTo(0)
	})
	events.OnScroll(func(y float64) {
		applyScrollTop(button, y)
	})
	return button
}

func applyScrollTop(button dom.Element, y float64) {
	if ScrollTopVisible(y) {
		button.SetStyle("opacity", "1")
		button.SetStyle("visibility", "visible")
		return
	}
	button.SetStyle("opacity", "0")
	button.SetStyle("visibility", "hidden")
}

// AnchorTarget extracts the element id an in-page link points at. Bare "#"
// and empty hrefs are not scroll targets.
func AnchorTarget(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "#") || href == "#" {
		return "", false
	}
	return strings.TrimPrefix(href, "#"), true
}

// BindAnchors smooth-scrolls to the target of every in-page link in place of
// the browser's hash jump.
func BindAnchors(doc dom.Document, events dom.Events) {
	for _, anchor := range doc.Query(`a[href^="#"]`) {
		href, _ := anchor.Attribute("href")
		id, ok := AnchorTarget(href)
		if !ok {
			continue
		}
		events.OnAnchorClick(anchor, func() {
			if target, ok := dom.Lookup(doc, id); ok {
				target.ScrollIntoView(dom.ScrollStart)
			}
		})
	}
}
