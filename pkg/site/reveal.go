package site

import (
	"time"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// RevealSelector lists the cards that fade in when scrolled into view.
const RevealSelector = ".feature-card, .showcase-card, .testimonial-card, .value-card, .team-member"

// IntersectionObserver calls fn the first time el enters the viewport.
type IntersectionObserver interface {
	Observe(el dom.Element, fn func())
}

// Scheduler runs fn after d.
type Scheduler func(d time.Duration, fn func())

// BindReveal hides every reveal card and fades it in once observed.
func BindReveal(doc dom.Document, observer IntersectionObserver) int {
	if observer == nil {
		return 0
	}
	cards := doc.Query(RevealSelector)
	for _, el := range cards {
		card := el
		card.SetStyle("opacity", "0")
		card.SetStyle("transform", "translateY(20px)")
		card.SetStyle("transition", "opacity 0.6s ease, transform 0.6s ease")
		observer.Observe(card, func() {
			card.SetStyle("opacity", "1")
			card.SetStyle("transform", "translateY(0)")
		})
	}
	return len(cards)
}

// FadeInBody starts the body transparent and fades it in shortly after load.
func FadeInBody(doc dom.Document, schedule Scheduler) {
	body := doc.Body()
	if body == nil {
		return
	}
	body.SetStyle("opacity", "0")
	run := func() {
		body.SetStyle("transition", "opacity 0.5s ease")
		body.SetStyle("opacity", "1")
	}
	if schedule == nil {
		run()
		return
	}
	schedule(100*time.Millisecond, run)
}
