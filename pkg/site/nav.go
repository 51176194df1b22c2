package site

import "github.com/goliatone/go-siteforms/pkg/dom"

const (
	navToggleSelector = ".mobile-menu-toggle"
	navMenuSelector   = ".nav-menu"
	navLinkSelector   = ".nav-menu a"
	navbarSelector    = ".navbar"
	activeClass       = "active"
)

// NavMenu drives the mobile navigation: the toggle opens and closes the menu,
// following a link or clicking outside the navbar closes it.
type NavMenu struct {
	toggle dom.Element
	menu   dom.Element
}

// NewNavMenu resolves the toggle and menu elements. It reports false when
// either is missing, in which case nothing should be bound.
func NewNavMenu(doc dom.Document) (*NavMenu, bool) {
	toggles := doc.Query(navToggleSelector)
	menus := doc.Query(navMenuSelector)
	if len(toggles) == 0 || len(menus) == 0 {
		return nil, false
	}
	return &NavMenu{toggle: toggles[0], menu: menus[0]}, true
}

// Toggle flips the menu and the hamburger icon together.
func (n *NavMenu) Toggle() {
	n.menu.ToggleClass(activeClass)
	n.toggle.ToggleClass(activeClass)
}

// Close hides the menu.
func (n *NavMenu) Close() {
	n.menu.RemoveClass(activeClass)
	n.toggle.RemoveClass(activeClass)
}

// Open reports whether the menu is expanded.
func (n *NavMenu) Open() bool {
	return n.menu.HasClass(activeClass)
}

// Bind registers the toggle, link and outside-click handlers.
func (n *NavMenu) Bind(doc dom.Document, events dom.Events) {
	events.OnElementClick(n.toggle, n.Toggle)
	for _, link := range doc.Query(navLinkSelector) {
		events.OnElementClick(link, n.Close)
	}
	events.OnDocumentClick(func(target dom.Element) {
		if target == nil {
			n.Close()
			return
		}
		if _, inside := target.Closest(navbarSelector); !inside {
			n.Close()
		}
	})
}
