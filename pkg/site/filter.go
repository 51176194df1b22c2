package site

import "github.com/goliatone/go-siteforms/pkg/dom"

const (
	filterButtonSelector = ".filter-btn"
	menuItemSelector     = ".menu-item"
	menuCategorySelector = ".menu-category"
	categoryAttr         = "data-category"

	// AllCategories shows every menu category and item.
	AllCategories = "all"

	itemAnimation = "fadeInUp 0.5s ease"
)

// MenuFilter narrows the menu page to one category.
type MenuFilter struct {
	doc        dom.Document
	buttons    []dom.Element
	items      []dom.Element
	categories []dom.Element
}

// NewMenuFilter collects the filter buttons, items and category sections.
// It reports false when the page has no filter buttons.
func NewMenuFilter(doc dom.Document) (*MenuFilter, bool) {
	buttons := doc.Query(filterButtonSelector)
	if len(buttons) == 0 {
		return nil, false
	}
	return &MenuFilter{
		doc:        doc,
		buttons:    buttons,
		items:      doc.Query(menuItemSelector),
		categories: doc.Query(menuCategorySelector),
	}, true
}

// Apply marks active as the only active button and shows the matching
// category section and items. AllCategories shows everything.
func (m *MenuFilter) Apply(category string, active dom.Element) {
	for _, btn := range m.buttons {
		btn.RemoveClass(activeClass)
	}
	if active != nil {
		active.AddClass(activeClass)
	}

	if category == AllCategories {
		for _, cat := range m.categories {
			cat.Show()
		}
		for _, item := range m.items {
			item.Show()
			item.SetStyle("animation", itemAnimation)
		}
		return
	}

	for _, cat := range m.categories {
		cat.Hide()
	}
	if section, ok := dom.Lookup(m.doc, category); ok {
		section.Show()
	}
	for _, item := range m.items {
		itemCategory, _ := item.Attribute(categoryAttr)
		if itemCategory == category {
			item.Show()
			item.SetStyle("animation", itemAnimation)
			continue
		}
		item.Hide()
	}
}

// Bind applies the button's data-category when it is clicked.
func (m *MenuFilter) Bind(events dom.Events) {
	for _, btn := range m.buttons {
		button := btn
		events.OnElementClick(button, func() {
			category, _ := button.Attribute(categoryAttr)
			m.Apply(category, button)
		})
	}
}
