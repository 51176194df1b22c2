package siteforms_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteforms "github.com/goliatone/go-siteforms"
	"github.com/goliatone/go-siteforms/pkg/dom/memdom"
	"github.com/goliatone/go-siteforms/pkg/formspec"
	"github.com/goliatone/go-siteforms/pkg/model"
)

func clock() time.Time {
	return time.Date(2026, time.October, 16, 18, 0, 0, 0, time.Local)
}

func immediate(_ time.Duration, fn func()) { fn() }

// contactPage lays out only the contact form plus a navbar.
func contactPage(t *testing.T) *memdom.Document {
	t.Helper()
	store, err := formspec.Default()
	require.NoError(t, err)
	form, err := store.Form("contactForm")
	require.NoError(t, err)

	doc := memdom.New()
	nav := doc.Add(nil, "nav", "").WithClass("navbar")
	nav.Add("button", "toggle").WithClass("mobile-menu-toggle")
	nav.Add("ul", "").WithClass("nav-menu")

	formNode := doc.Add(nil, "form", form.ID)
	for _, field := range form.Fields {
		group := formNode.Add("div", "").WithClass("form-group")
		group.Add("input", field.ID)
		group.Add("span", field.ErrorID()).WithClass("error-message")
	}
	doc.Add(nil, "div", form.SuccessID).Add("button", form.ResetID)
	return doc
}

func TestValidators_SkipsFormsNotOnPage(t *testing.T) {
	doc := contactPage(t)
	vs, err := siteforms.Validators(doc, siteforms.WithClock(clock))
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "contactForm", vs[0].Form().ID)
}

func TestMount_BindsFormsAndFeatures(t *testing.T) {
	doc := contactPage(t)
	mounted, err := siteforms.Mount(doc, doc, doc,
		siteforms.WithClock(clock),
		siteforms.WithScheduler(immediate),
	)
	require.NoError(t, err)
	require.Len(t, mounted.Validators, 1)
	require.NotNil(t, mounted.Features.Nav)
	assert.NotNil(t, mounted.Features.ScrollTop)
	assert.False(t, doc.Node("contactSuccessMessage").Visible(), "init hides the success panel")

	doc.Submit("contactForm")
	assert.Equal(t, "Name is required", doc.Node("contactNameError").Text())
	assert.True(t, doc.Node("contactName").HasClass(model.ErrorClass))

	doc.Type("contactName", "Ada")
	assert.False(t, doc.Node("contactName").HasClass(model.ErrorClass))

	doc.Node("contactEmail").SetValue("ada@example.com")
	doc.Node("subject").SetValue("general")
	doc.Node("message").SetValue("A table by the window, please")
	doc.Submit("contactForm")
	assert.Equal(t, model.PanelSuccess, mounted.Validators[0].State())

	doc.Click("sendAnother")
	assert.Equal(t, model.PanelInput, mounted.Validators[0].State())
	assert.Empty(t, doc.Node("contactName").Value())

	doc.Click("toggle")
	assert.True(t, mounted.Features.Nav.Open())
}

func TestGenerateHTML(t *testing.T) {
	out, err := siteforms.GenerateHTML(context.Background(), siteforms.RenderOptions{MinDate: "2026-10-16"}, []string{"reservationForm"})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<form id="reservationForm"`)
	assert.Contains(t, html, `min="2026-10-16"`)
	assert.False(t, strings.Contains(html, `id="contactForm"`), "only the requested form is rendered")
}

func TestEmbeddedAssets(t *testing.T) {
	_, err := siteforms.EmbeddedTemplates().Open("templates/forms.tmpl")
	assert.NoError(t, err)
	store, err := formspec.LoadFS(siteforms.EmbeddedForms())
	require.NoError(t, err)
	assert.Equal(t, []string{"contactForm", "reservationForm"}, store.IDs())
}
