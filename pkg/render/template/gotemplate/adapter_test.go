package gotemplate_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-siteforms/pkg/render/template/gotemplate"
)

func TestEngine_RenderTemplate(t *testing.T) {
	files := fstest.MapFS{
		"templates/hello.tmpl": {Data: []byte(`Hello {{ name|trim }} from {{ site }}`)},
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(files),
		gotemplate.WithExtension("tmpl"),
		gotemplate.WithGlobalData(map[string]any{"site": "Savory Bites"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var sb strings.Builder
	got, err := engine.RenderTemplate("templates/hello", map[string]any{"name": "  Ada "}, &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Hello Ada from Savory Bites"
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
	if sb.String() != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, sb.String())
	}
}

func TestEngine_RenderStringUsesJSONTags(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	type field struct {
		ID       string `json:"id"`
		Required bool   `json:"required"`
	}
	got, err := engine.RenderString(`{{ field.id }}{% if field.required %}*{% endif %}`, map[string]any{
		"field": field{ID: "email", Required: true},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "email*" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestNew_PreloadReportsBrokenTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/ok.tmpl":     {Data: []byte(`{{ title }}`)},
		"templates/broken.tmpl": {Data: []byte(`{% if title %}unterminated`)},
		"templates/notes.txt":   {Data: []byte(`{% not a template`)},
	}
	if _, err := gotemplate.New(gotemplate.WithFS(files), gotemplate.WithExtension(".tmpl")); err != nil {
		t.Fatalf("lazy engine should not parse up front: %v", err)
	}
	_, err := gotemplate.New(gotemplate.WithFS(files), gotemplate.WithExtension(".tmpl"), gotemplate.WithPreload())
	if err == nil || !strings.Contains(err.Error(), "broken.tmpl") {
		t.Fatalf("expected preload error naming broken.tmpl, got %v", err)
	}
}

func TestEngine_GlobalContextIsShared(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.GlobalContext(struct {
		Site string `json:"site"`
	}{Site: "Savory Bites"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderString(`{{ site }}/{{ page }}`, map[string]any{"page": "menu"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Savory Bites/menu" {
		t.Fatalf("unexpected output %q", got)
	}
}
