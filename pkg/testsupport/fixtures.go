// Package testsupport holds fixtures shared by the package tests: the
// embedded form definitions, a fixed clock, golden files and a parser that
// loads rendered markup into an in-memory document.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-siteforms/pkg/dom/memdom"
	"github.com/goliatone/go-siteforms/pkg/formspec"
	"github.com/goliatone/go-siteforms/pkg/model"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Clock returns a clock fixed at hour:00 local time on 2026-10-16.
func Clock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.October, 16, hour, 0, 0, 0, time.Local)
	}
}

// Forms returns the embedded form definitions in store order.
func Forms(t *testing.T) []model.FormSpec {
	t.Helper()
	store, err := formspec.Default()
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	return store.Forms()
}

// Form returns one embedded form definition.
func Form(t *testing.T, id string) model.FormSpec {
	t.Helper()
	store, err := formspec.Default()
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	form, err := store.Form(id)
	if err != nil {
		t.Fatalf("form %s: %v", id, err)
	}
	return form
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden writes value as indented JSON to path when UPDATE_GOLDENS
// is set and reports whether it did.
func WriteMaybeGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// LoadGoldenJSON decodes a JSON golden file into out.
func LoadGoldenJSON(t *testing.T, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// ParseHTML loads rendered markup into an in-memory document. Ids, classes,
// inline styles and attributes carry over; spans keep their text and
// inputs and textareas their value.
func ParseHTML(t *testing.T, markup string) *memdom.Document {
	t.Helper()
	root, err := html.Parse(bytes.NewBufferString(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	doc := memdom.New()
	var walk func(n *html.Node, parent *memdom.Node)
	walk = func(n *html.Node, parent *memdom.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "html", "head", "body":
				walk(c, parent)
				continue
			}
			node := doc.Add(parent, c.Data, attr(c, "id"))
			for _, a := range c.Attr {
				switch a.Key {
				case "id":
				case "class":
					node.WithClass(strings.Fields(a.Val)...)
				case "style":
					for _, decl := range strings.Split(a.Val, ";") {
						prop, value, ok := strings.Cut(decl, ":")
						if ok {
							node.SetStyle(strings.TrimSpace(prop), strings.TrimSpace(value))
						}
					}
				case "value":
					node.WithAttr(a.Key, a.Val).WithValue(a.Val)
				default:
					node.WithAttr(a.Key, a.Val)
				}
			}
			switch c.Data {
			case "span":
				node.SetText(strings.TrimSpace(textOf(c)))
			case "textarea":
				node.WithValue(textOf(c))
			}
			walk(c, node)
		}
	}
	walk(root, nil)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
