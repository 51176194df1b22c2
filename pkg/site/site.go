// Package site binds the page-level behaviours that sit beside the forms:
// the mobile navigation, header shadow, scroll-to-top button, in-page anchor
// scrolling, image fallbacks, card reveal and the menu category filter. Each
// feature is independent and is skipped when its elements are absent.
package site

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// Option configures Mount.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	observer  IntersectionObserver
	scheduler Scheduler
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithObserver enables the reveal-on-scroll effect.
func WithObserver(observer IntersectionObserver) Option {
	return func(cfg *config) {
		cfg.observer = observer
	}
}

// WithScheduler overrides the timer used by the page-load fade.
func WithScheduler(s Scheduler) Option {
	return func(cfg *config) {
		cfg.scheduler = s
	}
}

// Features reports what Mount bound, mostly for logging and tests.
type Features struct {
	Nav       *NavMenu
	Filter    *MenuFilter
	Images    []*ImageFallback
	ScrollTop dom.Element
	Revealed  int
}

// Mount binds every page feature whose elements exist in doc.
func Mount(doc dom.Document, viewport dom.Viewport, events dom.Events, opts ...Option) Features {
	cfg := config{
		logger: zap.NewNop(),
		scheduler: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var features Features
	if nav, ok := NewNavMenu(doc); ok {
		nav.Bind(doc, events)
		features.Nav = nav
	}
	BindHeaderShadow(doc, events)
	BindAnchors(doc, events)
	features.Images = BindImageFallbacks(doc, events)
	features.Revealed = BindReveal(doc, cfg.observer)
	if filter, ok := NewMenuFilter(doc); ok {
		filter.Bind(events)
		features.Filter = filter
	}
	if viewport != nil {
		features.ScrollTop = ScrollTopButton(doc, viewport, events)
	}
	FadeInBody(doc, cfg.scheduler)

	cfg.logger.Debug("site features mounted",
		zap.Bool("nav", features.Nav != nil),
		zap.Bool("filter", features.Filter != nil),
		zap.Int("images", len(features.Images)),
		zap.Int("revealed", features.Revealed),
	)
	return features
}
