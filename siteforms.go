// Package siteforms is the entry point for the restaurant site's client-side
// behaviour. It builds one FormValidator per form found in the document and
// mounts the page features beside them. The same calls run against the
// browser (pkg/dom/jsdom) and the in-memory document (pkg/dom/memdom).
package siteforms

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/dom"
	"github.com/goliatone/go-siteforms/pkg/formspec"
	"github.com/goliatone/go-siteforms/pkg/formvalidator"
	"github.com/goliatone/go-siteforms/pkg/site"
)

// Option configures Validators and Mount.
type Option func(*config)

type config struct {
	store     *formspec.Store
	clock     func() time.Time
	logger    *zap.Logger
	observer  site.IntersectionObserver
	scheduler site.Scheduler
}

// WithStore supplies the form definitions. The embedded set is used
// otherwise.
func WithStore(store *formspec.Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithClock sets the time source for date checks.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger attaches a zap logger shared by every validator and feature.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver enables the reveal-on-scroll effect.
func WithObserver(observer site.IntersectionObserver) Option {
	return func(c *config) {
		c.observer = observer
	}
}

// WithScheduler overrides the timer used by the page-load fade.
func WithScheduler(s site.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.store == nil {
		store, err := formspec.Default()
		if err != nil {
			return config{}, fmt.Errorf("siteforms: %w", err)
		}
		cfg.store = store
	}
	return cfg, nil
}

// Validators builds a FormValidator for every known form whose element is
// present in doc. Forms missing from the page are skipped.
func Validators(doc dom.Document, opts ...Option) ([]*formvalidator.FormValidator, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return validators(doc, cfg)
}

func validators(doc dom.Document, cfg config) ([]*formvalidator.FormValidator, error) {
	vopts := []formvalidator.Option{formvalidator.WithLogger(cfg.logger)}
	if cfg.clock != nil {
		vopts = append(vopts, formvalidator.WithClock(cfg.clock))
	}

	var out []*formvalidator.FormValidator
	for _, form := range cfg.store.Forms() {
		v, err := formvalidator.New(form, doc, vopts...)
		if errors.Is(err, formvalidator.ErrMissingForm) {
			cfg.logger.Debug("form not on page", zap.String("form", form.ID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("siteforms: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Mounted reports what Mount bound.
type Mounted struct {
	Validators []*formvalidator.FormValidator
	Features   site.Features
}

// Mount initialises and binds every form validator on the page and then
// the site features.
func Mount(doc dom.Document, viewport dom.Viewport, events dom.Events, opts ...Option) (Mounted, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Mounted{}, err
	}
	vs, err := validators(doc, cfg)
	if err != nil {
		return Mounted{}, err
	}
	for _, v := range vs {
		v.Init()
		v.Bind(events)
	}

	siteOpts := []site.Option{site.WithLogger(cfg.logger), site.WithObserver(cfg.observer)}
	if cfg.scheduler != nil {
		siteOpts = append(siteOpts, site.WithScheduler(cfg.scheduler))
	}
	features := site.Mount(doc, viewport, events, siteOpts...)

	cfg.logger.Info("site mounted", zap.Int("forms", len(vs)))
	return Mounted{Validators: vs, Features: features}, nil
}
