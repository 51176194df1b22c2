package formvalidator

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/dom"
)

// Option configures a FormValidator.
type Option func(*config)

type config struct {
	clock        func() time.Time
	logger       *zap.Logger
	successBlock dom.ScrollBlock
	resetBlock   dom.ScrollBlock
}

func defaultConfig() config {
	return config{
		clock:        time.Now,
		logger:       zap.NewNop(),
		successBlock: dom.ScrollCenter,
		resetBlock:   dom.ScrollStart,
	}
}

// WithClock overrides the source of "today" used by date checks and the date
// min attribute.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithLogger attaches a structured logger. Validation outcomes are logged at
// debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithScrollBlocks overrides where the success panel (after submit) and the
// form (after reset) are scrolled into view.
func WithScrollBlocks(success, reset dom.ScrollBlock) Option {
	return func(cfg *config) {
		if success != "" {
			cfg.successBlock = success
		}
		if reset != "" {
			cfg.resetBlock = reset
		}
	}
}
