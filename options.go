package html2pdf

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	settings   PrintSettings
	idleWindow time.Duration
	transform  *Transform
	requestID  string
}

// WithEngine replaces the default go-rod engine.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.engine = e
	}
}

// WithPrintSettings overrides DefaultPrintSettings.
// Settings are validated when a batch starts.
func WithPrintSettings(s PrintSettings) Option {
	return func(c *Converter) {
		c.cfg.settings = s
	}
}

// WithIdleWindow sets the network quiescence window of the default engine.
// It has no effect when WithEngine is used.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithIdleWindow(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithIdleWindow duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.idleWindow = d
	}
}

// WithLogger sets the logger used for pipeline events.
func WithLogger(l *bolt.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source for {DATE}, {YEAR} and archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTransform sets substitutions applied to every file. A Request that
// carries its own Transform takes precedence.
func WithTransform(t *Transform) Option {
	return func(c *Converter) {
		c.cfg.transform = t
	}
}

// WithRequestID tags pipeline log events with a correlation ID.
func WithRequestID(id string) Option {
	return func(c *Converter) {
		c.cfg.requestID = id
	}
}
