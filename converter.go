package html2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/alnah/go-html2pdf/internal/logging"
	"github.com/alnah/go-html2pdf/internal/substitute"
)

// Converter runs the HTML-to-PDF pipeline for batches of files.
// A Converter holds no browser between calls: every batch launches its own
// browser and releases it before returning, so a Converter may be shared.
type Converter struct {
	cfg    converterConfig
	engine Engine
	logger *bolt.Logger
	now    func() time.Time
}

// NewConverter creates a Converter with A4 print settings and the go-rod
// engine. Use options to customize behavior.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			settings:   DefaultPrintSettings(),
			idleWindow: DefaultIdleWindow,
		},
		logger: logging.Nop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.engine == nil {
		e := NewRodEngine()
		e.IdleWindow = c.cfg.idleWindow
		c.engine = e
	}

	return c
}

// Convert renders the batch and packages the result as a single PDF or a
// ZIP archive.
func (c *Converter) Convert(ctx context.Context, req *Request) (*Bundle, error) {
	artifacts, err := c.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return Package(artifacts, c.now())
}

// Render produces one named PDF per file, in input order.
//
// Exactly one browser is launched per call and it is closed on every exit
// path. Files are rendered one after the other, each in a fresh isolated
// session that is closed as soon as its bytes are captured. The first
// failure aborts the batch and no artifacts are returned.
func (c *Converter) Render(ctx context.Context, req *Request) (artifacts []Artifact, err error) {
	if req == nil || len(req.Files) == 0 {
		return nil, ErrNoFiles
	}
	if err := c.cfg.settings.Validate(); err != nil {
		return nil, err
	}

	transform := req.Transform
	if transform == nil {
		transform = c.cfg.transform
	}
	expander, err := newExpander(transform, c.now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		if err != nil {
			artifacts = nil
			c.event(c.logger.Error(), logging.Count(len(req.Files)), logging.Duration(time.Since(start)), logging.ErrorField(err)).
				Msg("batch failed")
			return
		}
		c.event(c.logger.Info(), logging.Count(len(artifacts)), logging.Duration(time.Since(start))).
			Msg("batch converted")
	}()

	browser, err := c.engine.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			c.event(c.logger.Warn(), logging.ErrorField(cerr)).Msg("closing browser")
		}
	}()

	artifacts = make([]Artifact, 0, len(req.Files))
	for i, src := range req.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := c.renderFile(ctx, browser, i, src, expander)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, nil
}

// renderFile runs one file through substitution, rendering, the metadata
// overlay and name finalization.
func (c *Converter) renderFile(ctx context.Context, browser Browser, index int, src Source, expander *substitute.Expander) (Artifact, error) {
	f, err := src.File()
	if err != nil {
		return Artifact{}, fmt.Errorf("file %d: %w", index, err)
	}

	html := f.HTML
	if expander != nil {
		html = expander.Expand(html)
	}

	pdf, err := c.capture(ctx, browser, html)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", f.Name, err)
	}

	pdf, err = ApplyMetadata(pdf, f.PDFMeta)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", f.Name, err)
	}

	name := FinalizeName(f.Name)
	c.event(c.logger.Debug(), logging.File(name, index), logging.Bytes(len(pdf))).Msg("file rendered")

	return Artifact{Name: name, PDF: pdf}, nil
}

// capture renders html in a new session and closes the session before
// returning, whatever the outcome.
func (c *Converter) capture(ctx context.Context, browser Browser, html string) (pdf []byte, err error) {
	session, err := browser.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			c.event(c.logger.Debug(), logging.ErrorField(cerr)).Msg("closing session")
		}
	}()

	pdf, err = session.Render(ctx, html, c.cfg.settings)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrPDFGeneration)
	}
	return pdf, nil
}

// event attaches the request ID and fields to e.
func (c *Converter) event(e *bolt.Event, fields ...logging.Field) *bolt.Event {
	return logging.With(e, append([]logging.Field{logging.RequestID(c.cfg.requestID)}, fields...)...)
}
