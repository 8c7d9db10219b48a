package html2pdf

import "context"

// Engine starts the rendering browser. One Browser is launched per batch and
// closed when the batch ends.
type Engine interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser is a running rendering engine shared by all files of one batch.
type Browser interface {
	// NewSession opens an isolated browsing context for a single file.
	NewSession(ctx context.Context) (Session, error)
	Close() error
}

// Session is an isolated context (own cookies, storage and globals) used for
// exactly one document and then discarded.
type Session interface {
	// Render loads htmlContent, waits for network quiescence, sets the
	// document title from the first h1 and prints the page to PDF.
	Render(ctx context.Context, htmlContent string, settings PrintSettings) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Engine  = (*RodEngine)(nil)
	_ Browser = (*rodBrowser)(nil)
	_ Session = (*rodSession)(nil)
)
