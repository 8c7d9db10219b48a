package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/process"
)

// DefaultIdleWindow is how long the page must have no request in flight
// before it is considered quiescent.
const DefaultIdleWindow = 500 * time.Millisecond

// UntitledDocument is the title used when a document has no usable h1.
const UntitledDocument = "Untitled Document"

// Scripts evaluated in the page. textContent matches what the user sees in
// the source, including text of hidden descendants.
const (
	firstHeadingScript = `() => {
	const h1 = document.querySelector("h1");
	return h1 && h1.textContent ? h1.textContent : "";
}`

	setTitleScript = `(title) => {
	let el = document.querySelector("title");
	if (!el) {
		el = document.createElement("title");
		document.head.appendChild(el);
	}
	el.textContent = title;
}`
)

// RodEngine launches headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type RodEngine struct {
	// BrowserBin is the Chrome binary. Empty falls back to ROD_BROWSER_BIN,
	// then to rod's lookup and managed download.
	BrowserBin string

	// NoSandbox disables the Chrome sandbox. It is also forced by
	// ROD_NO_SANDBOX=1, CI=true, or a custom binary (containers).
	NoSandbox bool

	// IdleWindow is the network quiescence window. Zero uses DefaultIdleWindow.
	IdleWindow time.Duration
}

// NewRodEngine creates a RodEngine with default settings.
func NewRodEngine() *RodEngine {
	return &RodEngine{IdleWindow: DefaultIdleWindow}
}

// newLauncher configures the Chrome launcher from fields and environment.
func (e *RodEngine) newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(true)

	bin := e.BrowserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if e.NoSandbox || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// Launch starts a browser process and connects to it.
func (e *RodEngine) Launch(ctx context.Context) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := e.newLauncher()
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	idle := e.IdleWindow
	if idle <= 0 {
		idle = DefaultIdleWindow
	}

	return &rodBrowser{browser: b, launcher: l, idle: idle}, nil
}

// rodBrowser is one launched Chrome process.
type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	idle     time.Duration

	closeOnce sync.Once
	closeErr  error
}

// NewSession creates an incognito browser context with a single blank page.
func (b *rodBrowser) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextCreate, err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	return &rodSession{incognito: incognito, page: page, idle: b.idle}, nil
}

// Close shuts the browser down and kills any leftover child processes.
// Safe to call more than once.
func (b *rodBrowser) Close() error {
	b.closeOnce.Do(func() {
		pid := b.launcher.PID()
		b.closeErr = b.browser.Close()
		process.KillProcessGroup(pid)
		b.launcher.Kill()
		b.launcher.Cleanup()
	})
	return b.closeErr
}

// streamingResourceTypes never finish, so they are left out of the idle
// wait. Everything else counts, fonts and images included; go-rod's own
// default would skip those too.
var streamingResourceTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeWebSocket,
	proto.NetworkResourceTypeEventSource,
}

// rodSession is an incognito context holding the page of one document.
type rodSession struct {
	incognito *rod.Browser
	page      *rod.Page
	idle      time.Duration
}

// Render loads the document, titles it and prints it.
// Returns explicit errors instead of panicking when browser operations fail.
func (s *rodSession) Render(ctx context.Context, htmlContent string, settings PrintSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := s.page.Context(ctx)

	// Register the idle waiter before loading so early requests are counted.
	// No deadline: a document that keeps polling holds the batch until the
	// caller's context ends.
	wait := page.WaitRequestIdle(s.idle, nil, nil, streamingResourceTypes)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	heading, err := page.Eval(firstHeadingScript)
	if err != nil {
		return nil, fmt.Errorf("%w: reading heading: %v", ErrPageLoad, err)
	}
	if _, err := page.Eval(setTitleScript, deriveTitle(heading.Value.Str())); err != nil {
		return nil, fmt.Errorf("%w: setting title: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPDFOptions(settings))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// Close closes the page and disposes of the incognito context.
func (s *rodSession) Close() error {
	return errors.Join(s.page.Close(), s.incognito.Close())
}

// deriveTitle trims the first heading's text, falling back to UntitledDocument.
func deriveTitle(heading string) string {
	if t := strings.TrimSpace(heading); t != "" {
		return t
	}
	return UntitledDocument
}

// buildPDFOptions converts PrintSettings to the CDP print request.
func buildPDFOptions(s PrintSettings) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(s.PaperWidth),
		PaperHeight:     floatPtr(s.PaperHeight),
		Scale:           floatPtr(s.Scale),
		MarginTop:       floatPtr(s.Margin),
		MarginBottom:    floatPtr(s.Margin),
		MarginLeft:      floatPtr(s.Margin),
		MarginRight:     floatPtr(s.Margin),
		PrintBackground: s.PrintBackground,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
