package html2pdf

import (
	"encoding/json"
	"fmt"
)

// IncomingFile is one user-submitted HTML document.
type IncomingFile struct {
	Name    string   `json:"name"`
	HTML    string   `json:"html"`
	PDFMeta *PDFMeta `json:"pdfMeta,omitempty"`
}

// PDFMeta holds optional document properties for one file.
// Created and Modified are free-form date strings parsed on a best-effort basis.
type PDFMeta struct {
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// Artifact is the finalized, named PDF produced for one IncomingFile.
type Artifact struct {
	Name string
	PDF  []byte
}

// Bundle is the response payload: a single PDF or a ZIP of all artifacts.
type Bundle struct {
	Filename    string
	ContentType string
	Body        []byte
	Count       int
}

// Source yields an IncomingFile. Decoding is deferred until the file's turn
// in the pipeline so malformed records fail as render errors.
type Source interface {
	File() (IncomingFile, error)
}

// File returns f unchanged.
func (f IncomingFile) File() (IncomingFile, error) {
	return f, nil
}

// RawFile is an undecoded file record from a request payload.
type RawFile json.RawMessage

// File decodes the record. Name and HTML must be present as strings.
func (r RawFile) File() (IncomingFile, error) {
	var aux struct {
		Name    *string  `json:"name"`
		HTML    *string  `json:"html"`
		PDFMeta *PDFMeta `json:"pdfMeta"`
	}
	if err := json.Unmarshal(r, &aux); err != nil {
		return IncomingFile{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if aux.Name == nil {
		return IncomingFile{}, fmt.Errorf("%w: missing name", ErrInvalidFile)
	}
	if aux.HTML == nil {
		return IncomingFile{}, fmt.Errorf("%w: missing html", ErrInvalidFile)
	}
	return IncomingFile{Name: *aux.Name, HTML: *aux.HTML, PDFMeta: aux.PDFMeta}, nil
}

// Compile-time interface checks.
var (
	_ Source = IncomingFile{}
	_ Source = RawFile(nil)
)

// ReplaceRule is a literal, case-insensitive find/replace pair.
type ReplaceRule struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

// Transform describes text substitutions applied to every file's HTML
// before rendering: replace rules first, then {CODE}, {DATE} and {YEAR}.
type Transform struct {
	Rules      []ReplaceRule `json:"rules,omitempty"`
	Code       string        `json:"code,omitempty"`       // empty = generated
	CodeLength int           `json:"codeLength,omitempty"` // 0 = default (6)
	CodeUpper  bool          `json:"codeUpper,omitempty"`
	NoLower    bool          `json:"noLower,omitempty"`
	NoDigits   bool          `json:"noDigits,omitempty"`
	Date       string        `json:"date,omitempty"`       // YYYY-MM-DD, empty = today
	DateFormat string        `json:"dateFormat,omitempty"` // tokens, empty = "MMMM DD, YYYY"
}

// Request is a validated batch ready for the pipeline.
type Request struct {
	Files     []Source
	Transform *Transform
}

// PrintSettings controls PDF output. Dimensions are in inches.
type PrintSettings struct {
	PaperWidth      float64
	PaperHeight     float64
	Scale           float64
	Margin          float64
	PrintBackground bool
}

// A4 paper dimensions in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// Default print values.
const (
	DefaultScale        = 0.8
	DefaultMarginInches = 0.5
)

// Scale bounds accepted by Chrome's printToPDF.
const (
	minScale = 0.1
	maxScale = 2.0
)

// DefaultPrintSettings returns A4 pages with backgrounds, 80% scale and
// uniform half-inch margins.
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		PaperWidth:      a4WidthInches,
		PaperHeight:     a4HeightInches,
		Scale:           DefaultScale,
		Margin:          DefaultMarginInches,
		PrintBackground: true,
	}
}

// Validate checks that the settings can be passed to the browser.
func (p PrintSettings) Validate() error {
	if p.PaperWidth <= 0 || p.PaperHeight <= 0 {
		return fmt.Errorf("%w: %.2fx%.2f", ErrInvalidPaper, p.PaperWidth, p.PaperHeight)
	}
	if p.Scale < minScale || p.Scale > maxScale {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidScale, p.Scale, minScale, maxScale)
	}
	if p.Margin < 0 || 2*p.Margin >= p.PaperWidth || 2*p.Margin >= p.PaperHeight {
		return fmt.Errorf("%w: %.2f", ErrInvalidMargin, p.Margin)
	}
	return nil
}
