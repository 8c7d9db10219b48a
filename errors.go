package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Intake errors. All map to a BadRequest outcome.
	ErrNoFiles          = errors.New("no files provided")
	ErrMalformedRequest = errors.New("malformed request body")
	ErrInvalidTransform = errors.New("invalid transform")

	// Rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrContextCreate  = errors.New("failed to create browser context")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidFile    = errors.New("invalid file record")

	// Post-processing errors.
	ErrMetadata = errors.New("failed to apply PDF metadata")
	ErrArchive  = errors.New("failed to build archive")

	// Print settings validation errors.
	ErrInvalidScale  = errors.New("invalid scale")
	ErrInvalidMargin = errors.New("invalid margin")
	ErrInvalidPaper  = errors.New("invalid paper size")
)

// IsBadRequest reports whether err was caused by the caller's payload rather
// than by a failure while rendering or packaging.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrMalformedRequest) ||
		errors.Is(err, ErrInvalidTransform)
}
