// Package html2pdf converts batches of HTML documents to PDF using headless
// Chrome, sets document properties on the results and packages them as a
// single PDF or a ZIP archive.
//
// # Quick Start
//
//	req, err := html2pdf.NewRequest([]html2pdf.IncomingFile{
//	    {Name: "report", HTML: "<h1>Quarterly Report</h1>"},
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bundle, err := html2pdf.NewConverter().Convert(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(bundle.Filename, bundle.Body, 0o644)
//
// JSON payloads of the form {"files": [...]} are read with DecodeRequest.
//
// # Pipeline
//
// For each batch the Converter:
//
//  1. launches one browser
//  2. renders every file in order, each in a fresh incognito context that is
//     closed as soon as its PDF bytes are captured
//  3. applies the optional document properties (author, subject, keywords,
//     dates, producer) with pdfcpu
//  4. closes the browser, on success and on failure alike
//
// A failure anywhere aborts the batch; no partial output is returned.
//
// Each page is loaded from its HTML string, allowed to reach network
// quiescence, titled from its first h1 (or "Untitled Document") and
// printed on A4 at 80% scale with half-inch margins and backgrounds.
//
// # Configuration
//
//	conv := html2pdf.NewConverter(
//	    html2pdf.WithIdleWindow(time.Second),
//	    html2pdf.WithPrintSettings(settings),
//	    html2pdf.WithLogger(logger),
//	)
//
// # Error Handling
//
// Errors wrap sentinels that can be checked with errors.Is. IsBadRequest
// separates payload problems (ErrNoFiles, ErrMalformedRequest,
// ErrInvalidTransform) from rendering and packaging failures.
//
// # Browser
//
// go-rod downloads Chromium on first use unless ROD_BROWSER_BIN points at an
// installed binary. Set ROD_NO_SANDBOX=1 in containers.
package html2pdf
