package html2pdf

import "strings"

const pdfExtension = ".pdf"

// FinalizeName returns name with a single ".pdf" suffix.
// The check is case sensitive: "report.pdf" is kept, "report" and
// "report.PDF" both gain the suffix.
func FinalizeName(name string) string {
	if strings.HasSuffix(name, pdfExtension) {
		return name
	}
	return name + pdfExtension
}
