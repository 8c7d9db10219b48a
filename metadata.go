package html2pdf

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-html2pdf/internal/dateutil"
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home.
	api.DisableConfigDir()
}

// Document information dictionary keys.
const (
	infoTitle        = "Title"
	infoAuthor       = "Author"
	infoSubject      = "Subject"
	infoKeywords     = "Keywords"
	infoCreator      = "Creator"
	infoProducer     = "Producer"
	infoCreationDate = "CreationDate"
	infoModDate      = "ModDate"
)

// Properties is the document information read back from a PDF.
// Dates are nil when absent or unparseable.
type Properties struct {
	Title    string
	Author   string
	Subject  string
	// KeywordsText is /Keywords as stored: the tokens joined by single
	// spaces. Keywords splits it on whitespace, so a token that contained a
	// space ("new york") comes back as two.
	KeywordsText string
	Keywords     []string
	Creator      string
	Producer     string
	Created      *time.Time
	Modified     *time.Time
}

// ParseKeywords splits s on commas, trims each token and drops empty ones.
// Order and duplicates are preserved.
func ParseKeywords(s string) []string {
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// ApplyMetadata sets the document properties in meta on pdf and returns the
// new bytes. A nil meta returns pdf unchanged. Dates that cannot be parsed
// are skipped without error.
//
// The document is parsed with pdfcpu and the merged information dictionary
// is appended as an incremental update, so values are stored exactly as
// given and the rendered page content is never rewritten.
func ApplyMetadata(pdf []byte, meta *PDFMeta) ([]byte, error) {
	if meta == nil {
		return pdf, nil
	}

	ctx, err := readContext(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing PDF: %v", ErrMetadata, err)
	}

	updates := infoUpdates(meta)
	if len(updates) == 0 {
		return pdf, nil
	}

	info, err := currentInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading info dictionary: %v", ErrMetadata, err)
	}
	for k, v := range updates {
		info[k] = v
	}

	out, err := appendInfoUpdate(pdf, ctx, info)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	return out, nil
}

// ReadProperties parses pdf and returns its document information.
func ReadProperties(pdf []byte) (*Properties, error) {
	ctx, err := readContext(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing PDF: %v", ErrMetadata, err)
	}

	info, err := currentInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading info dictionary: %v", ErrMetadata, err)
	}

	props := &Properties{
		Title:    textEntry(info, infoTitle),
		Author:   textEntry(info, infoAuthor),
		Subject:  textEntry(info, infoSubject),
		Creator:  textEntry(info, infoCreator),
		Producer: textEntry(info, infoProducer),
		Created:  dateEntry(info, infoCreationDate),
		Modified: dateEntry(info, infoModDate),
	}
	props.KeywordsText = textEntry(info, infoKeywords)
	if props.KeywordsText != "" {
		props.Keywords = strings.Fields(props.KeywordsText)
	}
	return props, nil
}

// infoUpdates builds the entries meta contributes to the info dictionary.
func infoUpdates(meta *PDFMeta) types.Dict {
	d := types.NewDict()

	if meta.Author != "" {
		d[infoAuthor] = encodeText(meta.Author)
	}
	if meta.Subject != "" {
		d[infoSubject] = encodeText(meta.Subject)
	}
	if meta.Producer != "" {
		d[infoProducer] = encodeText(meta.Producer)
	}
	if meta.Keywords != "" {
		d[infoKeywords] = encodeText(strings.Join(ParseKeywords(meta.Keywords), " "))
	}
	if t, ok := dateutil.ParseTimestamp(meta.Created); ok {
		d[infoCreationDate] = types.StringLiteral(formatPDFDate(t))
	}
	if t, ok := dateutil.ParseTimestamp(meta.Modified); ok {
		d[infoModDate] = types.StringLiteral(formatPDFDate(t))
	}

	return d
}

// readContext parses pdf into a pdfcpu context without optimizing it.
func readContext(pdf []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.ReadContext(bytes.NewReader(pdf), conf)
}

// currentInfo returns a copy of the document's info dictionary, or an empty
// dictionary when the document has none.
func currentInfo(ctx *model.Context) (types.Dict, error) {
	info := types.NewDict()
	if ctx.Info == nil {
		return info, nil
	}

	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil {
		return nil, err
	}
	for k, v := range d {
		info[k] = v
	}
	return info, nil
}

// appendInfoUpdate appends an incremental update to pdf: a new info object,
// a one-entry cross-reference section and a trailer chained with /Prev.
func appendInfoUpdate(pdf []byte, ctx *model.Context, info types.Dict) ([]byte, error) {
	if ctx.Root == nil {
		return nil, errors.New("trailer has no /Root")
	}
	if ctx.Encrypt != nil {
		return nil, errors.New("encrypted documents are not supported")
	}

	prev, err := lastXRefOffset(pdf)
	if err != nil {
		return nil, err
	}

	objNr := nextObjectNumber(ctx)

	var buf bytes.Buffer
	buf.Grow(len(pdf) + 1024)
	buf.Write(pdf)
	if !bytes.HasSuffix(pdf, []byte("\n")) {
		buf.WriteByte('\n')
	}

	objOffset := buf.Len()
	fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", objNr, info.PDFString())

	xrefOffset := buf.Len()
	// Entries are exactly 20 bytes including the two-byte end of line.
	fmt.Fprintf(&buf, "xref\n%d 1\n%010d 00000 n\r\n", objNr, objOffset)

	trailer := types.Dict{
		"Size": types.Integer(objNr + 1),
		"Root": *ctx.Root,
		"Info": *types.NewIndirectRef(objNr, 0),
		"Prev": types.Integer(prev),
	}
	if len(ctx.ID) > 0 {
		trailer["ID"] = ctx.ID
	}
	fmt.Fprintf(&buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer.PDFString(), xrefOffset)

	return buf.Bytes(), nil
}

// nextObjectNumber returns the first object number not used by the document.
func nextObjectNumber(ctx *model.Context) int {
	n := 0
	if ctx.Size != nil {
		n = *ctx.Size
	}
	for objNr := range ctx.Table {
		if objNr >= n {
			n = objNr + 1
		}
	}
	return n
}

// lastXRefOffset returns the byte offset named by the final startxref.
func lastXRefOffset(pdf []byte) (int, error) {
	const keyword = "startxref"

	i := bytes.LastIndex(pdf, []byte(keyword))
	if i < 0 {
		return 0, errors.New("missing startxref")
	}

	rest := bytes.TrimLeft(pdf[i+len(keyword):], " \t\r\n")
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}

	offset, err := strconv.Atoi(string(rest[:end]))
	if err != nil {
		return 0, fmt.Errorf("invalid startxref: %v", err)
	}
	return offset, nil
}

// encodeText encodes s as a UTF-16BE text string with byte order mark.
func encodeText(s string) types.HexLiteral {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2+2*len(units))
	b[0], b[1] = 0xFE, 0xFF
	for i, u := range units {
		binary.BigEndian.PutUint16(b[2+2*i:], u)
	}
	return types.HexLiteral(strings.ToUpper(hex.EncodeToString(b)))
}

// textEntry decodes a text string entry, returning "" if absent or invalid.
func textEntry(d types.Dict, key string) string {
	var raw []byte
	var err error

	switch v := d[key].(type) {
	case types.StringLiteral:
		raw, err = types.Unescape(string(v))
	case types.HexLiteral:
		raw, err = v.Bytes()
	default:
		return ""
	}
	if err != nil {
		return ""
	}
	return decodeText(raw)
}

// decodeText decodes PDF text string bytes: UTF-16BE or UTF-8 with a byte
// order mark, otherwise single-byte PDFDocEncoding (read as Latin-1).
func decodeText(b []byte) string {
	switch {
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		units := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			units = append(units, binary.BigEndian.Uint16(b[i:]))
		}
		return string(utf16.Decode(units))
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return string(b[3:])
	default:
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}
}

// dateEntry parses a date entry, returning nil if absent or unparseable.
func dateEntry(d types.Dict, key string) *time.Time {
	s := textEntry(d, key)
	if s == "" {
		return nil
	}
	t, err := parsePDFDate(s)
	if err != nil {
		return nil
	}
	return &t
}
