package html2pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// requestPayload mirrors the POST body. Files stays raw so its shape can be
// checked before any record is decoded.
type requestPayload struct {
	Files     json.RawMessage `json:"files"`
	Transform *Transform      `json:"transform,omitempty"`
}

// DecodeRequest reads a JSON payload of the form {"files": [...]} and checks
// that files is a non-empty array. Individual records are not inspected here;
// they are decoded one at a time by the pipeline.
//
// Returns ErrNoFiles when files is absent, null, not an array, or empty, and
// ErrMalformedRequest when the body is not a JSON object.
func DecodeRequest(r io.Reader) (*Request, error) {
	var payload requestPayload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		// %w twice: callers need both the sentinel and the cause (e.g. *http.MaxBytesError).
		return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	raw := bytes.TrimSpace(payload.Files)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrNoFiles
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("%w: files must be an array", ErrNoFiles)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if len(records) == 0 {
		return nil, ErrNoFiles
	}

	files := make([]Source, len(records))
	for i, rec := range records {
		files[i] = RawFile(rec)
	}

	return &Request{Files: files, Transform: payload.Transform}, nil
}

// NewRequest builds a Request from already decoded files.
func NewRequest(files []IncomingFile, transform *Transform) (*Request, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	sources := make([]Source, len(files))
	for i, f := range files {
		sources[i] = f
	}
	return &Request{Files: sources, Transform: transform}, nil
}
