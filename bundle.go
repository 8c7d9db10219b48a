package html2pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// Response content types and the archive name used for multi-file batches.
const (
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"
	ArchiveName    = "updated-pdfs.zip"
)

// Package turns rendered artifacts into the response payload. A single
// artifact is returned as-is; two or more are stored uncompressed in a ZIP
// at the top level. When names collide the entry keeps the position of its
// first occurrence and the bytes of its last.
func Package(artifacts []Artifact, modTime time.Time) (*Bundle, error) {
	switch len(artifacts) {
	case 0:
		return nil, ErrNoFiles
	case 1:
		a := artifacts[0]
		return &Bundle{
			Filename:    a.Name,
			ContentType: ContentTypePDF,
			Body:        a.PDF,
			Count:       1,
		}, nil
	}

	entries := dedupeArtifacts(artifacts)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range entries {
		hdr := &zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Store,
			Modified: modTime,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, a.Name, err)
		}
		if _, err := w.Write(a.PDF); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	return &Bundle{
		Filename:    ArchiveName,
		ContentType: ContentTypeZIP,
		Body:        buf.Bytes(),
		Count:       len(entries),
	}, nil
}

// dedupeArtifacts collapses artifacts sharing a name.
func dedupeArtifacts(artifacts []Artifact) []Artifact {
	index := make(map[string]int, len(artifacts))
	out := make([]Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if i, ok := index[a.Name]; ok {
			out[i].PDF = a.PDF
			continue
		}
		index[a.Name] = len(out)
		out = append(out, a)
	}
	return out
}
