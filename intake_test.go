package html2pdf

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantFiles int
		wantErr   error
	}{
		{name: "one file", body: `{"files":[{"name":"a","html":"<p>a</p>"}]}`, wantFiles: 1},
		{name: "two files", body: `{"files":[{"name":"a","html":""},{"name":"b","html":""}]}`, wantFiles: 2},
		{name: "records not inspected", body: `{"files":[{"unexpected":true}]}`, wantFiles: 1},
		{name: "missing files", body: `{}`, wantErr: ErrNoFiles},
		{name: "null files", body: `{"files":null}`, wantErr: ErrNoFiles},
		{name: "empty files", body: `{"files":[]}`, wantErr: ErrNoFiles},
		{name: "files not array", body: `{"files":{"name":"a"}}`, wantErr: ErrNoFiles},
		{name: "files string", body: `{"files":"a"}`, wantErr: ErrNoFiles},
		{name: "not json", body: `files=a`, wantErr: ErrMalformedRequest},
		{name: "empty body", body: ``, wantErr: ErrMalformedRequest},
		{name: "array body", body: `[{"name":"a","html":""}]`, wantErr: ErrMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := DecodeRequest(strings.NewReader(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeRequest() error = %v, want %v", err, tt.wantErr)
				}
				if !IsBadRequest(err) {
					t.Errorf("IsBadRequest(%v) = false, want true", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRequest() unexpected error: %v", err)
			}
			if len(req.Files) != tt.wantFiles {
				t.Errorf("len(Files) = %d, want %d", len(req.Files), tt.wantFiles)
			}
		})
	}
}

func TestDecodeRequest_Transform(t *testing.T) {
	t.Parallel()

	body := `{"files":[{"name":"a","html":"x"}],"transform":{"rules":[{"find":"x","replace":"y"}],"code":"abc","dateFormat":"iso"}}`
	req, err := DecodeRequest(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeRequest() error: %v", err)
	}
	if req.Transform == nil {
		t.Fatal("Transform = nil, want decoded")
	}
	if req.Transform.Code != "abc" || req.Transform.DateFormat != "iso" {
		t.Errorf("Transform = %+v", req.Transform)
	}
	if len(req.Transform.Rules) != 1 || req.Transform.Rules[0].Replace != "y" {
		t.Errorf("Rules = %+v", req.Transform.Rules)
	}
}

func TestRawFile_File(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    IncomingFile
		wantErr bool
	}{
		{
			name: "complete",
			raw:  `{"name":"r","html":"<p></p>","pdfMeta":{"author":"A","keywords":"k"}}`,
			want: IncomingFile{Name: "r", HTML: "<p></p>", PDFMeta: &PDFMeta{Author: "A", Keywords: "k"}},
		},
		{
			name: "empty strings are present",
			raw:  `{"name":"","html":""}`,
			want: IncomingFile{},
		},
		{name: "missing name", raw: `{"html":"x"}`, wantErr: true},
		{name: "missing html", raw: `{"name":"x"}`, wantErr: true},
		{name: "wrong type", raw: `{"name":1,"html":"x"}`, wantErr: true},
		{name: "not an object", raw: `"x"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RawFile(tt.raw).File()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFile) {
					t.Fatalf("File() error = %v, want ErrInvalidFile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("File() unexpected error: %v", err)
			}
			if got.Name != tt.want.Name || got.HTML != tt.want.HTML {
				t.Errorf("File() = %+v, want %+v", got, tt.want)
			}
			if (got.PDFMeta == nil) != (tt.want.PDFMeta == nil) {
				t.Fatalf("PDFMeta = %+v, want %+v", got.PDFMeta, tt.want.PDFMeta)
			}
			if got.PDFMeta != nil && *got.PDFMeta != *tt.want.PDFMeta {
				t.Errorf("PDFMeta = %+v, want %+v", *got.PDFMeta, *tt.want.PDFMeta)
			}
		})
	}
}

func TestNewRequest_Empty(t *testing.T) {
	t.Parallel()

	if _, err := NewRequest(nil, nil); !errors.Is(err, ErrNoFiles) {
		t.Errorf("NewRequest(nil) error = %v, want ErrNoFiles", err)
	}
}
