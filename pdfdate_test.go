package html2pdf

import (
	"testing"
	"time"
)

func TestFormatPDFDate(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, 1, 15, 12, 30, 5, 0, time.FixedZone("", 2*3600))
	if got, want := formatPDFDate(in), "D:20240115103005Z"; got != want {
		t.Errorf("formatPDFDate() = %q, want %q", got, want)
	}
}

func TestParsePDFDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "D:20240115103005Z", want: time.Date(2024, 1, 15, 10, 30, 5, 0, time.UTC)},
		{input: "D:20240115103005+02'00'", want: time.Date(2024, 1, 15, 8, 30, 5, 0, time.UTC)},
		{input: "D:20240115103005-05'30", want: time.Date(2024, 1, 15, 16, 0, 5, 0, time.UTC)},
		{input: "D:2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "20240115", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{input: "D:202", wantErr: true},
		{input: "D:20240115103005X", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parsePDFDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePDFDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parsePDFDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
