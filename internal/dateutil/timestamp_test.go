package dateutil

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "RFC3339 with offset",
			input:  "2024-01-15T10:30:00+02:00",
			want:   time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339 UTC with fraction",
			input:  "2024-01-15T10:30:00.250Z",
			want:   time.Date(2024, 1, 15, 10, 30, 0, 250_000_000, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only is UTC midnight",
			input:  "2024-01-15",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "datetime without zone is UTC",
			input:  "2024-01-15T10:30",
			want:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "long month",
			input:  "January 15, 2024",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "US numeric",
			input:  "01/15/2024",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			input:  "  2024-01-15  ",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "garbage", input: "not-a-date"},
		{name: "impossible day", input: "2024-02-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
