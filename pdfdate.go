package html2pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PDF date strings (ISO 32000-1 §7.9.4) have the form D:YYYYMMDDHHmmSSOHH'mm'
// where every field after the year is optional.

// formatPDFDate renders t in UTC with the Z designator.
func formatPDFDate(t time.Time) string {
	return "D:" + t.UTC().Format("20060102150405") + "Z"
}

// parsePDFDate parses a PDF date string. Missing fields default to the
// start of their range and a missing offset is read as UTC.
func parsePDFDate(s string) (time.Time, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "D:")

	digits := 0
	for digits < len(s) && digits < 14 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 4 || digits%2 != 0 {
		return time.Time{}, fmt.Errorf("invalid PDF date %q", s)
	}

	// year, month, day, hour, minute, second
	fields := [6]int{0, 1, 1, 0, 0, 0}
	fields[0], _ = strconv.Atoi(s[:4])
	for i, pos := 1, 4; pos < digits; i, pos = i+1, pos+2 {
		fields[i], _ = strconv.Atoi(s[pos : pos+2])
	}

	loc, err := parsePDFOffset(s[digits:])
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, loc), nil
}

// parsePDFOffset parses the trailing O HH'mm' part of a PDF date.
func parsePDFOffset(s string) (*time.Location, error) {
	if s == "" || s == "Z" || strings.HasPrefix(s, "Z00") {
		return time.UTC, nil
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid PDF date offset %q", s)
	}

	parts := strings.Split(strings.TrimSuffix(s[1:], "'"), "'")
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid PDF date offset %q", s)
	}
	minutes := 0
	if len(parts) > 1 && parts[1] != "" {
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return nil, fmt.Errorf("invalid PDF date offset %q", s)
		}
	}

	return time.FixedZone("", sign*(hours*3600+minutes*60)), nil
}
