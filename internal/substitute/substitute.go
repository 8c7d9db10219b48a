// Package substitute rewrites HTML text before rendering: literal
// find/replace rules followed by the {CODE}, {DATE} and {YEAR} placeholders.
package substitute

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholders recognized by Expander.
const (
	PlaceholderCode = "{CODE}"
	PlaceholderDate = "{DATE}"
	PlaceholderYear = "{YEAR}"
)

// Rule is a literal find/replace pair. Matching ignores case.
type Rule struct {
	Find    string
	Replace string
}

// Expander applies rules and placeholders to documents of one batch.
// The zero value leaves text unchanged apart from {YEAR}.
type Expander struct {
	Rules []Rule

	// Code replaces {CODE} as "{Code}" when HasCode is set, even if empty.
	Code    string
	HasCode bool

	// Date is the rendered value of {DATE}. Empty leaves {DATE} in place.
	Date string

	// Year replaces {YEAR}. Zero leaves {YEAR} in place.
	Year int

	compiled []*regexp.Regexp
}

// NewExpander compiles rules once for reuse across a batch.
// Rules whose Find is blank are dropped.
func NewExpander(rules []Rule, code, date string, year int) *Expander {
	e := &Expander{Code: code, HasCode: code != "", Date: date, Year: year}
	for _, r := range rules {
		if strings.TrimSpace(r.Find) == "" {
			continue
		}
		e.Rules = append(e.Rules, r)
		e.compiled = append(e.compiled, regexp.MustCompile("(?i)"+regexp.QuoteMeta(r.Find)))
	}
	return e
}

// Expand returns html with every rule applied in order, then placeholders.
func (e *Expander) Expand(html string) string {
	for i, re := range e.compiled {
		html = replaceAll(re, html, e.Rules[i].Replace)
	}

	pairs := make([]string, 0, 6)
	if e.HasCode {
		pairs = append(pairs, PlaceholderCode, "{"+e.Code+"}")
	}
	if e.Date != "" {
		pairs = append(pairs, PlaceholderDate, e.Date)
	}
	if e.Year != 0 {
		pairs = append(pairs, PlaceholderYear, strconv.Itoa(e.Year))
	}
	if len(pairs) == 0 {
		return html
	}
	return strings.NewReplacer(pairs...).Replace(html)
}

// replaceAll substitutes every match of re in s. In repl, "$&" inserts the
// match, "$`" the text before it, "$'" the text after it and "$$" a single
// '$'; any other '$' is literal.
func replaceAll(re *regexp.Regexp, s, repl string) string {
	if !strings.Contains(repl, "$") {
		return re.ReplaceAllLiteralString(s, repl)
	}

	locs := re.FindAllStringIndex(s, -1)
	if locs == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		writeReplacement(&b, repl, s, loc)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func writeReplacement(b *strings.Builder, repl, s string, loc []int) {
	for i := 0; i < len(repl); i++ {
		if repl[i] != '$' || i+1 == len(repl) {
			b.WriteByte(repl[i])
			continue
		}
		switch repl[i+1] {
		case '$':
			b.WriteByte('$')
		case '&':
			b.WriteString(s[loc[0]:loc[1]])
		case '`':
			b.WriteString(s[:loc[0]])
		case '\'':
			b.WriteString(s[loc[1]:])
		default:
			b.WriteByte('$')
			continue
		}
		i++
	}
}
