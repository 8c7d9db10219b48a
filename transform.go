package html2pdf

import (
	"fmt"
	"time"

	"github.com/alnah/go-html2pdf/internal/dateutil"
	"github.com/alnah/go-html2pdf/internal/substitute"
)

// newExpander resolves t into an Expander for one batch: the code is
// generated and the date rendered once so every file receives the same
// values. A nil t yields a nil Expander.
func newExpander(t *Transform, now time.Time) (*substitute.Expander, error) {
	if t == nil {
		return nil, nil
	}

	rules := make([]substitute.Rule, len(t.Rules))
	for i, r := range t.Rules {
		rules[i] = substitute.Rule{Find: r.Find, Replace: r.Replace}
	}

	code := t.Code
	if code == "" {
		cs := substitute.Charset{Lower: !t.NoLower, Upper: t.CodeUpper, Digits: !t.NoDigits}
		generated, err := substitute.GenerateCode(t.CodeLength, cs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransform, err)
		}
		code = generated
	}

	day := now
	if t.Date != "" {
		parsed, ok := dateutil.ParseTimestamp(t.Date)
		if !ok {
			return nil, fmt.Errorf("%w: unrecognized date %q", ErrInvalidTransform, t.Date)
		}
		day = parsed
	}
	date, err := dateutil.Format(day, t.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransform, err)
	}

	e := substitute.NewExpander(rules, code, date, now.Year())
	e.HasCode = true
	return e, nil
}
