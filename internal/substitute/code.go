package substitute

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidCode indicates code generation settings that cannot produce a code.
var ErrInvalidCode = errors.New("invalid code settings")

// Code length bounds.
const (
	DefaultCodeLength = 6
	MinCodeLength     = 1
	MaxCodeLength     = 20
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
)

// Charset selects the character classes of a generated code.
type Charset struct {
	Lower  bool
	Upper  bool
	Digits bool
}

// DefaultCharset is lowercase letters and digits.
var DefaultCharset = Charset{Lower: true, Digits: true}

func (c Charset) alphabet() string {
	var s string
	if c.Lower {
		s += lowerChars
	}
	if c.Upper {
		s += upperChars
	}
	if c.Digits {
		s += digitChars
	}
	return s
}

// GenerateCode returns a random code of length characters drawn from cs.
// A zero length uses DefaultCodeLength. With no character class selected
// the code is empty, so {CODE} expands to "{}".
func GenerateCode(length int, cs Charset) (string, error) {
	if length == 0 {
		length = DefaultCodeLength
	}
	if length < MinCodeLength || length > MaxCodeLength {
		return "", fmt.Errorf("%w: length %d (must be %d-%d)", ErrInvalidCode, length, MinCodeLength, MaxCodeLength)
	}

	alphabet := cs.alphabet()
	if alphabet == "" {
		return "", nil
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating code: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
