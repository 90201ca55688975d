package entropy

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Symbol represents one element of an input sequence.  Sequences are treated
// as bytes; the LZW coder further restricts them to 7-bit ASCII.
type Symbol byte

// String returns the quoted character for this Symbol.
func (s Symbol) String() string {
	return strconv.QuoteRune(rune(s))
}

// MarshalText renders printable ASCII (0x20..0x7e) as the raw character and
// every other byte as a "\xNN" escape, so that maps keyed by Symbol read
// naturally in JSON and YAML output and stay valid UTF-8.  A backslash is
// written as "\\".
func (s Symbol) MarshalText() ([]byte, error) {
	switch {
	case s == '\\':
		return []byte(`\\`), nil
	case s >= 0x20 && s <= 0x7e:
		return []byte{byte(s)}, nil
	default:
		return []byte(fmt.Sprintf(`\x%02x`, byte(s))), nil
	}
}

// UnmarshalText is the inverse of MarshalText.
func (s *Symbol) UnmarshalText(text []byte) error {
	switch {
	case len(text) == 1 && text[0] >= 0x20 && text[0] <= 0x7e && text[0] != '\\':
		*s = Symbol(text[0])
		return nil
	case string(text) == `\\`:
		*s = '\\'
		return nil
	case len(text) == 4 && text[0] == '\\' && text[1] == 'x':
		v, err := strconv.ParseUint(string(text[2:]), 16, 8)
		if err != nil {
			return errors.Wrapf(err, "invalid symbol escape %q", text)
		}
		*s = Symbol(v)
		return nil
	default:
		return errors.Errorf("invalid symbol %q: expected one printable character or a \\xNN escape", text)
	}
}

func isDigit(s Symbol) bool {
	return s >= '0' && s <= '9'
}
