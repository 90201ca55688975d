package entropy

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Code represents a sequence of bits, written as '0' and '1' characters with
// the first bit first.  Unlike a fixed-width machine word, a Code may be
// arbitrarily long, which matters for skewed Huffman trees and for the unary
// part of Golomb codes.
type Code string

// MakeCode is a convenience function that constructs a Code holding the low
// size bits of bits, most significant bit first.
func MakeCode(size int, bits uint64) Code {
	if size <= 0 {
		return ""
	}
	format := "%0" + strconv.Itoa(size) + "b"
	return Code(fmt.Sprintf(format, bits))
}

// ParseCode validates that s consists only of '0' and '1' characters.
func ParseCode(s string) (Code, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", errors.Wrapf(ErrMalformedSequence, "invalid bit %q at offset %d", s[i], i)
		}
	}
	return Code(s), nil
}

// Size returns the number of bits in this Code.
func (c Code) Size() int {
	return len(c)
}

// String returns the string representation of this Code.
func (c Code) String() string {
	if c == "" {
		return "\"\""
	}
	return strconv.Quote(string(c))
}

// Pack writes the bits of this Code into bytes, most significant bit first,
// padding the final byte with zeros.
func (c Code) Pack() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(c); i++ {
		if err := w.WriteBool(c[i] == '1'); err != nil {
			return nil, errors.Wrap(err, "packing code")
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "packing code")
	}
	return buf.Bytes(), nil
}

// UnpackCode is the inverse of Pack: it reads size bits back out of data.
func UnpackCode(data []byte, size int) (Code, error) {
	if size > len(data)*8 {
		return "", errors.Wrapf(ErrMalformedSequence, "%d bits requested from %d bytes", size, len(data))
	}
	r := bitio.NewReader(bytes.NewReader(data))
	var b strings.Builder
	b.Grow(size)
	for i := 0; i < size; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			return "", errors.Wrap(err, "unpacking code")
		}
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Code(b.String()), nil
}

var _ fmt.Stringer = Code("")
