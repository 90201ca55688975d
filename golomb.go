package entropy

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GolombRemainder returns the width and the value actually written for
// remainder r under divisor m.
//
// If m is a power of two, r is written in exactly log2(m) bits.  Otherwise,
// with k = ⌊log2 m⌋ and x = 2^(k+1) − m, the truncated binary rule applies:
// r < x is written in k bits, and any other r is written as r + x in k+1
// bits.
//
func GolombRemainder(r, m int) (width int, value int) {
	k := bitLength(m) - 1
	if isPowerOfTwo(m) {
		return k, r
	}
	// 2^(k+1) overflows int when k is 62.
	x := uint64(1)<<uint(k+1) - uint64(m)
	if uint64(r) < x {
		return k, r
	}
	return k + 1, r + int(x)
}

// GolombCode encodes n ≥ 0 with divisor m > 0: n/m in unary (that many 1
// bits then a 0), followed by n mod m under the GolombRemainder rule.
func GolombCode(n, m int) (Code, error) {
	if m <= 0 {
		return "", errors.Wrapf(ErrInvalidParameter, "golomb divisor %d must be positive", m)
	}
	if n < 0 {
		return "", errors.Wrapf(ErrInvalidParameter, "golomb value %d must not be negative", n)
	}

	q, r := n/m, n%m
	width, value := GolombRemainder(r, m)

	var b strings.Builder
	b.Grow(q + 1 + width)
	for i := 0; i < q; i++ {
		b.WriteByte('1')
	}
	b.WriteByte('0')
	b.WriteString(string(MakeCode(width, uint64(value))))
	return Code(b.String()), nil
}

// GolombDecode reverses GolombCode, returning the quotient and remainder.
// The whole of code must be consumed.
func GolombDecode(code Code, m int) (quotient int, remainder int, err error) {
	if m <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidParameter, "golomb divisor %d must be positive", m)
	}

	i := 0
	for i < len(code) && code[i] == '1' {
		quotient++
		i++
	}
	if i == len(code) {
		return 0, 0, errors.Wrap(ErrMalformedSequence, "golomb code has no unary terminator")
	}
	if code[i] != '0' {
		return 0, 0, errors.Wrapf(ErrMalformedSequence, "invalid bit %q at offset %d", code[i], i)
	}
	i++

	readBits := func(n int) (int, error) {
		if i+n > len(code) {
			return 0, errors.Wrapf(ErrMalformedSequence, "golomb remainder truncated at offset %d", len(code))
		}
		if n == 0 {
			return 0, nil
		}
		v, err := strconv.ParseUint(string(code[i:i+n]), 2, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedSequence, "golomb remainder at offset %d", i)
		}
		i += n
		return int(v), nil
	}

	k := bitLength(m) - 1
	v, err := readBits(k)
	if err != nil {
		return 0, 0, err
	}
	if isPowerOfTwo(m) {
		remainder = v
	} else if x := uint64(1)<<uint(k+1) - uint64(m); uint64(v) < x {
		remainder = v
	} else {
		bit, err := readBits(1)
		if err != nil {
			return 0, 0, err
		}
		remainder = (v<<1 | bit) - int(x)
	}

	if i != len(code) {
		return 0, 0, errors.Wrapf(ErrMalformedSequence, "%d trailing bits after golomb code", len(code)-i)
	}
	return quotient, remainder, nil
}

// GolombEncode Golomb-codes N = 8×len(seq), the bit length of the sequence's
// plain 8-bit representation, with divisor m.
//
// The reported entropy and probabilities describe the symbols of seq, not the
// coded value N.
//
func GolombEncode(seq []byte, m int) (*Metrics, error) {
	if m <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "golomb divisor %d must be positive", m)
	}
	pt, err := Probabilities(seq)
	if err != nil {
		return nil, errors.Wrap(err, "golomb")
	}
	code, err := GolombCode(len(seq)*8, m)
	if err != nil {
		return nil, errors.Wrap(err, "golomb")
	}
	return newMetrics(pt, code, code.Size(), fixedAverageLength), nil
}
