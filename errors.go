package entropy

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when a coder receives a zero-length sequence.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidParameter is returned for out-of-range coder parameters,
	// such as a non-positive Golomb divisor.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedSequence is returned when a code sequence cannot be
	// decoded: an unknown or out-of-order LZW code, a truncated Huffman or
	// Golomb bit string, or a value outside every arithmetic sub-interval.
	ErrMalformedSequence = errors.New("malformed code sequence")

	// ErrArithmeticUnderflow is returned when the arithmetic coder's interval
	// collapses to zero width before the message is fully consumed.
	ErrArithmeticUnderflow = errors.New("arithmetic interval underflow")

	// ErrAlphabet is returned when a symbol falls outside the base alphabet
	// of a dictionary coder.
	ErrAlphabet = errors.New("symbol outside base alphabet")

	// ErrUnknownSymbol is returned when a message contains a symbol that has
	// no entry in the supplied probability table.
	ErrUnknownSymbol = errors.New("symbol not in probability table")
)
