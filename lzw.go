package entropy

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// lzwAlphabetSize is the number of single-symbol entries the LZW dictionary
// starts with: codes 0..127 for 7-bit ASCII.
const lzwAlphabetSize = 128

// LZWCompress emits the LZW code sequence for seq.
//
// Each call owns a fresh dictionary seeded with the 128 ASCII symbols.  The
// dictionary grows by one entry per emitted code, without bound, with codes
// assigned in increasing order from 128.
//
func LZWCompress(seq []byte) ([]int, error) {
	if len(seq) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "lzw compress")
	}

	dict := make(map[string]int, lzwAlphabetSize+len(seq))
	for i := 0; i < lzwAlphabetSize; i++ {
		dict[string([]byte{byte(i)})] = i
	}
	next := lzwAlphabetSize

	// The current match is always seq[start:i].
	var out []int
	start := 0
	for i, b := range seq {
		if b >= lzwAlphabetSize {
			return nil, errors.Wrapf(ErrAlphabet, "symbol %s at offset %d", Symbol(b), i)
		}
		if _, found := dict[string(seq[start:i+1])]; found {
			continue
		}
		out = append(out, dict[string(seq[start:i])])
		dict[string(seq[start:i+1])] = next
		next++
		start = i
	}
	out = append(out, dict[string(seq[start:])])
	return out, nil
}

// LZWDecompress rebuilds the input of LZWCompress.  The dictionary is
// reconstructed in the same order and with the same unbounded growth as the
// compressor's.  A code that is neither known nor exactly the next code to be
// assigned fails with ErrMalformedSequence.
func LZWDecompress(codes []int) ([]byte, error) {
	if len(codes) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "lzw decompress")
	}

	dict := make([]string, lzwAlphabetSize, lzwAlphabetSize+len(codes))
	for i := range dict {
		dict[i] = string([]byte{byte(i)})
	}

	first := codes[0]
	if first < 0 || first >= lzwAlphabetSize {
		return nil, errors.Wrapf(ErrMalformedSequence, "code %d at index 0 is not a base symbol", first)
	}
	var out bytes.Buffer
	prev := dict[first]
	out.WriteString(prev)

	for i, code := range codes[1:] {
		var entry string
		switch {
		case code >= 0 && code < len(dict):
			entry = dict[code]
		case code == len(dict):
			// The code being defined right now: prev plus its own first symbol.
			entry = prev + prev[:1]
		default:
			return nil, errors.Wrapf(ErrMalformedSequence, "code %d at index %d, next expected code is %d", code, i+1, len(dict))
		}
		out.WriteString(entry)
		dict = append(dict, prev+entry[:1])
		prev = entry
	}
	return out.Bytes(), nil
}

// LZWCodeWidth returns the fixed width, in bits, needed to write every code
// of codes: ⌈log2(max+1)⌉, but never less than one bit.
func LZWCodeWidth(codes []int) int {
	highest := 0
	for _, code := range codes {
		if code > highest {
			highest = code
		}
	}
	if width := bitLength(highest); width > 0 {
		return width
	}
	return 1
}

// LZWPack writes codes at their fixed LZWCodeWidth into bytes.
func LZWPack(codes []int) (data []byte, width int, err error) {
	width = LZWCodeWidth(codes)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, code := range codes {
		if code < 0 {
			return nil, 0, errors.Wrapf(ErrMalformedSequence, "negative code %d", code)
		}
		if err := w.WriteBits(uint64(code), uint8(width)); err != nil {
			return nil, 0, errors.Wrap(err, "packing lzw codes")
		}
	}
	if err := w.Close(); err != nil {
		return nil, 0, errors.Wrap(err, "packing lzw codes")
	}
	return buf.Bytes(), width, nil
}

// LZWUnpack reads count codes of the given width back out of data.
func LZWUnpack(data []byte, width int, count int) ([]int, error) {
	if width <= 0 || width > 64 {
		return nil, errors.Wrapf(ErrInvalidParameter, "lzw code width %d", width)
	}
	if count < 0 || count > len(data)*8/width {
		return nil, errors.Wrapf(ErrMalformedSequence, "%d codes of %d bits requested from %d bytes", count, width, len(data))
	}
	r := bitio.NewReader(bytes.NewReader(data))
	out := make([]int, count)
	for i := range out {
		v, err := r.ReadBits(uint8(width))
		if err != nil {
			return nil, errors.Wrap(err, "unpacking lzw codes")
		}
		out[i] = int(v)
	}
	return out, nil
}

// LZWEncode LZW-compresses seq.  BitsAfter packs every code at the fixed
// LZWCodeWidth, and AverageLength is BitsAfter per input symbol.
func LZWEncode(seq []byte) (*Metrics, error) {
	pt, err := Probabilities(seq)
	if err != nil {
		return nil, errors.Wrap(err, "lzw")
	}
	codes, err := LZWCompress(seq)
	if err != nil {
		return nil, errors.Wrap(err, "lzw")
	}
	bitsAfter := len(codes) * LZWCodeWidth(codes)
	avg := float64(bitsAfter) / float64(len(seq))
	m := newMetrics(pt, codes, bitsAfter, avg)
	m.AverageLength = round(avg, 2)
	return m, nil
}
