package entropy

import (
	"math/big"
	mathbits "math/bits"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// guardBits is added on top of the information content of the message when
// the precision is derived automatically.
const guardBits = 64

// Interval is a half-open range [Low, High) of extended-precision values.
type Interval struct {
	Low  *big.Float
	High *big.Float
}

// Width returns High − Low.
func (iv Interval) Width() *big.Float {
	return new(big.Float).SetPrec(iv.Low.Prec()).Sub(iv.High, iv.Low)
}

// ArithmeticResult holds the outcome of one arithmetic encoding.
type ArithmeticResult struct {
	// Value is the single number representing the whole message: the
	// midpoint of the lowest and highest endpoints of the terminal stage's
	// sub-intervals.
	Value *big.Float

	// Message is the interval selected by the last message symbol.
	Message Interval

	// Final is the terminal stage: Message partitioned once more, one
	// sub-interval per table symbol in table order.
	Final []Interval

	// Precision is the mantissa width, in bits, used for every value.
	Precision uint
}

// Text renders Value as the shortest decimal that identifies it uniquely at
// its precision.
func (r *ArithmeticResult) Text() string {
	return r.Value.Text('f', -1)
}

// Bits approximates the encoded size: the bit length of the integer part of
// Value plus the number of decimal digits in its fractional part.  This is a
// size heuristic, not the information content of the value.
func (r *ArithmeticResult) Bits() int {
	text := r.Text()
	intPart, fracPart := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}
	n, ok := new(big.Int).SetString(intPart, 10)
	assert.Assertf(ok, "integer part %q of %q", intPart, text)
	size := n.BitLen()
	if size == 0 {
		// "0" still takes one binary digit.
		size = 1
	}
	return size + len(fracPart)
}

// ArithmeticOption configures an ArithmeticCoder.
type ArithmeticOption func(*ArithmeticCoder)

// WithPrecision fixes the mantissa width, in bits, instead of deriving it from
// the message.  Too small a precision makes encoding fail with
// ErrArithmeticUnderflow.
func WithPrecision(bits uint) ArithmeticOption {
	return func(c *ArithmeticCoder) {
		c.precision = bits
	}
}

// ArithmeticCoder narrows [0, 1) stage by stage according to a
// ProbabilityTable.  The zero value derives its precision automatically.
type ArithmeticCoder struct {
	precision uint
}

// NewArithmeticCoder returns a coder configured by opts.
func NewArithmeticCoder(opts ...ArithmeticOption) *ArithmeticCoder {
	c := &ArithmeticCoder{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PrecisionFor returns the mantissa width used for an n-symbol message over
// table: either the fixed precision, or enough bits for n stages of the
// table's least likely symbol plus guardBits.
func (c *ArithmeticCoder) PrecisionFor(table ProbabilityTable, n int) uint {
	if c.precision != 0 {
		return c.precision
	}
	least := table.minCount()
	if least <= 0 {
		return guardBits
	}
	// log2(total/least) < Len(total/least), plus one bit for rounding.
	perSymbol := mathbits.Len(uint(table.freq.total/least)) + 1
	prec := uint(n)*uint(perSymbol) + guardBits
	if prec > big.MaxPrec {
		prec = big.MaxPrec
	}
	return prec
}

// EncodeWithTable encodes msg against table.  The table's iteration order
// fixes the position of every symbol's sub-interval at each stage.
func (c *ArithmeticCoder) EncodeWithTable(table ProbabilityTable, msg []byte) (*ArithmeticResult, error) {
	if len(msg) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "arithmetic encode")
	}
	if table.Len() == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "arithmetic encode: empty probability table")
	}

	prec := c.PrecisionFor(table, len(msg))
	probs := table.bigProbabilities(prec)
	current := Interval{
		Low:  new(big.Float).SetPrec(prec),
		High: new(big.Float).SetPrec(prec).SetInt64(1),
	}

	for i, b := range msg {
		idx, found := table.Index(Symbol(b))
		if !found {
			return nil, errors.Wrapf(ErrUnknownSymbol, "symbol %s at offset %d", Symbol(b), i)
		}
		stage := partition(current, probs, prec)
		current = stage[idx]
		if current.High.Cmp(current.Low) <= 0 {
			return nil, errors.Wrapf(ErrArithmeticUnderflow, "interval collapsed at offset %d with %d bits of precision", i, prec)
		}
	}

	final := partition(current, probs, prec)
	lowest, highest := final[0].Low, final[0].High
	for _, iv := range final {
		for _, v := range [2]*big.Float{iv.Low, iv.High} {
			if v.Cmp(lowest) < 0 {
				lowest = v
			}
			if v.Cmp(highest) > 0 {
				highest = v
			}
		}
	}
	value := new(big.Float).SetPrec(prec).Add(lowest, highest)
	value.SetMantExp(value, -1)

	return &ArithmeticResult{
		Value:     value,
		Message:   current,
		Final:     final,
		Precision: prec,
	}, nil
}

// Decode recovers an n-symbol message from value by locating, at each stage,
// the sub-interval that contains it.  The coder must use the same precision
// as the encoding did; the zero-value coder derives it identically.
func (c *ArithmeticCoder) Decode(value *big.Float, table ProbabilityTable, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "arithmetic decode of %d symbols", n)
	}
	if table.Len() == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "arithmetic decode: empty probability table")
	}

	prec := c.PrecisionFor(table, n)
	probs := table.bigProbabilities(prec)
	symbols := table.Symbols()
	current := Interval{
		Low:  new(big.Float).SetPrec(prec),
		High: new(big.Float).SetPrec(prec).SetInt64(1),
	}

	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		stage := partition(current, probs, prec)
		idx := -1
		for j, iv := range stage {
			if value.Cmp(iv.Low) >= 0 && value.Cmp(iv.High) < 0 {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, errors.Wrapf(ErrMalformedSequence, "value %s outside every sub-interval at stage %d", value.Text('g', 10), i)
		}
		out = append(out, byte(symbols[idx]))
		current = stage[idx]
	}
	return out, nil
}

// partition splits iv into contiguous sub-intervals of width
// (High−Low)×p, one per probability, in order.
func partition(iv Interval, probs []*big.Float, prec uint) []Interval {
	domain := iv.Width()
	out := make([]Interval, len(probs))
	low := iv.Low
	for i, p := range probs {
		high := new(big.Float).SetPrec(prec).Mul(domain, p)
		high.Add(high, low)
		out[i] = Interval{Low: low, High: high}
		low = high
	}
	return out
}

// ArithmeticEncode encodes seq against its own ProbabilityTable, in
// first-occurrence order.  EncodedText is the decimal rendering of the value;
// AverageLength is the fixed 8 bits per symbol.
func ArithmeticEncode(seq []byte, opts ...ArithmeticOption) (*Metrics, error) {
	pt, err := Probabilities(seq)
	if err != nil {
		return nil, errors.Wrap(err, "arithmetic")
	}
	res, err := NewArithmeticCoder(opts...).EncodeWithTable(pt, seq)
	if err != nil {
		return nil, errors.Wrap(err, "arithmetic")
	}
	return newMetrics(pt, res.Text(), res.Bits(), fixedAverageLength), nil
}
