package entropy

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Run is a maximal stretch of Count identical consecutive symbols.
type Run struct {
	Count  int
	Symbol Symbol
}

// RunLengthRuns collapses seq into its runs, in order.
func RunLengthRuns(seq []byte) ([]Run, error) {
	if len(seq) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "run-length encode")
	}
	runs := make([]Run, 0, 8)
	current := Run{Count: 1, Symbol: Symbol(seq[0])}
	for _, b := range seq[1:] {
		if Symbol(b) == current.Symbol {
			current.Count++
			continue
		}
		runs = append(runs, current)
		current = Run{Count: 1, Symbol: Symbol(b)}
	}
	return append(runs, current), nil
}

// ExpandRuns is the inverse of RunLengthRuns.
func ExpandRuns(runs []Run) []byte {
	var b strings.Builder
	for _, run := range runs {
		for i := 0; i < run.Count; i++ {
			b.WriteByte(byte(run.Symbol))
		}
	}
	return []byte(b.String())
}

// RunLengthOption configures RunLengthEncode.
type RunLengthOption func(*runLengthConfig)

type runLengthConfig struct {
	digitCompaction bool
}

// WithDigitCompaction charges 1 bit per run symbol, instead of 8, when every
// symbol of the input is a decimal digit.
func WithDigitCompaction() RunLengthOption {
	return func(c *runLengthConfig) {
		c.digitCompaction = true
	}
}

// RunLengthEncode run-length codes seq.
//
// Every run is charged the same width: a symbol width (8 bits, or 1 under
// WithDigitCompaction for all-digit input) plus ⌈log2(BiggestVector+1)⌉ bits
// for the count.  EncodedText uses the "<count><symbol>,..." form, e.g.
// "4A,3B,2C,1D".
//
func RunLengthEncode(seq []byte, opts ...RunLengthOption) (*Metrics, error) {
	var cfg runLengthConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	runs, err := RunLengthRuns(seq)
	if err != nil {
		return nil, err
	}
	pt, err := Probabilities(seq)
	if err != nil {
		return nil, errors.Wrap(err, "run-length encode")
	}

	biggest := 0
	allDigits := true
	var b strings.Builder
	for i, run := range runs {
		if run.Count > biggest {
			biggest = run.Count
		}
		if !isDigit(run.Symbol) {
			allDigits = false
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(run.Count))
		b.WriteByte(byte(run.Symbol))
	}

	symbolWidth := 8
	if cfg.digitCompaction && allDigits {
		symbolWidth = 1
	}
	bitsAfter := len(runs) * (symbolWidth + bitLength(biggest))

	m := newMetrics(pt, b.String(), bitsAfter, fixedAverageLength)
	m.NumberOfVectors = len(runs)
	m.BiggestVector = biggest
	return m, nil
}
