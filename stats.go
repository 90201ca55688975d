package entropy

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// Frequency pairs a Symbol with its number of occurrences.
type Frequency struct {
	Symbol Symbol
	Count  int
}

// FrequencyTable maps each distinct Symbol of a sequence to its occurrence
// count.  Entries keep a fixed iteration order: the order in which symbols
// first appeared, or the order supplied to NewFrequencyTable.
type FrequencyTable struct {
	entries []Frequency
	index   map[Symbol]int
	total   int
}

// Frequencies counts each symbol of seq.
func Frequencies(seq []byte) (FrequencyTable, error) {
	if len(seq) == 0 {
		return FrequencyTable{}, errors.Wrap(ErrEmptyInput, "computing frequencies")
	}
	ft := FrequencyTable{index: make(map[Symbol]int)}
	for _, b := range seq {
		sym := Symbol(b)
		i, found := ft.index[sym]
		if !found {
			i = len(ft.entries)
			ft.index[sym] = i
			ft.entries = append(ft.entries, Frequency{Symbol: sym})
		}
		ft.entries[i].Count++
	}
	ft.total = len(seq)
	return ft, nil
}

// NewFrequencyTable builds a table from caller-supplied entries, keeping their
// order.  Symbols must be unique and every count must be positive.
func NewFrequencyTable(entries []Frequency) (FrequencyTable, error) {
	if len(entries) == 0 {
		return FrequencyTable{}, errors.Wrap(ErrEmptyInput, "building frequency table")
	}
	ft := FrequencyTable{
		entries: make([]Frequency, len(entries)),
		index:   make(map[Symbol]int, len(entries)),
	}
	for i, e := range entries {
		if e.Count <= 0 {
			return FrequencyTable{}, errors.Wrapf(ErrInvalidParameter, "symbol %s has count %d", e.Symbol, e.Count)
		}
		if _, found := ft.index[e.Symbol]; found {
			return FrequencyTable{}, errors.Wrapf(ErrInvalidParameter, "duplicate symbol %s", e.Symbol)
		}
		ft.index[e.Symbol] = i
		ft.entries[i] = e
		ft.total += e.Count
	}
	return ft, nil
}

// Len returns the number of distinct symbols.
func (ft FrequencyTable) Len() int {
	return len(ft.entries)
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() int {
	return ft.total
}

// Entries returns a copy of the table's entries in iteration order.
func (ft FrequencyTable) Entries() []Frequency {
	out := make([]Frequency, len(ft.entries))
	copy(out, ft.entries)
	return out
}

// Count returns the number of occurrences of sym, or 0.
func (ft FrequencyTable) Count(sym Symbol) int {
	if i, found := ft.index[sym]; found {
		return ft.entries[i].Count
	}
	return 0
}

// Probabilities derives the ProbabilityTable for this FrequencyTable.
func (ft FrequencyTable) Probabilities() ProbabilityTable {
	return ProbabilityTable{freq: ft}
}

// ProbabilityTable maps each symbol to count/total.  It shares the iteration
// order of the FrequencyTable it was derived from, and never holds a symbol
// with probability 0.
type ProbabilityTable struct {
	freq FrequencyTable
}

// Probabilities computes the ProbabilityTable of seq.
func Probabilities(seq []byte) (ProbabilityTable, error) {
	ft, err := Frequencies(seq)
	if err != nil {
		return ProbabilityTable{}, err
	}
	return ft.Probabilities(), nil
}

// Len returns the number of distinct symbols.
func (pt ProbabilityTable) Len() int {
	return pt.freq.Len()
}

// Symbols returns the table's symbols in iteration order.
func (pt ProbabilityTable) Symbols() []Symbol {
	out := make([]Symbol, len(pt.freq.entries))
	for i, e := range pt.freq.entries {
		out[i] = e.Symbol
	}
	return out
}

// Index returns the position of sym in iteration order.
func (pt ProbabilityTable) Index(sym Symbol) (int, bool) {
	i, found := pt.freq.index[sym]
	return i, found
}

// Prob returns the probability of sym, or 0 if sym is absent.
func (pt ProbabilityTable) Prob(sym Symbol) float64 {
	if pt.freq.total == 0 {
		return 0
	}
	return float64(pt.freq.Count(sym)) / float64(pt.freq.total)
}

// Map returns the table as a plain map.
func (pt ProbabilityTable) Map() map[Symbol]float64 {
	out := make(map[Symbol]float64, len(pt.freq.entries))
	for _, e := range pt.freq.entries {
		out[e.Symbol] = float64(e.Count) / float64(pt.freq.total)
	}
	return out
}

// Entropy returns the Shannon entropy −Σ p·log2(p) in bits per symbol.
func (pt ProbabilityTable) Entropy() float64 {
	var h float64
	for _, e := range pt.freq.entries {
		p := float64(e.Count) / float64(pt.freq.total)
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// bigProbabilities returns count/total for every entry, rounded to prec bits.
func (pt ProbabilityTable) bigProbabilities(prec uint) []*big.Float {
	total := new(big.Float).SetInt64(int64(pt.freq.total))
	out := make([]*big.Float, len(pt.freq.entries))
	for i, e := range pt.freq.entries {
		count := new(big.Float).SetInt64(int64(e.Count))
		out[i] = new(big.Float).SetPrec(prec).Quo(count, total)
	}
	return out
}

// minCount returns the smallest count in the table.
func (pt ProbabilityTable) minCount() int {
	least := 0
	for i, e := range pt.freq.entries {
		if i == 0 || e.Count < least {
			least = e.Count
		}
	}
	return least
}

// Entropy is a shorthand for computing the Shannon entropy of seq.
func Entropy(seq []byte) (float64, error) {
	pt, err := Probabilities(seq)
	if err != nil {
		return 0, err
	}
	return pt.Entropy(), nil
}
