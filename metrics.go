package entropy

// Metrics is the uniform report returned by every coder.  Its JSON keys are
// stable across coders so callers can render any result the same way.
type Metrics struct {
	// EncodedText holds the coder-specific payload: a Code for Huffman and
	// Golomb, a decimal string for arithmetic coding, a []int for LZW, and
	// the "<count><symbol>,..." form for run-length coding.
	EncodedText interface{} `json:"encoded_text"`

	BitsBefore       int                `json:"bits_before"`
	BitsAfter        int                `json:"bits_after"`
	CompressionRatio float64            `json:"compression ratio (%)"`
	Probabilities    map[Symbol]float64 `json:"probabilities"`
	Entropy          float64            `json:"entropy"`
	AverageLength    float64            `json:"average_length"`
	Efficiency       float64            `json:"efficiency"`

	Codes           map[Symbol]Code `json:"codes,omitempty"`
	NumberOfVectors int             `json:"number_of_vectors,omitempty"`
	BiggestVector   int             `json:"biggest_vector,omitempty"`
}

// fixedAverageLength is the per-symbol length reported by coders that do not
// assign individual symbol codes.
const fixedAverageLength = 8

// newMetrics fills in the fields shared by every coder.  bitsBefore is always
// 8 bits per input symbol.
func newMetrics(pt ProbabilityTable, encoded interface{}, bitsAfter int, averageLength float64) *Metrics {
	bitsBefore := pt.freq.total * 8
	h := pt.Entropy()
	m := &Metrics{
		EncodedText:   encoded,
		BitsBefore:    bitsBefore,
		BitsAfter:     bitsAfter,
		Probabilities: pt.Map(),
		Entropy:       round(h, 3),
		AverageLength: averageLength,
	}
	if bitsAfter > 0 {
		m.CompressionRatio = round(float64(bitsBefore)/float64(bitsAfter)*100, 1)
	}
	if averageLength > 0 {
		m.Efficiency = round(h/averageLength*100, 1)
	}
	return m
}
