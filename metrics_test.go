package entropy

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func TestMetrics_MarshalJSON(t *testing.T) {
	m, err := RunLengthEncode([]byte("AAAABBBCCD"))
	if err != nil {
		t.Fatalf("RunLengthEncode failed: %v", err)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	keys := maps.Keys(decoded)
	slices.Sort(keys)
	expectKeys := []string{
		"average_length",
		"biggest_vector",
		"bits_after",
		"bits_before",
		"compression ratio (%)",
		"efficiency",
		"encoded_text",
		"entropy",
		"number_of_vectors",
		"probabilities",
	}
	if diff := cmp.Diff(expectKeys, keys); diff != "" {
		t.Errorf("wrong keys (-expect +actual):\n%s", diff)
	}

	expectProbs := map[string]interface{}{"A": 0.4, "B": 0.3, "C": 0.2, "D": 0.1}
	if diff := cmp.Diff(expectProbs, decoded["probabilities"]); diff != "" {
		t.Errorf("wrong probabilities (-expect +actual):\n%s", diff)
	}
}

func TestMetrics_UnmarshalSymbolKeys(t *testing.T) {
	var m Metrics
	if err := json.Unmarshal([]byte(`{"probabilities":{"x":0.5,"y":0.5}}`), &m); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(map[Symbol]float64{'x': 0.5, 'y': 0.5}, m.Probabilities); diff != "" {
		t.Errorf("wrong probabilities (-expect +actual):\n%s", diff)
	}
}

func TestMetrics_JSONRoundTripHighBytes(t *testing.T) {
	m, err := HuffmanEncode([]byte{0x80, 0x81, 0x81, 0xfe})
	if err != nil {
		t.Fatalf("HuffmanEncode failed: %v", err)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded Metrics
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(m.Probabilities, decoded.Probabilities); diff != "" {
		t.Errorf("wrong probabilities (-expect +actual):\n%s", diff)
	}
	if diff := cmp.Diff(m.Codes, decoded.Codes); diff != "" {
		t.Errorf("wrong codes (-expect +actual):\n%s", diff)
	}
	if len(decoded.Probabilities) != 3 {
		t.Errorf("expected 3 distinct symbols, got %d", len(decoded.Probabilities))
	}
}

// Every coder rejects empty input without a partial record.
func TestCoders_EmptyInput(t *testing.T) {
	coders := map[string]func([]byte) (*Metrics, error){
		"huffman":    HuffmanEncode,
		"arithmetic": func(seq []byte) (*Metrics, error) { return ArithmeticEncode(seq) },
		"golomb":     func(seq []byte) (*Metrics, error) { return GolombEncode(seq, 4) },
		"lzw":        LZWEncode,
		"runlength":  func(seq []byte) (*Metrics, error) { return RunLengthEncode(seq) },
	}
	names := maps.Keys(coders)
	slices.Sort(names)
	for _, name := range names {
		encode := coders[name]
		t.Run(name, func(t *testing.T) {
			m, err := encode(nil)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("expected ErrEmptyInput, got %v", err)
			}
			if m != nil {
				t.Errorf("expected no metrics, got %+v", m)
			}
		})
	}
}

// Coders share no state, so concurrent calls give the same answers as
// sequential ones.
func TestCoders_Concurrent(t *testing.T) {
	inputs := [][]byte{
		[]byte("AAAABBBCCD"),
		[]byte("wabbawabba"),
		[]byte("abracadabra"),
		[]byte("TOBEORNOTTOBEORTOBEORNOT"),
	}
	encode := func(seq []byte) []*Metrics {
		var out []*Metrics
		for _, fn := range []func() (*Metrics, error){
			func() (*Metrics, error) { return HuffmanEncode(seq) },
			func() (*Metrics, error) { return ArithmeticEncode(seq) },
			func() (*Metrics, error) { return GolombEncode(seq, 5) },
			func() (*Metrics, error) { return LZWEncode(seq) },
			func() (*Metrics, error) { return RunLengthEncode(seq) },
		} {
			m, err := fn()
			if err != nil {
				t.Errorf("encode %q failed: %v", seq, err)
				return nil
			}
			out = append(out, m)
		}
		return out
	}

	expect := make([][]*Metrics, len(inputs))
	for i, seq := range inputs {
		expect[i] = encode(seq)
	}

	actual := make([][]*Metrics, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actual[i] = encode(inputs[i])
		}(i)
	}
	wg.Wait()

	if diff := cmp.Diff(expect, actual); diff != "" {
		t.Errorf("concurrent results differ (-sequential +concurrent):\n%s", diff)
	}
}
