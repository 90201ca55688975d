package entropy

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// noChild marks a leaf in the node arena.
const noChild = int32(-1)

// HuffmanTree is a binary prefix-code tree built from symbol frequencies.
//
// Nodes live in an arena indexed by int32.  Leaves occupy indices
// [0, alphabet size) in the FrequencyTable's iteration order; each internal
// node is appended as it is created.  The arena index doubles as the
// insertion sequence number used to break frequency ties, so a given
// FrequencyTable always produces the same tree.
type HuffmanTree struct {
	nodes   []huffmanNode
	root    int32
	symbols []Symbol
	codes   map[Symbol]Code
	minSize int
	maxSize int
}

type huffmanNode struct {
	freq   int
	symbol Symbol
	left   int32
	right  int32
}

func (n huffmanNode) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// NewHuffmanTree builds the tree for ft.
//
// The two lowest-frequency nodes are popped repeatedly; the first popped
// becomes the left ("0") child and the second the right ("1") child.  Equal
// frequencies pop in ascending arena index, i.e. leaves in first-occurrence
// order ahead of any internal node created later.
//
// An alphabet of one symbol yields a lone leaf as root.  That symbol is
// assigned the single-bit code "0" so every symbol still costs one bit.
//
func NewHuffmanTree(ft FrequencyTable) (*HuffmanTree, error) {
	numSymbols := ft.Len()
	if numSymbols == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "building Huffman tree")
	}

	t := &HuffmanTree{
		nodes:   make([]huffmanNode, 0, 2*numSymbols-1),
		symbols: make([]Symbol, 0, numSymbols),
		codes:   make(map[Symbol]Code, numSymbols),
	}
	for _, e := range ft.entries {
		t.nodes = append(t.nodes, huffmanNode{freq: e.Count, symbol: e.Symbol, left: noChild, right: noChild})
		t.symbols = append(t.symbols, e.Symbol)
	}

	t.build()
	t.assignCodes()

	assert.Assertf(len(t.nodes) == 2*numSymbols-1, "arena holds %d nodes for %d symbols", len(t.nodes), numSymbols)
	assert.Assertf(len(t.codes) == numSymbols, "%d codes for %d symbols", len(t.codes), numSymbols)
	return t, nil
}

// build processes the min-heap by popping two nodes, combining them into a
// new internal node, and pushing that node back, until only the root is left.
func (t *HuffmanTree) build() {
	h := nodeHeap{nodes: t.nodes, list: make([]int32, len(t.nodes))}
	for i := range h.list {
		h.list[i] = int32(i)
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		t.nodes = append(t.nodes, huffmanNode{
			freq:  t.nodes[a].freq + t.nodes[b].freq,
			left:  a,
			right: b,
		})
		h.nodes = t.nodes
		heap.Push(&h, int32(len(t.nodes)-1))
	}

	t.root = heap.Pop(&h).(int32)
}

// assignCodes walks the tree with an explicit stack; tree depth is bounded
// only by the alphabet size.
//
// We use stackItem.x to keep track of where we are in the tree walk:
//   x=0 → We just arrived at stackItem for the first time
//   x=1 → We have already processed the left child
//   x=2 → We have already processed both children
//
// The shared prefix buffer always holds the path from the root to the node
// on top of the stack.
//
func (t *HuffmanTree) assignCodes() {
	if t.nodes[t.root].isLeaf() {
		t.setCode(t.nodes[t.root].symbol, "0")
		return
	}

	type stackItem struct {
		id int32
		x  byte
	}

	stack := make([]stackItem, 0, len(t.symbols))
	prefix := make([]byte, 0, len(t.symbols))

	processChild := func(child int32) {
		node := t.nodes[child]
		if node.isLeaf() {
			t.setCode(node.symbol, Code(prefix))
			return
		}
		stack = append(stack, stackItem{id: child})
	}

	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		node := t.nodes[top.id]
		switch x {
		case 0:
			prefix = append(prefix, '0')
			processChild(node.left)
		case 1:
			prefix[len(prefix)-1] = '1'
			processChild(node.right)
		case 2:
			prefix = prefix[:len(prefix)-1]
			stack = stack[:len(stack)-1]
		}
	}
}

func (t *HuffmanTree) setCode(sym Symbol, code Code) {
	size := code.Size()
	if len(t.codes) == 0 {
		t.minSize, t.maxSize = size, size
	} else if t.minSize > size {
		t.minSize = size
	} else if t.maxSize < size {
		t.maxSize = size
	}
	t.codes[sym] = code
}

// Code returns the code assigned to sym.
func (t *HuffmanTree) Code(sym Symbol) (Code, bool) {
	code, found := t.codes[sym]
	return code, found
}

// Codes returns a copy of the symbol-to-code table.
func (t *HuffmanTree) Codes() map[Symbol]Code {
	return maps.Clone(t.codes)
}

// MinSize is the bit length of the shortest code.
func (t *HuffmanTree) MinSize() int {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *HuffmanTree) MaxSize() int {
	return t.maxSize
}

// Encode concatenates the code of each symbol in seq.
func (t *HuffmanTree) Encode(seq []byte) (Code, error) {
	var b strings.Builder
	for i, c := range seq {
		code, found := t.codes[Symbol(c)]
		if !found {
			return "", errors.Wrapf(ErrUnknownSymbol, "symbol %s at offset %d", Symbol(c), i)
		}
		b.WriteString(string(code))
	}
	return Code(b.String()), nil
}

// AverageLength returns Σ len(code(s))·p(s) over the tree's alphabet.
func (t *HuffmanTree) AverageLength(pt ProbabilityTable) float64 {
	var sum float64
	for _, sym := range t.symbols {
		sum += float64(t.codes[sym].Size()) * pt.Prob(sym)
	}
	return sum
}

// Listing returns one "<symbol> : <code>" line per symbol in iteration order.
func (t *HuffmanTree) Listing() string {
	var b strings.Builder
	for _, sym := range t.symbols {
		fmt.Fprintf(&b, "%c : %s\n", byte(sym), string(t.codes[sym]))
	}
	return b.String()
}

// Dump writes a programmer-readable debugging dump of the tree's code table
// to the given writer.
func (t *HuffmanTree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("HuffmanTree{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for _, sym := range t.symbols {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", sym, t.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// HuffmanEncode builds a Huffman code for seq and encodes it.  The Metrics
// record carries the concatenated bit string as EncodedText and the per-symbol
// code table as Codes.
func HuffmanEncode(seq []byte) (*Metrics, error) {
	ft, err := Frequencies(seq)
	if err != nil {
		return nil, errors.Wrap(err, "huffman")
	}
	t, err := NewHuffmanTree(ft)
	if err != nil {
		return nil, errors.Wrap(err, "huffman")
	}
	encoded, err := t.Encode(seq)
	if err != nil {
		return nil, errors.Wrap(err, "huffman")
	}

	pt := ft.Probabilities()
	avg := t.AverageLength(pt)
	m := newMetrics(pt, encoded, encoded.Size(), avg)
	m.AverageLength = round(avg, 2)
	m.Codes = t.Codes()
	return m, nil
}

// type nodeHeap {{{

// nodeHeap orders arena indices by (freq, index) ascending.
type nodeHeap struct {
	nodes []huffmanNode
	list  []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	fa, fb := h.nodes[a].freq, h.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
