package entropy

import (
	"github.com/pkg/errors"
)

// Decode reverses Encode by walking the tree from the root, one bit at a
// time, emitting a symbol at every leaf.
//
// For a single-symbol tree, each "0" bit decodes to the lone symbol.
//
func (t *HuffmanTree) Decode(bits Code) ([]byte, error) {
	root := t.nodes[t.root]
	if root.isLeaf() {
		out := make([]byte, 0, len(bits))
		for i := 0; i < len(bits); i++ {
			if bits[i] != '0' {
				return nil, errors.Wrapf(ErrMalformedSequence, "unexpected bit %q at offset %d", bits[i], i)
			}
			out = append(out, byte(root.symbol))
		}
		return out, nil
	}

	var out []byte
	id := t.root
	for i := 0; i < len(bits); i++ {
		node := t.nodes[id]
		switch bits[i] {
		case '0':
			id = node.left
		case '1':
			id = node.right
		default:
			return nil, errors.Wrapf(ErrMalformedSequence, "invalid bit %q at offset %d", bits[i], i)
		}
		if next := t.nodes[id]; next.isLeaf() {
			out = append(out, byte(next.symbol))
			id = t.root
		}
	}
	if id != t.root {
		return nil, errors.Wrapf(ErrMalformedSequence, "bit string ends inside a code after %d symbols", len(out))
	}
	return out, nil
}
