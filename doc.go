// Package entropy implements a small suite of entropy and dictionary coders:
// Huffman, arithmetic, Golomb, LZW and run-length coding.  Each coder takes a
// whole symbol sequence, encodes it in memory, and reports a uniform Metrics
// record (entropy, bits before/after, compression ratio, average code length
// and efficiency).
//
// All coders are pure functions of their input.  Every call owns its own tree,
// dictionary or interval state, so concurrent calls need no locking.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Arithmetic_coding>
//
//     <https://en.wikipedia.org/wiki/Golomb_coding>
//
//     <https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Welch>
//
package entropy
