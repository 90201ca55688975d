package main

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/chronos-tachyon/entropy"
)

// report is the rendered output: the Metrics record plus optional extras.
type report struct {
	*entropy.Metrics

	// PackedBytes is the size of the encoded payload once its bits are
	// packed into bytes.
	PackedBytes int `json:"packed_bytes,omitempty"`

	// ZstdBits is the size of the same input compressed with zstd, for
	// comparison.
	ZstdBits int `json:"zstd_bits,omitempty"`

	// Listing is the Huffman code table, one "<symbol> : <code>" line per
	// symbol.
	Listing string `json:"listing,omitempty"`
}

func encode(cfg config, input []byte) (*entropy.Metrics, error) {
	switch cfg.Codec {
	case "huffman":
		return entropy.HuffmanEncode(input)
	case "arithmetic":
		var opts []entropy.ArithmeticOption
		if cfg.Precision != 0 {
			opts = append(opts, entropy.WithPrecision(cfg.Precision))
		}
		return entropy.ArithmeticEncode(input, opts...)
	case "golomb":
		return entropy.GolombEncode(input, cfg.GolombDivisor)
	case "lzw":
		return entropy.LZWEncode(input)
	case "runlength", "rle":
		var opts []entropy.RunLengthOption
		if cfg.DigitCompaction {
			opts = append(opts, entropy.WithDigitCompaction())
		}
		return entropy.RunLengthEncode(input, opts...)
	default:
		return nil, errors.Wrapf(entropy.ErrInvalidParameter, "unknown codec %q", cfg.Codec)
	}
}

func packedSize(m *entropy.Metrics) (int, error) {
	switch payload := m.EncodedText.(type) {
	case entropy.Code:
		data, err := payload.Pack()
		return len(data), err
	case []int:
		data, _, err := entropy.LZWPack(payload)
		return len(data), err
	default:
		return 0, nil
	}
}

func huffmanListing(input []byte) (string, error) {
	ft, err := entropy.Frequencies(input)
	if err != nil {
		return "", err
	}
	tree, err := entropy.NewHuffmanTree(ft)
	if err != nil {
		return "", err
	}
	return tree.Listing(), nil
}

func zstdBits(input []byte) (int, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return 0, errors.Wrap(err, "creating zstd encoder")
	}
	defer enc.Close()
	return len(enc.EncodeAll(input, nil)) * 8, nil
}

func run(w io.Writer, cfg config, input []byte) error {
	m, err := encode(cfg, input)
	if err != nil {
		return err
	}

	r := report{Metrics: m}
	if cfg.Packed {
		if r.PackedBytes, err = packedSize(m); err != nil {
			return err
		}
	}
	if cfg.Baseline {
		if r.ZstdBits, err = zstdBits(input); err != nil {
			return err
		}
	}
	if cfg.Listing && cfg.Codec == "huffman" {
		if r.Listing, err = huffmanListing(input); err != nil {
			return err
		}
	}

	var out []byte
	switch cfg.Format {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "rendering json")
		}
		out = buf.Bytes()
	case "yaml":
		if out, err = yaml.Marshal(r); err != nil {
			return errors.Wrap(err, "rendering yaml")
		}
	default:
		return errors.Wrapf(entropy.ErrInvalidParameter, "unknown format %q", cfg.Format)
	}
	_, err = w.Write(out)
	return err
}
