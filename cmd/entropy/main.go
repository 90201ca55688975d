// Command entropy runs one coder over a file (or stdin) and prints its
// metrics record.
//
//    go run ./cmd/entropy -codec lzw input.txt
//    echo -n AAAABBBCCD | go run ./cmd/entropy -codec runlength -format yaml
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	configPath      = flag.String("config", "", "TOML file with default settings")
	codec           = flag.String("codec", "", "huffman, arithmetic, golomb, lzw or runlength")
	golombDivisor   = flag.Int("m", 0, "Golomb divisor M")
	format          = flag.String("format", "", "output format: json or yaml")
	digitCompaction = flag.Bool("digits", false, "run-length: 1-bit symbols when the input is all digits")
	precision       = flag.Uint("precision", 0, "arithmetic: fixed mantissa bits (0 derives it from the input)")
	packed          = flag.Bool("packed", false, "report the packed size of the encoded payload")
	baseline        = flag.Bool("baseline", false, "report the zstd-compressed size for comparison")
	listing         = flag.Bool("listing", false, "huffman: include the \"<symbol> : <code>\" table")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [filename]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "codec":
			cfg.Codec = *codec
		case "m":
			cfg.GolombDivisor = *golombDivisor
		case "format":
			cfg.Format = *format
		case "digits":
			cfg.DigitCompaction = *digitCompaction
		case "precision":
			cfg.Precision = *precision
		case "packed":
			cfg.Packed = *packed
		case "baseline":
			cfg.Baseline = *baseline
		case "listing":
			cfg.Listing = *listing
		}
	})

	var input []byte
	if name := flag.Arg(0); name != "" {
		input, err = os.ReadFile(name)
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(os.Stdout, cfg, input); err != nil {
		log.Fatalf("%v", err)
	}
}
