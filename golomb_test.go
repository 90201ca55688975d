package entropy

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestGolombRemainder(t *testing.T) {
	type testRow struct {
		m     int
		r     int
		width int
		code  Code
	}

	testData := [...]testRow{
		{m: 1, r: 0, width: 0, code: ""},
		{m: 4, r: 0, width: 2, code: "00"},
		{m: 4, r: 3, width: 2, code: "11"},
		{m: 3, r: 0, width: 1, code: "0"},
		{m: 3, r: 1, width: 2, code: "10"},
		{m: 3, r: 2, width: 2, code: "11"},
		{m: 5, r: 0, width: 2, code: "00"},
		{m: 5, r: 2, width: 2, code: "10"},
		{m: 5, r: 3, width: 3, code: "110"},
		{m: 5, r: 4, width: 3, code: "111"},
		{m: 10, r: 5, width: 3, code: "101"},
		{m: 10, r: 6, width: 4, code: "1100"},
	}
	for _, row := range testData {
		t.Run(fmt.Sprintf("m=%d/r=%d", row.m, row.r), func(t *testing.T) {
			width, value := GolombRemainder(row.r, row.m)
			if width != row.width {
				t.Errorf("wrong width:\n\texpect: %d\n\tactual: %d", row.width, width)
			}
			if actual := MakeCode(width, uint64(value)); actual != row.code {
				t.Errorf("wrong code:\n\texpect: %s\n\tactual: %s", row.code, actual)
			}
		})
	}
}

func TestGolombCode_LargeDivisor(t *testing.T) {
	const m = 1<<62 + 1

	type testRow struct {
		n     int
		width int
	}

	testData := [...]testRow{
		{n: 5, width: 62},
		{n: 1<<62 - 2, width: 62},
		{n: 1<<62 - 1, width: 63},
		{n: 1 << 62, width: 63},
		{n: m + 7, width: 62},
	}
	for _, row := range testData {
		t.Run(fmt.Sprintf("n=%d", row.n), func(t *testing.T) {
			width, value := GolombRemainder(row.n%m, m)
			if width != row.width {
				t.Errorf("wrong width:\n\texpect: %d\n\tactual: %d", row.width, width)
			}
			if value < 0 {
				t.Errorf("remainder value %d is negative", value)
			}

			code, err := GolombCode(row.n, m)
			if err != nil {
				t.Fatalf("GolombCode failed: %v", err)
			}
			q, r, err := GolombDecode(code, m)
			if err != nil {
				t.Fatalf("GolombDecode(%s) failed: %v", code, err)
			}
			if q != row.n/m || r != row.n%m {
				t.Errorf("GolombDecode(%s) = (%d, %d), expected (%d, %d)", code, q, r, row.n/m, row.n%m)
			}
		})
	}
}

func TestGolombCode(t *testing.T) {
	type testRow struct {
		n      int
		m      int
		expect Code
	}

	testData := [...]testRow{
		{n: 24, m: 4, expect: "111111000"},
		{n: 7, m: 3, expect: "11010"},
		{n: 0, m: 1, expect: "0"},
		{n: 3, m: 1, expect: "1110"},
		{n: 9, m: 10, expect: "01111"},
	}
	for _, row := range testData {
		t.Run(fmt.Sprintf("n=%d/m=%d", row.n, row.m), func(t *testing.T) {
			actual, err := GolombCode(row.n, row.m)
			if err != nil {
				t.Fatalf("GolombCode failed: %v", err)
			}
			if actual != row.expect {
				t.Errorf("wrong code:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestGolombCode_RoundTrip(t *testing.T) {
	for m := 1; m <= 40; m++ {
		for n := 0; n <= 200; n++ {
			code, err := GolombCode(n, m)
			if err != nil {
				t.Fatalf("GolombCode(%d, %d) failed: %v", n, m, err)
			}
			q, r, err := GolombDecode(code, m)
			if err != nil {
				t.Fatalf("GolombDecode(%s, %d) failed: %v", code, m, err)
			}
			if q != n/m || r != n%m {
				t.Errorf("GolombDecode(%s, %d) = (%d, %d), expected (%d, %d)", code, m, q, r, n/m, n%m)
			}
			if isPowerOfTwo(m) {
				k := bitLength(m) - 1
				if remainderBits := code.Size() - (n/m + 1); remainderBits != k {
					t.Errorf("m=%d n=%d: remainder uses %d bits, expected %d", m, n, remainderBits, k)
				}
			}
		}
	}
}

func TestGolombDecode_Malformed(t *testing.T) {
	type testRow struct {
		code Code
		m    int
	}

	testData := [...]testRow{
		{code: "", m: 4},
		{code: "111", m: 4},
		{code: "10", m: 4},
		{code: "10000", m: 4},
		{code: "01", m: 3},
		{code: "1x00", m: 4},
	}
	for _, row := range testData {
		t.Run(string(row.code), func(t *testing.T) {
			if _, _, err := GolombDecode(row.code, row.m); !errors.Is(err, ErrMalformedSequence) {
				t.Errorf("expected ErrMalformedSequence, got %v", err)
			}
		})
	}
}

func TestGolombEncode_Metrics(t *testing.T) {
	m, err := GolombEncode([]byte("abc"), 4)
	if err != nil {
		t.Fatalf("GolombEncode failed: %v", err)
	}
	if m.EncodedText != Code("111111000") {
		t.Errorf("wrong encoded text:\n\texpect: \"111111000\"\n\tactual: %v", m.EncodedText)
	}
	if m.BitsBefore != 24 || m.BitsAfter != 9 {
		t.Errorf("wrong sizes: bits_before %d, bits_after %d", m.BitsBefore, m.BitsAfter)
	}
	if m.CompressionRatio != 266.7 {
		t.Errorf("wrong compression ratio:\n\texpect: 266.7\n\tactual: %v", m.CompressionRatio)
	}
	if m.Entropy != 1.585 || m.AverageLength != 8 || m.Efficiency != 19.8 {
		t.Errorf("wrong entropy/average_length/efficiency: %v/%v/%v", m.Entropy, m.AverageLength, m.Efficiency)
	}
}

func TestGolombEncode_InvalidParameter(t *testing.T) {
	for _, divisor := range []int{0, -1, -8} {
		if _, err := GolombEncode([]byte("abc"), divisor); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("m=%d: expected ErrInvalidParameter, got %v", divisor, err)
		}
	}
	if _, err := GolombCode(-1, 4); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := GolombEncode(nil, 4); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
