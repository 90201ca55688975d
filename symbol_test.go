package entropy

import (
	"testing"
)

func TestSymbol_MarshalText(t *testing.T) {
	type testRow struct {
		sym    Symbol
		expect string
	}

	testData := [...]testRow{
		{sym: 'a', expect: "a"},
		{sym: ' ', expect: " "},
		{sym: '~', expect: "~"},
		{sym: '\\', expect: `\\`},
		{sym: 0x00, expect: `\x00`},
		{sym: '\n', expect: `\x0a`},
		{sym: 0x7f, expect: `\x7f`},
		{sym: 0x80, expect: `\x80`},
		{sym: 0xfe, expect: `\xfe`},
	}
	for _, row := range testData {
		t.Run(row.expect, func(t *testing.T) {
			raw, err := row.sym.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText failed: %v", err)
			}
			if actual := string(raw); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
			var back Symbol
			if err := back.UnmarshalText(raw); err != nil {
				t.Fatalf("UnmarshalText failed: %v", err)
			}
			if back != row.sym {
				t.Errorf("wrong symbol:\n\texpect: %#x\n\tactual: %#x", byte(row.sym), byte(back))
			}
		})
	}
}

func TestSymbol_MarshalTextAllBytes(t *testing.T) {
	seen := make(map[string]Symbol, 256)
	for i := 0; i < 256; i++ {
		sym := Symbol(i)
		raw, err := sym.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%#x) failed: %v", i, err)
		}
		if prev, found := seen[string(raw)]; found {
			t.Errorf("symbols %#x and %#x both render as %q", byte(prev), i, raw)
		}
		seen[string(raw)] = sym
	}
}

func TestSymbol_UnmarshalTextInvalid(t *testing.T) {
	for _, text := range []string{"", "ab", `\`, `\x`, `\xzz`, `\x100`, "\x80"} {
		var sym Symbol
		if err := sym.UnmarshalText([]byte(text)); err == nil {
			t.Errorf("UnmarshalText(%q) should fail, got %#x", text, byte(sym))
		}
	}
}
