package offset

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want uint64
	}{
		{"explicit hex", "0x1A", 26},
		{"upper prefix", "0X1a", 26},
		{"hex by letter", "1A", 26},
		{"lower hex letter", "ff", 255},
		{"decimal string", "10", 10},
		{"surrounding space", "  0x1000 ", 4096},
		{"unparseable", "zz", 0},
		{"empty", "", 0},
		{"bare prefix", "0x", 0},
		{"leading digits only", "12abz", 0x12ab},
		{"decimal with suffix", "42px", 42},
		{"negative decimal", "-5", 0},
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"negative int", -3, 0},
		{"uint64", uint64(1 << 40), 1 << 40},
		{"float", float64(16), 16},
		{"fractional float", 16.9, 16},
		{"json number", json.Number("128"), 128},
		{"bool", true, 0},
		{"nil", nil, 0},
		{"slice", []any{1}, 0},
		{"overflow", "0x1ffffffffffffffff", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%#v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNumericPassthrough(t *testing.T) {
	for _, n := range []uint64{0, 1, 16, 4096, 1<<63 + 5} {
		if got := Parse(n); got != n {
			t.Errorf("Parse(%d) = %d", n, got)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		v     uint64
		upper string
		lower string
	}{
		{0, "0x0", "0x0"},
		{16, "0x10", "0x10"},
		{26, "0x1A", "0x1a"},
		{0xDEADBEEF, "0xDEADBEEF", "0xdeadbeef"},
	}
	for _, tt := range tests {
		if got := Hex(tt.v); got != tt.upper {
			t.Errorf("Hex(%d) = %q, want %q", tt.v, got, tt.upper)
		}
		if got := LowerHex(tt.v); got != tt.lower {
			t.Errorf("LowerHex(%d) = %q, want %q", tt.v, got, tt.lower)
		}
	}
}
