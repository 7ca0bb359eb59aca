package runtime

import (
	"math"
	"testing"
)

func TestStringToNumber(t *testing.T) {
	tests := map[string]float64{
		"":          0,
		"  42 ":     42,
		"-1.5":      -1.5,
		"+.5":       0.5,
		"5.":        5,
		"1e3":       1000,
		"1E-2":      0.01,
		"0x10":      16,
		"0XfF":      255,
		"0o17":      15,
		"0b101":     5,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e400":     math.Inf(1),
	}
	for src, want := range tests {
		if got := NewString(src).ToNumber(); got != want {
			t.Fatalf("ToNumber(%q): expected %v, got %v", src, want, got)
		}
	}

	for _, src := range []string{
		"0x1p3", "1_000", "0x_1", "Inf", "inf", "NaN", "-0x10", "0b2", "0o8", "0x",
		".", "e5", "1e", "1e+", "1.2.3", "infinity", "0x1.8",
	} {
		if got := NewString(src).ToNumber(); !math.IsNaN(got) {
			t.Fatalf("ToNumber(%q): expected NaN, got %v", src, got)
		}
	}
}
