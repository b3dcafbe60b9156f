package text

import (
	"math"
	"reflect"
	"testing"
)

// Font files are not present in test environments, so measurement goes
// through the estimate path: width = len * size * 0.6, height = size * 1.2.
const missingFont = "/nonexistent/fonts/missing.ttf"

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeasureText_EstimateFallback(t *testing.T) {
	w, h := MeasureText("hello", 10, missingFont)
	if !almostEqual(w, 30) {
		t.Errorf("expected estimated width 30, got %v", w)
	}
	if !almostEqual(h, 12) {
		t.Errorf("expected estimated height 12, got %v", h)
	}
}

func TestBreakTextIntoLines_FitsOneLine(t *testing.T) {
	lines := BreakTextIntoLines("short", 10, missingFont, 100, 100)
	if !reflect.DeepEqual(lines, []string{"short"}) {
		t.Errorf("expected single line, got %v", lines)
	}
}

func TestBreakTextIntoLines_WrapsWords(t *testing.T) {
	// 6px per character at size 10: "aaaa bbbb" is 54px, the full text 84px.
	lines := BreakTextIntoLines("aaaa bbbb cccc", 10, missingFont, 60, 60)
	want := []string{"aaaa bbbb", "cccc"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %v, got %v", want, lines)
	}
}

func TestBreakTextIntoLines_NarrowFirstLine(t *testing.T) {
	lines := BreakTextIntoLines("aaaa bbbb cccc", 10, missingFont, 30, 100)
	want := []string{"aaaa", "bbbb cccc"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %v, got %v", want, lines)
	}
}

func TestBreakTextIntoLines_PreservesLeadingSpace(t *testing.T) {
	lines := BreakTextIntoLines(" more text", 10, missingFont, 40, 40)
	want := []string{" more", "text"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %v, got %v", want, lines)
	}
}

func TestSplitIntoWords(t *testing.T) {
	words := splitIntoWords("  one\ttwo\nthree ")
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %v, got %v", want, words)
	}
	if got := splitIntoWords("   "); len(got) != 0 {
		t.Errorf("expected no words for whitespace, got %v", got)
	}
}

func TestFontPath(t *testing.T) {
	fc := FontConfig{
		Regular:    "r.ttf",
		Bold:       "b.ttf",
		Italic:     "i.ttf",
		BoldItalic: "bi.ttf",
		Monospace:  "m.otf",
		MonoBold:   "mb.otf",
		Ahem:       "ahem.ttf",
	}

	tests := []struct {
		bold, italic, mono, ahem bool
		want                     string
	}{
		{false, false, false, false, "r.ttf"},
		{true, false, false, false, "b.ttf"},
		{false, true, false, false, "i.ttf"},
		{true, true, false, false, "bi.ttf"},
		{false, false, true, false, "m.otf"},
		{true, false, true, false, "mb.otf"},
		{true, true, true, true, "ahem.ttf"},
	}
	for _, tt := range tests {
		if got := fc.FontPath(tt.bold, tt.italic, tt.mono, tt.ahem); got != tt.want {
			t.Errorf("FontPath(%v,%v,%v,%v) = %q, want %q",
				tt.bold, tt.italic, tt.mono, tt.ahem, got, tt.want)
		}
	}

	// A config without a mono font falls back to the proportional family.
	noMono := FontConfig{Regular: "r.ttf", Bold: "b.ttf"}
	if got := noMono.FontPath(false, false, true, false); got != "r.ttf" {
		t.Errorf("expected proportional fallback, got %q", got)
	}
}
