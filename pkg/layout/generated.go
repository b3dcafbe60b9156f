package layout

import (
	"strconv"
	"strings"

	"versailles/pkg/css"
)

// GeneratedContentKind tags content whose text depends on document state
// (counters) and must be resolved by a generated-content pass, not here.
type GeneratedContentKind int

const (
	// GeneratedContentListItem is marker text derived from the list-item
	// counter (decimal, lower-alpha, custom counter styles, ...).
	GeneratedContentListItem GeneratedContentKind = iota
)

// GeneratedContentInfo rides on a fragment whose text is externally resolved.
type GeneratedContentInfo struct {
	Kind GeneratedContentKind
}

// StaticRepresentation returns the fixed glyph for list-style-type keywords
// that need no counter resolution. The second result is false for every
// other keyword, including none.
func StaticRepresentation(t css.ListStyleType) (rune, bool) {
	switch t {
	case css.ListStyleTypeDisc:
		return '•', true
	case css.ListStyleTypeCircle:
		return '◦', true
	case css.ListStyleTypeSquare:
		return '◾', true
	case css.ListStyleTypeDisclosureOpen:
		return '▾', true
	case css.ListStyleTypeDisclosureClosed:
		return '▸', true
	}
	return 0, false
}

// MarkerContentKind classifies what a marker fragment will hold.
type MarkerContentKind int

const (
	MarkerNone MarkerContentKind = iota
	MarkerStaticText
	MarkerGeneratedContent
)

// MarkerContent is the classifier result for one list-style-type value.
type MarkerContent struct {
	Kind  MarkerContentKind
	Glyph rune                  // set for MarkerStaticText
	Info  *GeneratedContentInfo // set for MarkerGeneratedContent
}

// MarkerContentForListStyleType classifies a list-style-type keyword.
// Values outside the fixed glyph set are never an error: they classify as
// generated content for the external counter-resolution pass to fill in.
func MarkerContentForListStyleType(t css.ListStyleType) MarkerContent {
	if t == css.ListStyleTypeNone {
		return MarkerContent{Kind: MarkerNone}
	}
	if glyph, ok := StaticRepresentation(t); ok {
		return MarkerContent{Kind: MarkerStaticText, Glyph: glyph}
	}
	return MarkerContent{
		Kind: MarkerGeneratedContent,
		Info: &GeneratedContentInfo{Kind: GeneratedContentListItem},
	}
}

// CounterText renders a counter value in the given style, including the
// "." suffix marker text carries. Counter styles without a renderer here
// fall back to decimal, and non-positive values always render as plain
// numbers, as browsers do.
func CounterText(t css.ListStyleType, value int) string {
	if value <= 0 {
		return strconv.Itoa(value) + "."
	}
	switch t {
	case css.ListStyleTypeLowerAlpha:
		return alphabetic(value, 'a') + "."
	case css.ListStyleTypeUpperAlpha:
		return alphabetic(value, 'A') + "."
	case css.ListStyleTypeLowerRoman:
		return strings.ToLower(roman(value)) + "."
	case css.ListStyleTypeUpperRoman:
		return roman(value) + "."
	}
	return strconv.Itoa(value) + "."
}

// alphabetic renders 1 → a, 26 → z, 27 → aa.
func alphabetic(value int, base rune) string {
	var runes []rune
	for value > 0 {
		value--
		runes = append([]rune{base + rune(value%26)}, runes...)
		value /= 26
	}
	return string(runes)
}

var romanSteps = []struct {
	n int
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(value int) string {
	var sb strings.Builder
	for _, step := range romanSteps {
		for value >= step.n {
			sb.WriteString(step.s)
			value -= step.n
		}
	}
	return sb.String()
}
