package layout

import (
	"image"

	"versailles/pkg/css"
)

// DisplayItemKind selects the paint operation of a display item.
type DisplayItemKind int

const (
	DisplaySolidColor DisplayItemKind = iota
	DisplayBorder
	DisplayText
	DisplayImage
)

// DisplaySection orders items within one stacking context: backgrounds and
// borders paint under content regardless of tree order.
type DisplaySection int

const (
	SectionBackgroundAndBorders DisplaySection = iota
	SectionContent
)

// DisplayItem is one paint operation in stacking-context coordinates.
// Only the fields relevant to the kind are set.
type DisplayItem struct {
	Kind    DisplayItemKind
	Bounds  Rect
	Section DisplaySection

	Color css.Color

	// DisplayText
	Text     string
	FontSize float64
	Bold     bool

	// DisplayBorder
	Widths css.BoxEdge

	// DisplayImage
	Image image.Image
}

// DisplayListBuildState accumulates the display items of one stacking
// context while its flow subtree is walked.
type DisplayListBuildState struct {
	Items []DisplayItem
}

func NewDisplayListBuildState() *DisplayListBuildState {
	return &DisplayListBuildState{}
}

// AddItem appends one paint item.
func (s *DisplayListBuildState) AddItem(item DisplayItem) {
	s.Items = append(s.Items, item)
}

// ItemsInPaintOrder returns the background-and-borders section before the
// content section, each in insertion order.
func (s *DisplayListBuildState) ItemsInPaintOrder() []DisplayItem {
	ordered := make([]DisplayItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Section == SectionBackgroundAndBorders {
			ordered = append(ordered, item)
		}
	}
	for _, item := range s.Items {
		if item.Section == SectionContent {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
