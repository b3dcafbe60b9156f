package layout

import (
	"image"
	"strings"

	"versailles/pkg/css"
	"versailles/pkg/html"
	"versailles/pkg/text"
)

// ReplacedInfo carries replaced content, such as a list-style-image marker.
// Image may be nil when only the dimensions are known.
type ReplacedInfo struct {
	Image         image.Image
	NaturalWidth  float64
	NaturalHeight float64
}

// Fragment is a positioned content box. The style handle is shared and
// immutable once computed; several fragments may hold the same handle.
// BorderBox is written once per layout pass, in coordinates relative to the
// owning flow's border box (marker fragments routinely sit at negative
// inline offsets, outside the flow).
type Fragment struct {
	Style *css.Style
	Node  *html.Node // nil for generated and anonymous content
	Text  string

	// Generated is set when the text must be resolved by an external
	// generated-content pass (counter-derived marker text).
	Generated *GeneratedContentInfo

	// Replaced is set for image content.
	Replaced *ReplacedInfo

	BorderBox LogicalRect

	// Cached intrinsic sizes (computed on demand)
	intrinsicSizes *IntrinsicInlineSizes
}

// IntrinsicInlineSizes returns the fragment's content-based inline sizes,
// computing and caching them on first use. An explicit style width overrides
// measurement.
func (f *Fragment) IntrinsicInlineSizes(ctx *Context) IntrinsicInlineSizes {
	if f.intrinsicSizes != nil {
		return *f.intrinsicSizes
	}

	var sizes IntrinsicInlineSizes
	switch {
	case f.Replaced != nil:
		sizes.MinimumInlineSize = f.Replaced.NaturalWidth
		sizes.PreferredInlineSize = f.Replaced.NaturalWidth
	case f.Text != "":
		fontSize := 16.0
		if f.Style != nil {
			fontSize = f.Style.GetFontSize()
		}
		fontPath := ctx.fontPath(f.Style)
		preferred, _ := text.MeasureText(f.Text, fontSize, fontPath)
		sizes.PreferredInlineSize = preferred
		for _, word := range strings.Fields(f.Text) {
			w, _ := text.MeasureText(word, fontSize, fontPath)
			if w > sizes.MinimumInlineSize {
				sizes.MinimumInlineSize = w
			}
		}
	}

	if f.Style != nil {
		if width, ok := f.Style.GetLength("width"); ok {
			sizes.MinimumInlineSize = width
			sizes.PreferredInlineSize = width
		}
	}

	f.intrinsicSizes = &sizes
	return sizes
}

// RepairStyle swaps in a new computed style handle and drops measurements
// derived from the old one.
func (f *Fragment) RepairStyle(newStyle *css.Style) {
	f.Style = newStyle
	f.intrinsicSizes = nil
}

// AssignReplacedInlineSizeIfNecessary resolves the border-box inline size
// of replaced content; percentage widths resolve against the container.
// Non-replaced fragments are untouched.
func (f *Fragment) AssignReplacedInlineSizeIfNecessary(containerInlineSize float64) {
	if f.Replaced == nil {
		return
	}
	f.BorderBox.InlineSize = f.replacedInlineSize(containerInlineSize)
}

func (f *Fragment) replacedInlineSize(containerInlineSize float64) float64 {
	if f.Style != nil {
		if w, isPct, ok := f.Style.GetLengthOrPercent("width"); ok {
			if isPct {
				return w * containerInlineSize
			}
			return w
		}
		// Height alone scales the width through the natural aspect ratio.
		if h, ok := f.Style.GetLength("height"); ok && f.Replaced.NaturalHeight > 0 {
			return f.Replaced.NaturalWidth * h / f.Replaced.NaturalHeight
		}
	}
	return f.Replaced.NaturalWidth
}

// AssignReplacedBlockSizeIfNecessary resolves the border-box block size of
// replaced content. Non-replaced fragments are untouched.
func (f *Fragment) AssignReplacedBlockSizeIfNecessary() {
	if f.Replaced == nil {
		return
	}
	f.BorderBox.BlockSize = f.replacedBlockSize()
}

func (f *Fragment) replacedBlockSize() float64 {
	if f.Style != nil {
		if h, ok := f.Style.GetLength("height"); ok {
			return h
		}
		if w, ok := f.Style.GetLength("width"); ok && f.Replaced.NaturalWidth > 0 {
			return f.Replaced.NaturalHeight * w / f.Replaced.NaturalWidth
		}
	}
	return f.Replaced.NaturalHeight
}

// ComputeOverflow returns the fragment's overflow contribution in physical
// coordinates. flowSize is the owning flow's physical size (needed to
// convert logical coordinates in writing modes other than horizontal-tb);
// relativeContainingBlockSize resolves percentage offsets of
// position: relative fragments, which shift the painted extent without
// moving the scrollable one.
func (f *Fragment) ComputeOverflow(flowSize Size, relativeContainingBlockSize LogicalSize) Overflow {
	border := f.BorderBox.ToPhysical()
	overflow := Overflow{Scroll: border, Paint: border}
	if f.Style != nil && f.Style.GetPosition() == css.PositionRelative {
		overflow.Paint = overflow.Paint.Translate(relativeOffset(f.Style, relativeContainingBlockSize))
	}
	return overflow
}

// relativeOffset resolves the offset a position: relative style applies at
// paint time. Percentages resolve against the relative containing block.
func relativeOffset(style *css.Style, containingBlock LogicalSize) Point {
	var offset Point
	if v, isPct, ok := style.GetLengthOrPercent("left"); ok {
		if isPct {
			v *= containingBlock.Inline
		}
		offset.X += v
	} else if v, isPct, ok := style.GetLengthOrPercent("right"); ok {
		if isPct {
			v *= containingBlock.Inline
		}
		offset.X -= v
	}
	if v, isPct, ok := style.GetLengthOrPercent("top"); ok {
		if isPct {
			v *= containingBlock.Block
		}
		offset.Y += v
	} else if v, isPct, ok := style.GetLengthOrPercent("bottom"); ok {
		if isPct {
			v *= containingBlock.Block
		}
		offset.Y -= v
	}
	return offset
}

// StackingRelativeBorderBox returns the fragment's border box in the
// coordinate system of the nearest stacking context.
func (f *Fragment) StackingRelativeBorderBox(stackingRelativePosition Point) Rect {
	return f.BorderBox.ToPhysical().Translate(stackingRelativePosition)
}
