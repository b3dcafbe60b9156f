package layout

import "versailles/pkg/css"

// FloatBand records one placed float's margin box and side, in the
// coordinates of the float context that placed it.
type FloatBand struct {
	Rect LogicalRect
	Side css.FloatType
}

// floatState is the band list shared by every view of one float context.
type floatState struct {
	bands []FloatBand
}

// Floats is a view of a float context. The band list is shared between all
// views of the context; each view carries only a coordinate offset, so child
// flows read and record floats in their own local coordinates. Views are
// immutable — TranslatedBy returns a new one — while the underlying band
// list accumulates as block layout places floats.
type Floats struct {
	state  *floatState
	offset LogicalPoint // local origin expressed in context coordinates
}

// NewFloats returns an empty float context, established at the tree root or
// wherever a new block formatting context begins.
func NewFloats() *Floats {
	return &Floats{state: &floatState{}}
}

// TranslatedBy returns a view of the same context whose origin is shifted
// by delta, for handing to a child flow.
func (f *Floats) TranslatedBy(delta LogicalPoint) *Floats {
	return &Floats{
		state: f.state,
		offset: LogicalPoint{
			Inline: f.offset.Inline + delta.Inline,
			Block:  f.offset.Block + delta.Block,
		},
	}
}

// AddFloat records a float's margin box, given in this view's local
// coordinates.
func (f *Floats) AddFloat(band FloatBand) {
	band.Rect = band.Rect.Translate(f.offset.Inline, f.offset.Block)
	f.state.bands = append(f.state.bands, band)
}

// Len reports how many floats the context holds.
func (f *Floats) Len() int {
	if f == nil {
		return 0
	}
	return len(f.state.bands)
}

// ClearanceBlockPosition returns the block position (local coordinates) at
// which a box with the given clear value may start: the block-end margin
// edge of the lowest float the value names, never above blockStart. Bands
// hold margin boxes, so a float's bottom margin pushes cleared content
// further down.
func (f *Floats) ClearanceBlockPosition(clear css.ClearType, blockStart float64) float64 {
	if f == nil || clear == css.ClearNone {
		return blockStart
	}

	maxEnd := blockStart + f.offset.Block
	for _, band := range f.state.bands {
		switch clear {
		case css.ClearLeft:
			if band.Side != css.FloatLeft {
				continue
			}
		case css.ClearRight:
			if band.Side != css.FloatRight {
				continue
			}
		}
		if end := band.Rect.BlockEnd(); end > maxEnd {
			maxEnd = end
		}
	}
	return maxEnd - f.offset.Block
}

// AvailableRect returns the largest horizontal sub-rectangle of the band
// spanning [bandStart, bandStart+bandSize] (local coordinates) that no float
// covers, for a container of the given inline size: the inline start is
// pushed past intersecting left floats, the inline end pulled in before
// intersecting right floats. The second result is false when no float
// intersects the band at all; callers fall back to their own border box
// rather than treating that as a failure.
func (f *Floats) AvailableRect(bandStart, bandSize, containerInlineSize float64) (LogicalRect, bool) {
	if f == nil {
		return LogicalRect{}, false
	}

	top := bandStart + f.offset.Block
	bottom := top + bandSize
	left := f.offset.Inline
	right := left + containerInlineSize

	inlineStart := left
	inlineEnd := right
	intersected := false
	for _, band := range f.state.bands {
		if band.Rect.BlockEnd() <= top || band.Rect.BlockStart >= bottom {
			continue
		}
		intersected = true
		switch band.Side {
		case css.FloatLeft:
			if end := band.Rect.InlineEnd(); end > inlineStart {
				inlineStart = end
			}
		case css.FloatRight:
			if start := band.Rect.InlineStart; start < inlineEnd {
				inlineEnd = start
			}
		}
	}
	if !intersected {
		return LogicalRect{}, false
	}

	return LogicalRect{
		InlineStart: inlineStart - f.offset.Inline,
		BlockStart:  bandStart,
		InlineSize:  inlineEnd - inlineStart,
		BlockSize:   bandSize,
	}, true
}
