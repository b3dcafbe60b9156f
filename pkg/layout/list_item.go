package layout

import "versailles/pkg/css"

// ListItemFlow lays out a list item and its outside markers. It wraps a
// BlockFlow that does all content layout; the wrapper's only job is the
// marker fragments, which hang outside the border box and take no part in
// content sizing. Every Flow operation either delegates to the block or
// augments it with marker handling, and each method here records which.
type ListItemFlow struct {
	Block *BlockFlow

	// MarkerFragments in document order. Several markers share the item's
	// first-line baseline; all of them sit inline-start of the border box.
	MarkerFragments []*Fragment
}

// NewListItemFlow wraps a block flow with its marker fragments. When the
// first marker's list-style-type is outside the fixed-glyph set, its text
// depends on ancestor counters and the flow is tagged for the
// generated-content resolution pass.
func NewListItemFlow(block *BlockFlow, markers []*Fragment) *ListItemFlow {
	l := &ListItemFlow{Block: block, MarkerFragments: markers}
	if len(markers) > 0 && markers[0].Style != nil {
		switch markers[0].Style.GetListStyleType() {
		case css.ListStyleTypeNone,
			css.ListStyleTypeDisc,
			css.ListStyleTypeCircle,
			css.ListStyleTypeSquare,
			css.ListStyleTypeDisclosureOpen,
			css.ListStyleTypeDisclosureClosed:
		default:
			l.Base().Damage.Insert(DamageResolveGeneratedContent)
		}
	}
	return l
}

func (l *ListItemFlow) Class() FlowClass { return FlowListItem }

// Base returns the inner block's base: the wrapper adds no geometry of its
// own, so parents position the block directly.
func (l *ListItemFlow) Base() *FlowBase { return l.Block.Base() }

// BubbleInlineSizes delegates. Markers contribute no intrinsic inline size
// to the item; they are laid out in the space outside it.
func (l *ListItemFlow) BubbleInlineSizes(ctx *Context) {
	l.Block.BubbleInlineSizes(ctx)
}

// AssignInlineSizes delegates. Marker positioning waits for the block pass,
// when float placement beside the item is known.
func (l *ListItemFlow) AssignInlineSizes(ctx *Context) {
	l.Block.AssignInlineSizes(ctx)
}

// AssignBlockSize delegates, then positions the markers on both axes.
func (l *ListItemFlow) AssignBlockSize(ctx *Context) {
	l.Block.AssignBlockSize(ctx)
	l.assignMarkerInlineSizes(ctx)
	l.assignMarkerBlockSizes(ctx)
}

// assignMarkerInlineSizes sizes each marker and lays the markers out
// end-to-end so the last one touches the item's inline-start edge. The
// cursor starts at the free space beside the item's first line when a float
// intrudes there, otherwise at the border box itself, and walks backwards
// through the markers.
func (l *ListItemFlow) assignMarkerInlineSizes(ctx *Context) {
	base := l.Block.Base()
	lineHeight := 16.0 * 1.2
	if s := l.Block.Fragment.Style; s != nil {
		lineHeight = s.GetLineHeight()
	}

	cursor := l.Block.Fragment.BorderBox.InlineStart
	if rect, ok := base.Floats.AvailableRect(-lineHeight, 2*lineHeight, base.BlockContainerInlineSize); ok {
		cursor = rect.InlineStart
	}

	for i := len(l.MarkerFragments) - 1; i >= 0; i-- {
		marker := l.MarkerFragments[i]
		marker.AssignReplacedInlineSizeIfNecessary(base.BlockContainerInlineSize)
		if marker.Replaced == nil {
			// Marker text never wraps.
			marker.BorderBox.InlineSize = marker.IntrinsicInlineSizes(ctx).PreferredInlineSize
		}
		cursor -= marker.BorderBox.InlineSize
		marker.BorderBox.InlineStart = cursor
	}
}

// assignMarkerBlockSizes aligns every marker on one shared baseline derived
// from the markers and the item's own style, so mixed glyph and image
// markers sit on the item's first line.
func (l *ListItemFlow) assignMarkerBlockSizes(ctx *Context) {
	// Size every marker before deriving the shared baseline; replaced
	// markers contribute their block size to it.
	for _, marker := range l.MarkerFragments {
		marker.AssignReplacedBlockSizeIfNecessary()
		if marker.Replaced == nil {
			marker.BorderBox.BlockSize = lineMetricsForStyle(ctx, marker.Style).BlockSize()
		}
	}
	shared := MinimumLineMetricsForFragments(l.MarkerFragments, ctx, l.Block.Fragment.Style)
	for _, marker := range l.MarkerFragments {
		marker.BorderBox.BlockStart = shared.SpaceAboveBaseline - marker.AlignedAscent(ctx)
	}
}

// ComputeStackingRelativePosition delegates; markers carry no child flows.
func (l *ListItemFlow) ComputeStackingRelativePosition(ctx *Context) {
	l.Block.ComputeStackingRelativePosition(ctx)
}

// PlaceFloatIfApplicable delegates; a floated list item floats as a block.
func (l *ListItemFlow) PlaceFloatIfApplicable() {
	l.Block.PlaceFloatIfApplicable()
}

func (l *ListItemFlow) IsAbsoluteContainingBlock() bool {
	return l.Block.IsAbsoluteContainingBlock()
}

func (l *ListItemFlow) ContainsRootsOfAbsoluteFlowTree() bool {
	return l.Block.ContainsRootsOfAbsoluteFlowTree()
}

func (l *ListItemFlow) UpdateLateComputedInlinePosition(inlinePos float64) {
	l.Block.UpdateLateComputedInlinePosition(inlinePos)
}

func (l *ListItemFlow) UpdateLateComputedBlockPosition(blockPos float64) {
	l.Block.UpdateLateComputedBlockPosition(blockPos)
}

// BuildDisplayList paints the markers, then delegates for the item itself.
// Markers are content items, so the block's background still paints under
// them within the stacking context.
func (l *ListItemFlow) BuildDisplayList(state *DisplayListBuildState) {
	l.buildDisplayListForMarkers(state)
	l.Block.BuildDisplayList(state)
}

func (l *ListItemFlow) buildDisplayListForMarkers(state *DisplayListBuildState) {
	origin := l.Base().StackingRelativePosition
	for _, marker := range l.MarkerFragments {
		bounds := marker.StackingRelativeBorderBox(origin)
		switch {
		case marker.Replaced != nil && marker.Replaced.Image != nil:
			state.AddItem(DisplayItem{
				Kind:    DisplayImage,
				Bounds:  bounds,
				Section: SectionContent,
				Image:   marker.Replaced.Image,
			})
		case marker.Text != "":
			fontSize := 16.0
			color := css.Color{A: 1}
			bold := false
			if marker.Style != nil {
				fontSize = marker.Style.GetFontSize()
				color = marker.Style.GetColor()
				bold = marker.Style.GetFontWeight() == css.FontWeightBold
			}
			state.AddItem(DisplayItem{
				Kind:     DisplayText,
				Bounds:   bounds,
				Section:  SectionContent,
				Color:    color,
				Text:     marker.Text,
				FontSize: fontSize,
				Bold:     bold,
			})
		}
		// Generated markers with unresolved text paint nothing.
	}
}

// CollectStackingContexts mirrors the block's logic with the list item as
// the context creator, so marker painting is not lost when the item
// establishes its own context.
func (l *ListItemFlow) CollectStackingContexts(state *StackingContextCollectionState) {
	if FlowCreatesStackingContext(l) {
		context := NewStackingContext(l, flowStyle(l).GetZIndex())
		state.Enter(context, func() {
			for _, child := range l.Base().Children {
				child.CollectStackingContexts(state)
			}
		})
		return
	}
	for _, child := range l.Base().Children {
		child.CollectStackingContexts(state)
	}
}

// RepairStyle delegates. Marker styles come from the ::marker cascade and
// are repaired by the restyle driver that recomputes them.
func (l *ListItemFlow) RepairStyle(newStyle *css.Style) {
	l.Block.RepairStyle(newStyle)
}

// ComputeOverflow delegates, then folds in the markers, which extend the
// paint and scroll regions inline-start of the border box.
func (l *ListItemFlow) ComputeOverflow() Overflow {
	overflow := l.Block.ComputeOverflow()
	base := l.Block.Base()
	size := Size{Width: base.Position.InlineSize, Height: base.Position.BlockSize}
	for _, marker := range l.MarkerFragments {
		overflow.Union(marker.ComputeOverflow(size, base.RelativeContainingBlockSize))
	}
	return overflow
}

func (l *ListItemFlow) GeneratedContainingBlockSize(descendant OpaqueFlow) LogicalSize {
	return l.Block.GeneratedContainingBlockSize(descendant)
}

func (l *ListItemFlow) Positioning() css.PositionType {
	return l.Block.Positioning()
}

// IterateFragmentBorderBoxes delegates, then offers the markers to the
// iterator at the item's own level.
func (l *ListItemFlow) IterateFragmentBorderBoxes(it FragmentBorderBoxIterator, level int, stackingContextPosition Point) {
	l.Block.IterateFragmentBorderBoxes(it, level, stackingContextPosition)
	for _, marker := range l.MarkerFragments {
		if it.ShouldProcess(marker) {
			it.Process(marker, level, marker.StackingRelativeBorderBox(stackingContextPosition))
		}
	}
}

// MutateFragments delegates, then visits the markers. The generated-content
// pass reaches marker fragments through here.
func (l *ListItemFlow) MutateFragments(mutate func(*Fragment)) {
	l.Block.MutateFragments(mutate)
	for _, marker := range l.MarkerFragments {
		mutate(marker)
	}
}
