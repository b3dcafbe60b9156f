package layout

import (
	"versailles/pkg/css"
	"versailles/pkg/text"
)

// BlockFlow lays out a block-level box: in-flow children stack in the block
// direction with collapsed vertical margins, floated children are taken out
// of flow and recorded in the ambient float context, absolutely positioned
// children are placed by their offset properties.
type BlockFlow struct {
	base FlowBase

	// Fragment is the flow's principal fragment. Its border box is the
	// flow's own, at origin in the flow's coordinate system; the parent-
	// relative placement lives in base.Position.
	Fragment *Fragment

	// TextFragments holds the flow's text runs. Element content is wrapped
	// in anonymous child blocks during construction, so a flow carries
	// either children or text, never an ordered mix.
	TextFragments []*Fragment

	// lines is the per-line layout of TextFragments, recomputed on every
	// block-size pass.
	lines []textLine
}

// textLine is one laid-out line of a text fragment.
type textLine struct {
	text  string
	style *css.Style
	rect  LogicalRect
}

func NewBlockFlow(fragment *Fragment) *BlockFlow {
	return &BlockFlow{Fragment: fragment}
}

func (b *BlockFlow) Class() FlowClass { return FlowBlock }

func (b *BlockFlow) Base() *FlowBase { return &b.base }

// style returns the principal fragment's style, which may be nil for
// synthetic flows in tests.
func (b *BlockFlow) style() *css.Style {
	return b.Fragment.Style
}

// surround returns the flow's padding and border edges.
func (b *BlockFlow) surround() (padding, border css.BoxEdge) {
	if s := b.style(); s != nil {
		padding = s.GetPadding()
		border = s.GetBorderWidth()
	}
	return padding, border
}

func (b *BlockFlow) margin() css.BoxEdge {
	if s := b.style(); s != nil {
		return s.GetMargin()
	}
	return css.BoxEdge{}
}

// BubbleInlineSizes computes intrinsic inline sizes from the children's
// bubbled sizes and the flow's own text, then adds the flow's padding and
// border. An explicit fixed width overrides the content-based bounds.
func (b *BlockFlow) BubbleInlineSizes(ctx *Context) {
	var sizes IntrinsicInlineSizes
	for _, child := range b.base.Children {
		child.BubbleInlineSizes(ctx)
		childSizes := child.Base().IntrinsicSizes
		if cs := flowStyle(child); cs != nil {
			m := cs.GetMargin()
			childSizes.MinimumInlineSize += m.Left + m.Right
			childSizes.PreferredInlineSize += m.Left + m.Right
		}
		sizes.UnionBlock(childSizes)
	}
	for _, tf := range b.TextFragments {
		sizes.UnionBlock(tf.IntrinsicInlineSizes(ctx))
	}

	padding, border := b.surround()
	surround := padding.Left + padding.Right + border.Left + border.Right
	if s := b.style(); s != nil {
		// Percentage widths cannot resolve during bubbling and stay
		// content-based.
		if w, ok := s.GetLength("width"); ok {
			sizes.MinimumInlineSize = w
			sizes.PreferredInlineSize = w
		}
	}
	sizes.MinimumInlineSize += surround
	sizes.PreferredInlineSize += surround
	b.base.IntrinsicSizes = sizes
}

// AssignInlineSizes resolves the flow's border-box inline size against the
// containing block, then recurses with the content inline size. Floated and
// absolutely positioned flows without an explicit width shrink to fit.
func (b *BlockFlow) AssignInlineSizes(ctx *Context) {
	s := b.style()
	margin := b.margin()
	padding, border := b.surround()

	available := b.base.BlockContainerInlineSize - margin.Left - margin.Right
	inlineSize := available
	explicit := false
	if s != nil {
		if w, isPct, ok := s.GetLengthOrPercent("width"); ok {
			if isPct {
				w *= b.base.BlockContainerInlineSize
			}
			// width is the content size; the border box adds surround
			inlineSize = w + padding.Left + padding.Right + border.Left + border.Right
			explicit = true
		}
	}
	if !explicit && b.outOfFlow() {
		inlineSize = shrinkToFit(b.base.IntrinsicSizes, available)
	}

	b.base.Position.InlineSize = inlineSize
	b.Fragment.BorderBox = LogicalRect{InlineSize: inlineSize}

	contentInline := inlineSize - padding.Left - padding.Right - border.Left - border.Right
	contentInlineStart := border.Left + padding.Left
	for _, child := range b.base.Children {
		cb := child.Base()
		cb.BlockContainerInlineSize = contentInline

		var cm css.BoxEdge
		if cs := flowStyle(child); cs != nil {
			cm = cs.GetMargin()
		}
		cb.Position.InlineStart = contentInlineStart + cm.Left
		child.AssignInlineSizes(ctx)

		// Right floats hug the content box's inline end; their size is
		// known only after the recursive call.
		if flowFloatSide(child) == css.FloatRight {
			cb.Position.InlineStart = contentInlineStart + contentInline - cb.Position.InlineSize - cm.Right
		}
	}
}

// outOfFlow reports whether the flow is floated or absolutely positioned.
func (b *BlockFlow) outOfFlow() bool {
	s := b.style()
	if s == nil {
		return false
	}
	if s.GetFloat() != css.FloatNone {
		return true
	}
	pos := s.GetPosition()
	return pos == css.PositionAbsolute || pos == css.PositionFixed
}

// shrinkToFit sizes a float or absolute to its content, bounded by the
// available space.
func shrinkToFit(sizes IntrinsicInlineSizes, available float64) float64 {
	fit := available
	if sizes.MinimumInlineSize > fit {
		fit = sizes.MinimumInlineSize
	}
	if sizes.PreferredInlineSize < fit {
		fit = sizes.PreferredInlineSize
	}
	return fit
}

// AssignBlockSize lays out text lines and children along the block axis.
// In-flow children stack with collapsed vertical margins; floated children
// are placed in the float context without advancing the cursor; absolute
// children are positioned by their offsets, falling back to the cursor for
// the static position. The flow's own block size is the content extent
// unless an explicit height overrides it.
func (b *BlockFlow) AssignBlockSize(ctx *Context) {
	s := b.style()
	padding, border := b.surround()
	if b.base.Floats == nil {
		b.base.Floats = NewFloats()
	}

	contentInlineStart := border.Left + padding.Left
	contentInline := b.base.Position.InlineSize - contentInlineStart - padding.Right - border.Right
	cursor := border.Top + padding.Top

	cursor += b.layoutTextLines(ctx, contentInlineStart, contentInline, cursor)

	prevMarginBottom := 0.0
	haveInFlowSibling := false
	var absolutes []absoluteChild
	for _, child := range b.base.Children {
		cb := child.Base()
		cs := flowStyle(child)
		var cm css.BoxEdge
		clear := css.ClearNone
		if cs != nil {
			cm = cs.GetMargin()
			clear = cs.GetClear()
		}

		switch {
		case flowFloatSide(child) != css.FloatNone:
			// Floats leave the cursor untouched but still clear earlier
			// floats.
			cb.Position.BlockStart = b.base.Floats.ClearanceBlockPosition(clear, cursor+cm.Top)
			cb.Floats = b.base.Floats.TranslatedBy(LogicalPoint{
				Inline: cb.Position.InlineStart,
				Block:  cb.Position.BlockStart,
			})
			child.AssignBlockSize(ctx)
			child.PlaceFloatIfApplicable()

		case child.Positioning() == css.PositionAbsolute || child.Positioning() == css.PositionFixed:
			// Absolutes establish their own float context. Placement waits
			// until this flow's block size is known; the cursor stands in
			// for the static position when offsets are auto.
			cb.Floats = NewFloats()
			child.AssignBlockSize(ctx)
			absolutes = append(absolutes, absoluteChild{flow: child, staticBlockStart: cursor})

		default:
			if haveInFlowSibling {
				cursor += collapseMargins(prevMarginBottom, cm.Top)
			} else {
				cursor += cm.Top
			}
			cursor = b.base.Floats.ClearanceBlockPosition(clear, cursor)
			cb.Position.BlockStart = cursor
			cb.Floats = b.base.Floats.TranslatedBy(LogicalPoint{
				Inline: cb.Position.InlineStart,
				Block:  cb.Position.BlockStart,
			})
			child.AssignBlockSize(ctx)
			cursor += cb.Position.BlockSize
			prevMarginBottom = cm.Bottom
			haveInFlowSibling = true
		}
	}
	if haveInFlowSibling {
		cursor += prevMarginBottom
	}

	blockSize := cursor + padding.Bottom + border.Bottom
	if s != nil {
		if h, ok := s.GetLength("height"); ok {
			blockSize = h + padding.Top + padding.Bottom + border.Top + border.Bottom
		}
	}
	b.base.Position.BlockSize = blockSize
	b.Fragment.BorderBox.BlockSize = blockSize

	contentBlock := blockSize - border.Top - padding.Top - padding.Bottom - border.Bottom
	for _, child := range b.base.Children {
		child.Base().RelativeContainingBlockSize = LogicalSize{
			Inline: contentInline,
			Block:  contentBlock,
		}
	}

	for _, abs := range absolutes {
		b.placeAbsoluteChild(abs.flow, abs.staticBlockStart)
	}
}

// absoluteChild queues an absolutely positioned child whose placement waits
// for the parent's final block size.
type absoluteChild struct {
	flow             Flow
	staticBlockStart float64
}

// layoutTextLines breaks the flow's text fragments into lines and returns
// the block extent they occupy.
func (b *BlockFlow) layoutTextLines(ctx *Context, contentInlineStart, contentInline, cursor float64) float64 {
	b.lines = b.lines[:0]
	start := cursor
	for _, tf := range b.TextFragments {
		fontSize := 16.0
		lineHeight := fontSize * 1.2
		if tf.Style != nil {
			fontSize = tf.Style.GetFontSize()
			lineHeight = tf.Style.GetLineHeight()
		}
		fontPath := ctx.fontPath(tf.Style)
		lines := text.BreakTextIntoLines(tf.Text, fontSize, fontPath, contentInline, contentInline)
		tf.BorderBox = LogicalRect{
			InlineStart: contentInlineStart,
			BlockStart:  cursor,
			InlineSize:  contentInline,
			BlockSize:   lineHeight * float64(len(lines)),
		}
		for _, line := range lines {
			w, _ := text.MeasureText(line, fontSize, fontPath)
			b.lines = append(b.lines, textLine{
				text:  line,
				style: tf.Style,
				rect: LogicalRect{
					InlineStart: contentInlineStart,
					BlockStart:  cursor,
					InlineSize:  w,
					BlockSize:   lineHeight,
				},
			})
			cursor += lineHeight
		}
	}
	return cursor - start
}

// placeAbsoluteChild positions an absolutely positioned child by its offset
// properties. Offsets and percentages resolve against the containing block
// this flow generates for the child, whose origin is the padding-box corner;
// without offsets the child stays at the static position.
func (b *BlockFlow) placeAbsoluteChild(child Flow, staticBlockStart float64) {
	cs := flowStyle(child)
	cb := child.Base()
	padding, border := b.surround()
	containing := b.GeneratedContainingBlockSize(MakeOpaqueFlow(child))

	inlinePos := border.Left + padding.Left
	blockPos := staticBlockStart
	if cs != nil {
		if v, isPct, ok := cs.GetLengthOrPercent("left"); ok {
			if isPct {
				v *= containing.Inline
			}
			inlinePos = border.Left + v
		} else if v, isPct, ok := cs.GetLengthOrPercent("right"); ok {
			if isPct {
				v *= containing.Inline
			}
			inlinePos = border.Left + containing.Inline - v - cb.Position.InlineSize
		}
		if v, isPct, ok := cs.GetLengthOrPercent("top"); ok {
			if isPct {
				v *= containing.Block
			}
			blockPos = border.Top + v
		} else if v, isPct, ok := cs.GetLengthOrPercent("bottom"); ok {
			if isPct {
				v *= containing.Block
			}
			blockPos = border.Top + containing.Block - v - cb.Position.BlockSize
		}
	}
	child.UpdateLateComputedInlinePosition(inlinePos)
	child.UpdateLateComputedBlockPosition(blockPos)
}

// collapseMargins returns the collapsed value of two adjoining vertical
// margins: both non-negative take the max, both negative the min, mixed
// values sum.
func collapseMargins(a, bm float64) float64 {
	if a >= 0 && bm >= 0 {
		if a > bm {
			return a
		}
		return bm
	}
	if a < 0 && bm < 0 {
		if a < bm {
			return a
		}
		return bm
	}
	return a + bm
}

// ComputeStackingRelativePosition propagates absolute positions down the
// tree. Transforms are unsupported, so every stacking context shares the
// viewport coordinate system and positions accumulate directly.
func (b *BlockFlow) ComputeStackingRelativePosition(ctx *Context) {
	for _, child := range b.base.Children {
		cb := child.Base()
		cb.StackingRelativePosition = Point{
			X: b.base.StackingRelativePosition.X + cb.Position.InlineStart,
			Y: b.base.StackingRelativePosition.Y + cb.Position.BlockStart,
		}
		if child.Positioning() == css.PositionRelative {
			if cs := flowStyle(child); cs != nil {
				offset := relativeOffset(cs, cb.RelativeContainingBlockSize)
				cb.StackingRelativePosition.X += offset.X
				cb.StackingRelativePosition.Y += offset.Y
			}
		}
		child.ComputeStackingRelativePosition(ctx)
	}
}

// PlaceFloatIfApplicable records the flow's margin box in the ambient float
// context when the flow is floated.
func (b *BlockFlow) PlaceFloatIfApplicable() {
	s := b.style()
	if s == nil || b.base.Floats == nil {
		return
	}
	side := s.GetFloat()
	if side == css.FloatNone {
		return
	}
	margin := s.GetMargin()
	b.base.Floats.AddFloat(FloatBand{
		Rect: LogicalRect{
			InlineStart: -margin.Left,
			BlockStart:  -margin.Top,
			InlineSize:  b.base.Position.InlineSize + margin.Left + margin.Right,
			BlockSize:   b.base.Position.BlockSize + margin.Top + margin.Bottom,
		},
		Side: side,
	})
}

func (b *BlockFlow) IsAbsoluteContainingBlock() bool {
	return b.Positioning() != css.PositionStatic
}

func (b *BlockFlow) ContainsRootsOfAbsoluteFlowTree() bool {
	for _, child := range b.base.Children {
		pos := child.Positioning()
		if pos == css.PositionAbsolute || pos == css.PositionFixed {
			return true
		}
		if !child.IsAbsoluteContainingBlock() && child.ContainsRootsOfAbsoluteFlowTree() {
			return true
		}
	}
	return false
}

func (b *BlockFlow) UpdateLateComputedInlinePosition(inlinePos float64) {
	b.base.Position.InlineStart = inlinePos
}

func (b *BlockFlow) UpdateLateComputedBlockPosition(blockPos float64) {
	b.base.Position.BlockStart = blockPos
}

// BuildDisplayList appends the flow's own paint items and recurses into
// children that do not create stacking contexts; those paint through their
// own context instead.
func (b *BlockFlow) BuildDisplayList(state *DisplayListBuildState) {
	b.buildDisplayListForSelf(state)
	for _, child := range b.base.Children {
		if FlowCreatesStackingContext(child) {
			continue
		}
		child.BuildDisplayList(state)
	}
}

func (b *BlockFlow) buildDisplayListForSelf(state *DisplayListBuildState) {
	origin := b.base.StackingRelativePosition
	bounds := b.Fragment.StackingRelativeBorderBox(origin)

	if s := b.style(); s != nil {
		if bg, ok := s.Get("background-color"); ok {
			if color, ok := css.ParseColor(bg); ok && color.A > 0 {
				state.AddItem(DisplayItem{
					Kind:    DisplaySolidColor,
					Bounds:  bounds,
					Section: SectionBackgroundAndBorders,
					Color:   color,
				})
			}
		}
		widths := s.GetBorderWidth()
		if widths.Top > 0 || widths.Right > 0 || widths.Bottom > 0 || widths.Left > 0 {
			// border-color defaults to the text color (currentColor)
			borderColor := s.GetColor()
			if bc, ok := s.Get("border-color"); ok {
				if color, ok := css.ParseColor(bc); ok {
					borderColor = color
				}
			}
			state.AddItem(DisplayItem{
				Kind:    DisplayBorder,
				Bounds:  bounds,
				Section: SectionBackgroundAndBorders,
				Color:   borderColor,
				Widths:  widths,
			})
		}
	}

	for _, line := range b.lines {
		fontSize := 16.0
		color := css.Color{A: 1}
		bold := false
		if line.style != nil {
			fontSize = line.style.GetFontSize()
			color = line.style.GetColor()
			bold = line.style.GetFontWeight() == css.FontWeightBold
		}
		state.AddItem(DisplayItem{
			Kind:     DisplayText,
			Bounds:   line.rect.ToPhysical().Translate(origin),
			Section:  SectionContent,
			Color:    color,
			Text:     line.text,
			FontSize: fontSize,
			Bold:     bold,
		})
	}
}

func (b *BlockFlow) CollectStackingContexts(state *StackingContextCollectionState) {
	if FlowCreatesStackingContext(b) {
		context := NewStackingContext(b, b.style().GetZIndex())
		state.Enter(context, func() {
			for _, child := range b.base.Children {
				child.CollectStackingContexts(state)
			}
		})
		return
	}
	for _, child := range b.base.Children {
		child.CollectStackingContexts(state)
	}
}

func (b *BlockFlow) RepairStyle(newStyle *css.Style) {
	b.Fragment.RepairStyle(newStyle)
}

// ComputeOverflow unions the principal fragment's overflow with the
// children's, translated into this flow's coordinates.
func (b *BlockFlow) ComputeOverflow() Overflow {
	size := Size{Width: b.base.Position.InlineSize, Height: b.base.Position.BlockSize}
	overflow := b.Fragment.ComputeOverflow(size, b.base.RelativeContainingBlockSize)
	for _, child := range b.base.Children {
		cb := child.Base()
		childOverflow := child.ComputeOverflow()
		childOverflow.Translate(Point{X: cb.Position.InlineStart, Y: cb.Position.BlockStart})
		overflow.Union(childOverflow)
	}
	return overflow
}

// GeneratedContainingBlockSize reports the padding-box size absolutely
// positioned descendants resolve against.
func (b *BlockFlow) GeneratedContainingBlockSize(descendant OpaqueFlow) LogicalSize {
	_, border := b.surround()
	return LogicalSize{
		Inline: b.base.Position.InlineSize - border.Left - border.Right,
		Block:  b.base.Position.BlockSize - border.Top - border.Bottom,
	}
}

func (b *BlockFlow) Positioning() css.PositionType {
	if s := b.style(); s == nil {
		return css.PositionStatic
	}
	return b.style().GetPosition()
}

func (b *BlockFlow) IterateFragmentBorderBoxes(it FragmentBorderBoxIterator, level int, stackingContextPosition Point) {
	if it.ShouldProcess(b.Fragment) {
		it.Process(b.Fragment, level, b.Fragment.StackingRelativeBorderBox(stackingContextPosition))
	}
	for _, tf := range b.TextFragments {
		if it.ShouldProcess(tf) {
			it.Process(tf, level, tf.StackingRelativeBorderBox(stackingContextPosition))
		}
	}
	for _, child := range b.base.Children {
		cb := child.Base()
		child.IterateFragmentBorderBoxes(it, level+1, Point{
			X: stackingContextPosition.X + cb.Position.InlineStart,
			Y: stackingContextPosition.Y + cb.Position.BlockStart,
		})
	}
}

func (b *BlockFlow) MutateFragments(mutate func(*Fragment)) {
	mutate(b.Fragment)
	for _, tf := range b.TextFragments {
		mutate(tf)
	}
	for _, child := range b.base.Children {
		child.MutateFragments(mutate)
	}
}

// flowFloatSide returns the flow's float side, none for unstyled flows.
func flowFloatSide(f Flow) css.FloatType {
	if s := flowStyle(f); s != nil {
		return s.GetFloat()
	}
	return css.FloatNone
}
