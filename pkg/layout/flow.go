package layout

import "versailles/pkg/css"

// Flow is the polymorphic surface every layout-tree node implements; the
// tree walker calls it without knowing the concrete kind. Any new flow kind
// must decide, for every operation here, whether to delegate to an inner
// flow, augment the inherited behavior, or override it outright.
type Flow interface {
	// Class reports the node kind for dispatch elsewhere.
	Class() FlowClass

	// Base returns the state shared by all flow kinds.
	Base() *FlowBase

	// BubbleInlineSizes computes intrinsic inline sizes bottom-up;
	// children are assumed already bubbled.
	BubbleInlineSizes(ctx *Context)

	// AssignInlineSizes resolves the flow's inline size against its
	// containing block and recurses top-down.
	AssignInlineSizes(ctx *Context)

	// AssignBlockSize positions children along the block axis, places
	// floats, and totals the flow's own block size bottom-up. Ambient
	// float state is final for this flow once it returns.
	AssignBlockSize(ctx *Context)

	// ComputeStackingRelativePosition propagates absolute positions in
	// the coordinates of the nearest stacking context.
	ComputeStackingRelativePosition(ctx *Context)

	// PlaceFloatIfApplicable records the flow's margin box in the float
	// context when the flow is floated.
	PlaceFloatIfApplicable()

	IsAbsoluteContainingBlock() bool
	ContainsRootsOfAbsoluteFlowTree() bool

	// UpdateLateComputedInlinePosition and its block twin write positions
	// that only become known after the main pass (absolute descendants).
	UpdateLateComputedInlinePosition(inlinePos float64)
	UpdateLateComputedBlockPosition(blockPos float64)

	// BuildDisplayList appends the flow's paint items to the build state.
	BuildDisplayList(state *DisplayListBuildState)

	// CollectStackingContexts assigns the flow and its descendants to
	// stacking contexts.
	CollectStackingContexts(state *StackingContextCollectionState)

	// RepairStyle swaps in a new computed style handle after a restyle.
	RepairStyle(newStyle *css.Style)

	// ComputeOverflow returns the flow's overflow region in physical
	// coordinates relative to its own border box.
	ComputeOverflow() Overflow

	// GeneratedContainingBlockSize reports the containing-block size this
	// flow generates for the given absolutely positioned descendant.
	GeneratedContainingBlockSize(descendant OpaqueFlow) LogicalSize

	// Positioning reports the flow's CSS position.
	Positioning() css.PositionType

	// IterateFragmentBorderBoxes visits every fragment border box that the
	// iterator's predicate accepts, in stacking-context coordinates.
	IterateFragmentBorderBoxes(it FragmentBorderBoxIterator, level int, stackingContextPosition Point)

	// MutateFragments applies the visitor to every fragment of the flow.
	MutateFragments(mutate func(*Fragment))
}

// FlowBase is the state shared by every flow kind.
type FlowBase struct {
	Children []Flow

	// Position is the flow's border box in the parent's border-box
	// coordinates, written during AssignInlineSizes/AssignBlockSize.
	Position LogicalRect

	// Floats is the flow's view of the ambient float context, translated
	// into local coordinates (origin at this flow's border-box start).
	// Set by the parent before AssignBlockSize recurses.
	Floats *Floats

	// BlockContainerInlineSize is the content inline size of the
	// containing block, set by the parent before AssignInlineSizes.
	BlockContainerInlineSize float64

	// StackingRelativePosition is the border-box origin in the
	// coordinates of the nearest stacking context.
	StackingRelativePosition Point

	// RelativeContainingBlockSize resolves percentage offsets of
	// position: relative content.
	RelativeContainingBlockSize LogicalSize

	// Damage accumulates restyle-damage bits for the external restyle
	// driver; layout itself never reads it.
	Damage RestyleDamage

	// IntrinsicSizes holds the bubbled intrinsic inline sizes.
	IntrinsicSizes IntrinsicInlineSizes
}

// FragmentBorderBoxIterator visits fragment border boxes during hit-testing
// and debug traversals.
type FragmentBorderBoxIterator interface {
	// ShouldProcess filters fragments before any geometry is computed.
	ShouldProcess(f *Fragment) bool
	// Process receives the border box in stacking-context coordinates and
	// the tree level the fragment was found at.
	Process(f *Fragment, level int, borderBox Rect)
}

// OpaqueFlow identifies a flow without granting access to it, for queries
// keyed on tree identity.
type OpaqueFlow struct {
	flow Flow
}

func MakeOpaqueFlow(f Flow) OpaqueFlow {
	return OpaqueFlow{flow: f}
}
