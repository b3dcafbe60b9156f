package layout

import (
	"sort"

	"versailles/pkg/css"
)

// StackingContext represents a CSS stacking context: a local z-ordering
// scope created by certain style properties. Paint order within one context
// is negative child contexts, the context's own items, zero contexts in
// tree order, then positive contexts.
type StackingContext struct {
	Creator Flow // the flow that creates this context (nil for root)
	ZIndex  int

	// Items holds the context's own display items in paint order, filled
	// by the display-list build pass.
	Items []DisplayItem

	// Child stacking contexts organized by z-index
	NegativeZContexts []*StackingContext // z-index < 0, sorted ascending
	ZeroZContexts     []*StackingContext // z-index == 0, document order
	PositiveZContexts []*StackingContext // z-index > 0, sorted ascending
}

// NewStackingContext creates a new stacking context for the given flow.
func NewStackingContext(creator Flow, zIndex int) *StackingContext {
	return &StackingContext{
		Creator: creator,
		ZIndex:  zIndex,
	}
}

// AddChildContext adds a child stacking context to the appropriate z-index
// category.
func (sc *StackingContext) AddChildContext(child *StackingContext) {
	if child.ZIndex < 0 {
		sc.NegativeZContexts = append(sc.NegativeZContexts, child)
	} else if child.ZIndex > 0 {
		sc.PositiveZContexts = append(sc.PositiveZContexts, child)
	} else {
		sc.ZeroZContexts = append(sc.ZeroZContexts, child)
	}
}

// sortChildren orders the negative and positive buckets by z-index,
// keeping document order within equal values.
func (sc *StackingContext) sortChildren() {
	byZ := func(contexts []*StackingContext) func(i, j int) bool {
		return func(i, j int) bool { return contexts[i].ZIndex < contexts[j].ZIndex }
	}
	sort.SliceStable(sc.NegativeZContexts, byZ(sc.NegativeZContexts))
	sort.SliceStable(sc.PositiveZContexts, byZ(sc.PositiveZContexts))
}

// PaintOrder returns every display item of the subtree back to front.
func (sc *StackingContext) PaintOrder() []DisplayItem {
	items := make([]DisplayItem, 0, len(sc.Items))
	for _, child := range sc.NegativeZContexts {
		items = append(items, child.PaintOrder()...)
	}
	items = append(items, sc.Items...)
	for _, child := range sc.ZeroZContexts {
		items = append(items, child.PaintOrder()...)
	}
	for _, child := range sc.PositiveZContexts {
		items = append(items, child.PaintOrder()...)
	}
	return items
}

// StackingContextCollectionState tracks the context currently collected
// into while the flow tree is walked.
type StackingContextCollectionState struct {
	Root    *StackingContext
	current *StackingContext
}

func NewStackingContextCollectionState() *StackingContextCollectionState {
	root := NewStackingContext(nil, 0)
	return &StackingContextCollectionState{Root: root, current: root}
}

// Enter makes child the collection target, runs walk over the creator's
// subtree, then restores the previous target.
func (s *StackingContextCollectionState) Enter(child *StackingContext, walk func()) {
	s.current.AddChildContext(child)
	prev := s.current
	s.current = child
	walk()
	child.sortChildren()
	s.current = prev
}

// flowStyle returns the style of the flow's principal fragment.
func flowStyle(f Flow) *css.Style {
	switch flow := f.(type) {
	case *BlockFlow:
		return flow.Fragment.Style
	case *ListItemFlow:
		return flow.Block.Fragment.Style
	}
	return nil
}

// FlowCreatesStackingContext returns true if the flow establishes a new
// stacking context.
func FlowCreatesStackingContext(f Flow) bool {
	style := flowStyle(f)
	if style == nil {
		return false
	}

	// Positioned elements with z-index != auto create a stacking context
	pos := style.GetPosition()
	if pos == css.PositionAbsolute || pos == css.PositionFixed || pos == css.PositionRelative {
		if z, ok := style.Get("z-index"); ok && z != "auto" && z != "" {
			return true
		}
	}

	// Elements with opacity < 1 create a stacking context
	if style.GetOpacity() < 1 {
		return true
	}

	// Elements with transform != none create a stacking context
	if transform, ok := style.Get("transform"); ok && transform != "none" && transform != "" {
		return true
	}

	return false
}

// BuildStackingContextTree collects stacking contexts for the whole tree
// and fills each context's display items.
func BuildStackingContextTree(root Flow) *StackingContext {
	collection := NewStackingContextCollectionState()
	root.CollectStackingContexts(collection)
	collection.Root.sortChildren()
	buildContextItems(collection.Root, root)
	return collection.Root
}

// buildContextItems fills one context's item list (and recursively its
// children's) by walking the creator's subtree. Flows that create child
// contexts are skipped by BuildDisplayList and painted via their own
// context instead.
func buildContextItems(sc *StackingContext, root Flow) {
	state := NewDisplayListBuildState()
	if sc.Creator != nil {
		sc.Creator.BuildDisplayList(state)
	} else if !FlowCreatesStackingContext(root) {
		root.BuildDisplayList(state)
	}
	sc.Items = state.ItemsInPaintOrder()

	for _, child := range sc.NegativeZContexts {
		buildContextItems(child, root)
	}
	for _, child := range sc.ZeroZContexts {
		buildContextItems(child, root)
	}
	for _, child := range sc.PositiveZContexts {
		buildContextItems(child, root)
	}
}
