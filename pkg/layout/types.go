package layout

// Geometry is expressed in logical coordinates: inline is the text-flow
// direction, block is the stacking direction. Only horizontal-tb LTR is
// supported, so inline maps to X and block maps to Y, but layout code reads
// in logical terms throughout.
//
// No geometry here is validated or clamped. Degenerate or negative sizes
// produced by broken styles flow through unchanged; the accepted failure
// mode is incorrect rendering, never a panic.

// LogicalRect is a rectangle in logical coordinates, relative to some
// containing flow.
type LogicalRect struct {
	InlineStart float64
	BlockStart  float64
	InlineSize  float64
	BlockSize   float64
}

func (r LogicalRect) InlineEnd() float64 {
	return r.InlineStart + r.InlineSize
}

func (r LogicalRect) BlockEnd() float64 {
	return r.BlockStart + r.BlockSize
}

// Translate returns the rect shifted by the given offsets.
func (r LogicalRect) Translate(inline, block float64) LogicalRect {
	r.InlineStart += inline
	r.BlockStart += block
	return r
}

// ToPhysical converts to physical coordinates (horizontal-tb LTR).
func (r LogicalRect) ToPhysical() Rect {
	return Rect{X: r.InlineStart, Y: r.BlockStart, Width: r.InlineSize, Height: r.BlockSize}
}

// LogicalSize is a size in logical coordinates.
type LogicalSize struct {
	Inline float64
	Block  float64
}

// LogicalPoint is a point in logical coordinates.
type LogicalPoint struct {
	Inline float64
	Block  float64
}

// Rect represents a rectangular region in physical coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := r.X
	if other.X < minX {
		minX = other.X
	}
	minY := r.Y
	if other.Y < minY {
		minY = other.Y
	}
	maxX := r.X + r.Width
	if ox := other.X + other.Width; ox > maxX {
		maxX = ox
	}
	maxY := r.Y + r.Height
	if oy := other.Y + other.Height; oy > maxY {
		maxY = oy
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Translate returns the rect shifted by the given point.
func (r Rect) Translate(by Point) Rect {
	r.X += by.X
	r.Y += by.Y
	return r
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// IntrinsicInlineSizes is the content-based sizing information bubbled up
// the tree during the bottom-up pass:
// - MinimumInlineSize: narrowest the content can be without overflow
// - PreferredInlineSize: widest the content wants to be without wrapping
type IntrinsicInlineSizes struct {
	MinimumInlineSize   float64
	PreferredInlineSize float64
}

// UnionBlock folds a block-level child's intrinsic sizes into the parent's:
// block children stack, so both bounds take the max.
func (i *IntrinsicInlineSizes) UnionBlock(child IntrinsicInlineSizes) {
	if child.MinimumInlineSize > i.MinimumInlineSize {
		i.MinimumInlineSize = child.MinimumInlineSize
	}
	if child.PreferredInlineSize > i.PreferredInlineSize {
		i.PreferredInlineSize = child.PreferredInlineSize
	}
}

// Overflow describes the region a flow's content occupies beyond its border
// box: Scroll is the scrollable extent, Paint the visually inked extent.
type Overflow struct {
	Scroll Rect
	Paint  Rect
}

// Union folds another overflow region into this one.
func (o *Overflow) Union(other Overflow) {
	o.Scroll = o.Scroll.Union(other.Scroll)
	o.Paint = o.Paint.Union(other.Paint)
}

// Translate shifts both regions by the given point.
func (o *Overflow) Translate(by Point) {
	o.Scroll = o.Scroll.Translate(by)
	o.Paint = o.Paint.Translate(by)
}

// RestyleDamage records which layout phases must re-run for a flow after a
// style change. It is a side channel read by the external restyle driver;
// nothing in this package consumes it.
type RestyleDamage uint8

const (
	DamageRepaint RestyleDamage = 1 << iota
	DamageReflow

	// DamageResolveGeneratedContent marks flows whose generated content
	// (counter-derived marker text) must be re-resolved even without a style
	// change on the flow itself, because ancestor counters may have changed.
	DamageResolveGeneratedContent
)

// Insert adds the given damage bits.
func (d *RestyleDamage) Insert(bits RestyleDamage) {
	*d |= bits
}

// Has reports whether all the given bits are set.
func (d RestyleDamage) Has(bits RestyleDamage) bool {
	return d&bits == bits
}

// FlowClass identifies the concrete kind of a flow for dispatch.
type FlowClass int

const (
	FlowBlock FlowClass = iota
	FlowListItem
)

func (c FlowClass) String() string {
	switch c {
	case FlowBlock:
		return "block"
	case FlowListItem:
		return "list-item"
	}
	return "unknown"
}
