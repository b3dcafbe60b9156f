package layout

import "versailles/pkg/css"

// LineMetrics describes the vertical geometry of one shared baseline.
type LineMetrics struct {
	SpaceAboveBaseline float64
	SpaceBelowBaseline float64
}

// BlockSize is the total extent of the line.
func (m LineMetrics) BlockSize() float64 {
	return m.SpaceAboveBaseline + m.SpaceBelowBaseline
}

// max folds another fragment's metrics into the line.
func (m LineMetrics) max(other LineMetrics) LineMetrics {
	if other.SpaceAboveBaseline > m.SpaceAboveBaseline {
		m.SpaceAboveBaseline = other.SpaceAboveBaseline
	}
	if other.SpaceBelowBaseline > m.SpaceBelowBaseline {
		m.SpaceBelowBaseline = other.SpaceBelowBaseline
	}
	return m
}

// lineMetricsForStyle derives baseline metrics for a style: font ascent and
// descent plus half the line-height leading on each side.
func lineMetricsForStyle(ctx *Context, style *css.Style) LineMetrics {
	m := ctx.fontMetrics(style)
	lineHeight := 16.0 * 1.2
	if style != nil {
		lineHeight = style.GetLineHeight()
	}
	halfLeading := (lineHeight - m.Height()) / 2
	return LineMetrics{
		SpaceAboveBaseline: m.Ascent + halfLeading,
		SpaceBelowBaseline: m.Descent + halfLeading,
	}
}

// MinimumLineMetricsForFragments computes joint metrics for fragments
// sharing one baseline. The result is seeded from the dominant style —
// typically the owning block's — so the baseline follows the dominant font
// even when a fragment's glyph comes from another, then maxed against each
// fragment's own metrics. Fragments without any content contribute nothing;
// an all-empty set yields zero metrics.
func MinimumLineMetricsForFragments(fragments []*Fragment, ctx *Context, dominant *css.Style) LineMetrics {
	var metrics LineMetrics
	seeded := false
	for _, f := range fragments {
		if f.Text == "" && f.Replaced == nil && f.Generated == nil {
			continue
		}
		if !seeded {
			metrics = lineMetricsForStyle(ctx, dominant)
			seeded = true
		}
		if f.Replaced != nil {
			// Replaced content sits on the baseline.
			metrics = metrics.max(LineMetrics{SpaceAboveBaseline: f.BorderBox.BlockSize})
			continue
		}
		metrics = metrics.max(lineMetricsForStyle(ctx, f.Style))
	}
	return metrics
}

// AlignedAscent returns the distance from the fragment's top edge to the
// baseline it aligns on: replaced content sits on the baseline, text hangs
// from its own font ascent.
func (f *Fragment) AlignedAscent(ctx *Context) float64 {
	if f.Replaced != nil {
		return f.BorderBox.BlockSize
	}
	return lineMetricsForStyle(ctx, f.Style).SpaceAboveBaseline
}
