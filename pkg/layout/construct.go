package layout

import (
	"strings"

	"versailles/pkg/css"
	"versailles/pkg/html"
	"versailles/pkg/images"
)

// BuildFlowTree constructs the flow tree for a styled document. Element
// styles come from the cascade's per-node map; the stylesheets are still
// consulted for ::marker rules, which resolve per item. The root is an
// anonymous block standing in for the viewport; element subtrees with
// display: none produce no flows at all.
func BuildFlowTree(doc *html.Document, styles map[*html.Node]*css.Style, stylesheets []*css.Stylesheet, ctx *Context) Flow {
	root := NewBlockFlow(&Fragment{Style: css.NewStyle()})
	for _, child := range doc.Root.Children {
		buildFlowForNode(child, styles, stylesheets, ctx, root)
	}
	return root
}

func buildFlowForNode(node *html.Node, styles map[*html.Node]*css.Style, stylesheets []*css.Stylesheet, ctx *Context, parent *BlockFlow) {
	switch node.Type {
	case html.TextNode:
		if strings.TrimSpace(node.Text) == "" {
			return
		}
		// Text runs live in anonymous blocks so the parent carries either
		// children or text, never both. The anonymous style inherits text
		// properties without repeating the enclosing element's box
		// decorations.
		anonStyle := css.InheritedTextStyle(styles[node.Parent])
		anon := NewBlockFlow(&Fragment{Style: anonStyle})
		anon.TextFragments = []*Fragment{{
			Style: anonStyle,
			Node:  node,
			Text:  node.Text,
		}}
		parent.base.Children = append(parent.base.Children, anon)

	case html.ElementNode:
		style := styles[node]
		if style == nil || style.GetDisplay() == css.DisplayNone {
			return
		}

		block := NewBlockFlow(&Fragment{Style: style, Node: node})
		for _, child := range node.Children {
			buildFlowForNode(child, styles, stylesheets, ctx, block)
		}

		var flow Flow = block
		if style.GetDisplay() == css.DisplayListItem {
			flow = NewListItemFlow(block, buildMarkerFragments(node, style, stylesheets, ctx))
		}
		parent.base.Children = append(parent.base.Children, flow)
	}
}

// buildMarkerFragments produces the marker fragments for a list item.
// list-style-image wins over the type keyword; a keyword outside the fixed
// glyph set yields a fragment whose text the generated-content pass fills
// in. list-style-type: none yields no fragments.
func buildMarkerFragments(node *html.Node, itemStyle *css.Style, stylesheets []*css.Stylesheet, ctx *Context) []*Fragment {
	markerStyle := css.ComputeMarkerStyle(node, itemStyle, stylesheets)

	if uri, ok := markerStyle.GetListStyleImage(); ok {
		img, err := images.LoadImageWithFetcher(uri, ctx.Images)
		if err == nil {
			bounds := img.Bounds()
			return []*Fragment{{
				Style: markerStyle,
				Replaced: &ReplacedInfo{
					Image:         img,
					NaturalWidth:  float64(bounds.Dx()),
					NaturalHeight: float64(bounds.Dy()),
				},
			}}
		}
		// A broken image falls back to the keyword marker
		debugf("marker image %q failed to load: %v", uri, err)
	}

	content := MarkerContentForListStyleType(markerStyle.GetListStyleType())
	switch content.Kind {
	case MarkerStaticText:
		// The no-break space keeps a gap between glyph and item text.
		return []*Fragment{{
			Style: markerStyle,
			Text:  string(content.Glyph) + "\u00a0",
		}}
	case MarkerGeneratedContent:
		return []*Fragment{{
			Style:     markerStyle,
			Generated: content.Info,
		}}
	}
	return nil
}

// ResolveGeneratedContent fills in marker text that depends on list-item
// counters. Counting is per parent flow: each flow numbers its list-item
// children from one, so nested lists restart naturally. Only flows tagged
// DamageResolveGeneratedContent at construction are touched.
func ResolveGeneratedContent(root Flow) {
	counter := 0
	for _, child := range root.Base().Children {
		if item, ok := child.(*ListItemFlow); ok {
			counter++
			if item.Base().Damage.Has(DamageResolveGeneratedContent) {
				resolveMarkerText(item, counter)
			}
		}
		ResolveGeneratedContent(child)
	}
}

func resolveMarkerText(item *ListItemFlow, value int) {
	for _, marker := range item.MarkerFragments {
		if marker.Generated == nil || marker.Replaced != nil {
			continue
		}
		styleType := css.ListStyleTypeDecimal
		if marker.Style != nil {
			styleType = marker.Style.GetListStyleType()
		}
		marker.Text = CounterText(styleType, value) + "\u00a0"
		marker.intrinsicSizes = nil
	}
}
