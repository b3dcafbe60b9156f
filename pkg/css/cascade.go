package css

import (
	"sort"

	"versailles/pkg/html"
)

// inheritedProperties are copied from the parent's computed style when the
// cascade leaves them unset. The list-style family is inherited so that
// ul/ol-level declarations reach their items.
var inheritedProperties = []string{
	"color",
	"font-size",
	"font-weight",
	"line-height",
	"list-style-type",
	"list-style-position",
	"list-style-image",
}

// applyUserAgentStyles applies default browser styles based on element type.
// Declared UA values sit below author rules but above inheritance, which is
// how nested lists reset to their own default bullet.
func applyUserAgentStyles(node *html.Node, style *Style) {
	if node.Type != html.ElementNode {
		return
	}

	switch node.TagName {
	case "head", "title", "meta", "link", "base":
		style.Set("display", "none")
	case "a":
		style.Set("color", "#0645ad")
		style.Set("text-decoration", "underline")
	case "ul":
		style.Set("list-style-type", "disc")
		style.Set("padding-left", "40px")
	case "ol":
		style.Set("list-style-type", "decimal")
		style.Set("padding-left", "40px")
	case "li":
		style.Set("display", "list-item")
	case "summary":
		style.Set("display", "list-item")
		style.Set("list-style-type", "disclosure-closed")
	}
}

// ComputeStyle computes the final style for a node: inherited properties,
// then user agent defaults, then matching author rules in specificity order,
// then the inline style attribute.
func ComputeStyle(node *html.Node, parent *Style, stylesheets []*Stylesheet) *Style {
	finalStyle := NewStyle()

	if parent != nil {
		for _, prop := range inheritedProperties {
			if val, ok := parent.Get(prop); ok {
				finalStyle.Set(prop, val)
			}
		}
	}

	applyUserAgentStyles(node, finalStyle)

	allRules := make([]Rule, 0)
	for _, stylesheet := range stylesheets {
		allRules = append(allRules, FindMatchingRules(node, stylesheet)...)
	}

	sort.SliceStable(allRules, func(i, j int) bool {
		return allRules[i].Selector.Specificity < allRules[j].Selector.Specificity
	})

	for _, rule := range allRules {
		for property, value := range rule.Declarations {
			finalStyle.Set(property, value)
		}
	}

	if styleAttr := node.GetAttribute("style"); styleAttr != "" {
		inlineStyle := ParseInlineStyle(styleAttr)
		for property, value := range inlineStyle.Properties {
			finalStyle.Set(property, value)
		}
	}

	return finalStyle
}

// InheritedTextStyle builds a style carrying only the inherited text
// properties of parent, for anonymous boxes that must not repeat the
// parent's box decorations.
func InheritedTextStyle(parent *Style) *Style {
	style := NewStyle()
	if parent != nil {
		for _, prop := range inheritedProperties {
			if val, ok := parent.Get(prop); ok {
				style.Set(prop, val)
			}
		}
	}
	return style
}

// ComputeMarkerStyle resolves the ::marker style for a list item. When no
// ::marker rule matches, the item's own style handle is returned unchanged
// and shared; otherwise a fresh style is built from the item's inheritable
// properties plus the matching declarations.
func ComputeMarkerStyle(node *html.Node, itemStyle *Style, stylesheets []*Stylesheet) *Style {
	allRules := make([]Rule, 0)
	for _, stylesheet := range stylesheets {
		for _, rule := range stylesheet.Rules {
			if rule.Selector.PseudoElement != "marker" {
				continue
			}
			if MatchesSelector(node, rule.Selector) {
				allRules = append(allRules, rule)
			}
		}
	}

	if len(allRules) == 0 {
		return itemStyle
	}

	sort.SliceStable(allRules, func(i, j int) bool {
		return allRules[i].Selector.Specificity < allRules[j].Selector.Specificity
	})

	markerStyle := NewStyle()
	for _, prop := range inheritedProperties {
		if val, ok := itemStyle.Get(prop); ok {
			markerStyle.Set(prop, val)
		}
	}
	for _, rule := range allRules {
		for property, value := range rule.Declarations {
			markerStyle.Set(property, value)
		}
	}
	return markerStyle
}

// ApplyStylesToDocument computes styles for every element in the document.
func ApplyStylesToDocument(doc *html.Document) map[*html.Node]*Style {
	styles := make(map[*html.Node]*Style)

	stylesheets := make([]*Stylesheet, 0)
	for _, cssText := range doc.Stylesheets {
		if stylesheet, err := ParseStylesheet(cssText); err == nil {
			stylesheets = append(stylesheets, stylesheet)
		}
	}

	applyStylesToNode(doc.Root, nil, stylesheets, styles)
	return styles
}

func applyStylesToNode(node *html.Node, parent *Style, stylesheets []*Stylesheet, styles map[*html.Node]*Style) {
	current := parent
	if node.Type == html.ElementNode && node.TagName != "document" {
		computed := ComputeStyle(node, parent, stylesheets)
		styles[node] = computed
		current = computed
	}

	for _, child := range node.Children {
		applyStylesToNode(child, current, stylesheets, styles)
	}
}
