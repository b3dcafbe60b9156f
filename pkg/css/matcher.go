package css

import (
	"strings"

	"versailles/pkg/html"
)

// MatchesSelector returns true if the node matches the selector's compound
// parts and combinators. The pseudo-element, if any, is not considered here;
// callers filter on Selector.PseudoElement themselves.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	if len(selector.Parts) == 0 {
		return false
	}

	// Match right to left: the last part is the target element.
	return matchesFromPart(node, selector, len(selector.Parts)-1)
}

func matchesFromPart(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesSelectorPart(node, selector.Parts[partIndex]) {
		return false
	}
	if partIndex == 0 {
		return true
	}

	switch selector.Combinators[partIndex-1] {
	case ChildCombinator:
		parent := node.Parent
		if parent != nil && parent.TagName != "document" {
			return matchesFromPart(parent, selector, partIndex-1)
		}
		return false
	case DescendantCombinator:
		for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
			if ancestor.Type != html.ElementNode || ancestor.TagName == "document" {
				continue
			}
			if matchesFromPart(ancestor, selector, partIndex-1) {
				return true
			}
		}
		return false
	}
	return false
}

func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" {
		if node.TagName != part.Element {
			return false
		}
	}

	if part.ID != "" && node.GetAttribute("id") != part.ID {
		return false
	}

	for _, required := range part.Classes {
		if !nodeHasClass(node, required) {
			return false
		}
	}

	return true
}

func nodeHasClass(node *html.Node, class string) bool {
	for _, c := range strings.Fields(node.GetAttribute("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// FindMatchingRules returns the rules whose selectors match the node,
// excluding pseudo-element rules (those style generated boxes, not the
// element itself).
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	matches := make([]Rule, 0)
	for _, rule := range stylesheet.Rules {
		if rule.Selector.PseudoElement != "" {
			continue
		}
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
