package css

import (
	"fmt"
	"strings"
)

// Combinator joins two compound selectors.
type Combinator int

const (
	DescendantCombinator Combinator = iota // "a b"
	ChildCombinator                        // "a > b"
)

// SelectorPart is one compound selector: an optional element name plus any
// number of class and id simple selectors (e.g. "li.item#first").
type SelectorPart struct {
	Element string
	ID      string
	Classes []string
}

// Selector is a full complex selector: compound parts joined by combinators,
// optionally targeting a pseudo-element on the final part.
type Selector struct {
	Raw           string
	Parts         []SelectorPart
	Combinators   []Combinator // len(Parts)-1 entries
	PseudoElement string       // "marker", "before", ... without colons
	Specificity   int
}

// Rule is a selector plus its declarations.
type Rule struct {
	Selector     Selector
	Declarations map[string]string
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS text into rules. Malformed rules and at-rules
// are skipped; parsing never fails on recoverable input.
func ParseStylesheet(cssText string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	cssText = stripComments(cssText)
	cssText = strings.TrimSpace(cssText)
	if cssText == "" {
		return stylesheet, nil
	}

	for _, ruleStr := range splitRules(cssText) {
		selectorStr, declStr, err := splitRule(ruleStr)
		if err != nil {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(selectorStr), "@") {
			continue
		}
		declarations := parseDeclarations(declStr)

		// A comma-separated selector list yields one rule per selector,
		// each with its own specificity.
		for _, sel := range strings.Split(selectorStr, ",") {
			selector, ok := parseSelector(sel)
			if !ok {
				continue
			}
			stylesheet.Rules = append(stylesheet.Rules, Rule{
				Selector:     selector,
				Declarations: declarations,
			})
		}
	}

	return stylesheet, nil
}

// stripComments removes /* ... */ comments.
func stripComments(cssText string) string {
	var sb strings.Builder
	for {
		start := strings.Index(cssText, "/*")
		if start == -1 {
			sb.WriteString(cssText)
			return sb.String()
		}
		sb.WriteString(cssText[:start])
		end := strings.Index(cssText[start+2:], "*/")
		if end == -1 {
			return sb.String()
		}
		cssText = cssText[start+2+end+2:]
	}
}

// splitRules splits CSS into individual "selector { declarations }" chunks,
// tracking brace depth so nested at-rule bodies stay together.
func splitRules(cssText string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range cssText {
		if ch == '{' {
			depth++
		} else if ch == '}' {
			if depth == 0 {
				// Stray closing brace: discard everything up to here.
				start = i + 1
				continue
			}
			depth--
			if depth == 0 {
				ruleStr := cssText[start : i+1]
				if strings.TrimSpace(ruleStr) != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
		}
	}

	return rules
}

// splitRule separates one rule into its selector text and declaration text.
func splitRule(ruleStr string) (selectorStr, declStr string, err error) {
	bracePos := strings.Index(ruleStr, "{")
	if bracePos == -1 {
		return "", "", fmt.Errorf("no opening brace found")
	}
	selectorStr = strings.TrimSpace(ruleStr[:bracePos])
	if selectorStr == "" {
		return "", "", fmt.Errorf("empty selector")
	}

	declEnd := strings.LastIndex(ruleStr, "}")
	if declEnd == -1 {
		declEnd = len(ruleStr)
	}
	declStr = ruleStr[bracePos+1 : declEnd]
	return selectorStr, declStr, nil
}

// parseSelector parses one complex selector (no commas).
func parseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, false
	}

	sel := Selector{Raw: raw}

	// ::marker (and single-colon legacy syntax) on the last compound part.
	if idx := strings.Index(raw, "::"); idx != -1 {
		sel.PseudoElement = strings.TrimSpace(raw[idx+2:])
		raw = strings.TrimSpace(raw[:idx])
	} else if idx := strings.LastIndex(raw, ":"); idx != -1 {
		name := strings.TrimSpace(raw[idx+1:])
		if isPseudoElementName(name) {
			sel.PseudoElement = name
			raw = strings.TrimSpace(raw[:idx])
		}
	}
	if raw == "" {
		// A bare "::marker" applies to every element.
		raw = "*"
	}

	// Split on combinators. ">" binds the two adjacent compound parts;
	// plain whitespace is a descendant combinator.
	tokens := tokenizeSelector(raw)
	expectPart := true
	for _, tok := range tokens {
		if tok == ">" {
			if expectPart || len(sel.Parts) == 0 {
				return Selector{}, false
			}
			sel.Combinators = append(sel.Combinators, ChildCombinator)
			expectPart = true
			continue
		}
		part, ok := parseSelectorPart(tok)
		if !ok {
			return Selector{}, false
		}
		if !expectPart {
			sel.Combinators = append(sel.Combinators, DescendantCombinator)
		}
		sel.Parts = append(sel.Parts, part)
		expectPart = false
	}
	if len(sel.Parts) == 0 || expectPart {
		return Selector{}, false
	}

	sel.Specificity = computeSpecificity(sel)
	return sel, true
}

func isPseudoElementName(name string) bool {
	switch name {
	case "marker", "before", "after", "first-line", "first-letter":
		return true
	}
	return false
}

// tokenizeSelector splits selector text into compound parts and ">" tokens.
func tokenizeSelector(raw string) []string {
	raw = strings.ReplaceAll(raw, ">", " > ")
	return strings.Fields(raw)
}

// parseSelectorPart parses one compound selector like "li.item#first".
func parseSelectorPart(token string) (SelectorPart, bool) {
	part := SelectorPart{}
	if token == "" {
		return part, false
	}

	i := 0
	for i < len(token) {
		switch token[i] {
		case '.':
			name, next := readName(token, i+1)
			if name == "" {
				return part, false
			}
			part.Classes = append(part.Classes, name)
			i = next
		case '#':
			name, next := readName(token, i+1)
			if name == "" {
				return part, false
			}
			part.ID = name
			i = next
		default:
			name, next := readName(token, i)
			if name == "" {
				return part, false
			}
			part.Element = strings.ToLower(name)
			i = next
		}
	}
	return part, true
}

func readName(token string, start int) (string, int) {
	i := start
	for i < len(token) && token[i] != '.' && token[i] != '#' {
		i++
	}
	return token[start:i], i
}

// computeSpecificity scores a selector: 100 per id, 10 per class,
// 1 per element name or pseudo-element.
func computeSpecificity(sel Selector) int {
	score := 0
	for _, part := range sel.Parts {
		if part.ID != "" {
			score += 100
		}
		score += 10 * len(part.Classes)
		if part.Element != "" && part.Element != "*" {
			score++
		}
	}
	if sel.PseudoElement != "" {
		score++
	}
	return score
}

// parseDeclarations parses declaration text into a property map, expanding
// shorthands along the way.
func parseDeclarations(declStr string) map[string]string {
	declarations := make(map[string]string)

	for _, part := range strings.Split(declStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		colonPos := strings.Index(part, ":")
		if colonPos == -1 {
			continue
		}

		property := strings.TrimSpace(strings.ToLower(part[:colonPos]))
		value := strings.TrimSpace(part[colonPos+1:])
		if property == "" || value == "" {
			continue
		}

		style := NewStyle()
		expandShorthand(style, property, value)
		for k, v := range style.Properties {
			declarations[k] = v
		}
	}

	return declarations
}
