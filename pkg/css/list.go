package css

import "strings"

// ListStyleType represents the list-style-type property value. Beyond the
// keywords named here, any counter-style keyword (decimal, lower-alpha, ...)
// is carried verbatim; resolving those to text is the job of the
// generated-content subsystem, not the style layer.
type ListStyleType string

const (
	ListStyleTypeNone             ListStyleType = "none"
	ListStyleTypeDisc             ListStyleType = "disc"
	ListStyleTypeCircle           ListStyleType = "circle"
	ListStyleTypeSquare           ListStyleType = "square"
	ListStyleTypeDisclosureOpen   ListStyleType = "disclosure-open"
	ListStyleTypeDisclosureClosed ListStyleType = "disclosure-closed"
	ListStyleTypeDecimal          ListStyleType = "decimal"
	ListStyleTypeLowerAlpha       ListStyleType = "lower-alpha"
	ListStyleTypeUpperAlpha       ListStyleType = "upper-alpha"
	ListStyleTypeLowerRoman       ListStyleType = "lower-roman"
	ListStyleTypeUpperRoman       ListStyleType = "upper-roman"
)

// GetListStyleType returns the list-style-type value (default: disc).
func (s *Style) GetListStyleType() ListStyleType {
	if val, ok := s.Get("list-style-type"); ok {
		val = strings.TrimSpace(val)
		if val != "" {
			return ListStyleType(val)
		}
	}
	return ListStyleTypeDisc
}

// ListStylePosition represents the list-style-position property value.
type ListStylePosition string

const (
	ListStylePositionOutside ListStylePosition = "outside"
	ListStylePositionInside  ListStylePosition = "inside"
)

// GetListStylePosition returns the list-style-position value (default: outside).
func (s *Style) GetListStylePosition() ListStylePosition {
	if val, ok := s.Get("list-style-position"); ok {
		if strings.TrimSpace(val) == "inside" {
			return ListStylePositionInside
		}
	}
	return ListStylePositionOutside
}

// GetListStyleImage returns the URL from list-style-image, if one is set.
// "none" and malformed values report no image.
func (s *Style) GetListStyleImage() (string, bool) {
	val, ok := s.Get("list-style-image")
	if !ok {
		return "", false
	}
	return ParseURLValue(val)
}

// ParseURLValue extracts the target of a CSS url(...) value. Quotes around
// the URL are stripped.
func ParseURLValue(val string) (string, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "url(") || !strings.HasSuffix(val, ")") {
		return "", false
	}
	inner := strings.TrimSpace(val[4 : len(val)-1])
	inner = strings.Trim(inner, `"'`)
	if inner == "" {
		return "", false
	}
	return inner, true
}

// expandListStyleProperty expands the list-style shorthand into
// list-style-type, list-style-position, and list-style-image.
// "list-style: none" clears both the type and the image.
func expandListStyleProperty(style *Style, value string) {
	sawType := false
	for _, part := range strings.Fields(value) {
		switch {
		case part == "inside" || part == "outside":
			style.Set("list-style-position", part)
		case strings.HasPrefix(part, "url("):
			style.Set("list-style-image", part)
		case part == "none" && !sawType:
			style.Set("list-style-type", "none")
			style.Set("list-style-image", "none")
			sawType = true
		default:
			style.Set("list-style-type", part)
			sawType = true
		}
	}
}
