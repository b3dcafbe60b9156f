package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Style holds the computed properties for one element. Computed styles are
// shared by pointer and never mutated after the cascade; a restyle replaces
// the handle rather than editing the map in place.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a pixel length value (e.g., "100px" or "100").
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParseLengthOrPercent parses a value that may be a pixel length or a
// percentage. Percentages are returned as a fraction of 1.
func ParseLengthOrPercent(val string) (value float64, isPercent bool, ok bool) {
	val = strings.TrimSpace(val)
	if strings.HasSuffix(val, "%") {
		num, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return 0, false, false
		}
		return num / 100.0, true, true
	}
	num, lok := ParseLength(val)
	return num, false, lok
}

// GetLengthOrPercent returns a length property that may carry a percentage.
func (s *Style) GetLengthOrPercent(property string) (value float64, isPercent bool, ok bool) {
	val, present := s.Get(property)
	if !present {
		return 0, false, false
	}
	return ParseLengthOrPercent(val)
}

// BoxEdge represents the four sides of a box (top, right, bottom, left).
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// GetMargin returns the margin values for all four sides.
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides.
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

// GetBorderWidth returns the border width for all four sides.
func (s *Style) GetBorderWidth() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("border-top-width"),
		Right:  s.getLengthOrZero("border-right-width"),
		Bottom: s.getLengthOrZero("border-bottom-width"),
		Left:   s.getLengthOrZero("border-left-width"),
	}
}

func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// GetPosition returns the position type (default: static).
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		}
	}
	return PositionStatic
}

// GetZIndex returns the z-index value (default: 0).
func (s *Style) GetZIndex() int {
	if zindex, ok := s.Get("z-index"); ok {
		var z int
		if _, err := fmt.Sscanf(zindex, "%d", &z); err == nil {
			return z
		}
	}
	return 0
}

// GetOpacity returns the opacity value clamped to [0, 1] (default: 1).
func (s *Style) GetOpacity() float64 {
	if val, ok := s.Get("opacity"); ok {
		if num, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			if num < 0 {
				return 0
			}
			if num > 1 {
				return 1
			}
			return num
		}
	}
	return 1.0
}

// ParseInlineStyle parses a style="" attribute value.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	declarations := strings.Split(styleAttr, ";")
	for _, decl := range declarations {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties.
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin":
		expandBoxProperty(style, "margin", value)
	case "padding":
		expandBoxProperty(style, "padding", value)
	case "border":
		expandBorderProperty(style, value)
	case "list-style":
		expandListStyleProperty(style, value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands margin/padding shorthand.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l).
func expandBoxProperty(style *Style, prefix, value string) {
	parts := strings.Fields(value)

	switch len(parts) {
	case 1:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[0])
		style.Set(prefix+"-bottom", parts[0])
		style.Set(prefix+"-left", parts[0])
	case 2:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-bottom", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-left", parts[1])
	case 3:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-left", parts[1])
		style.Set(prefix+"-bottom", parts[2])
	case 4:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-bottom", parts[2])
		style.Set(prefix+"-left", parts[3])
	}
}

// expandBorderProperty expands border shorthand ("1px solid black").
func expandBorderProperty(style *Style, value string) {
	parts := strings.Fields(value)

	for _, part := range parts {
		if strings.HasSuffix(part, "px") {
			style.Set("border-width", part)
			style.Set("border-top-width", part)
			style.Set("border-right-width", part)
			style.Set("border-bottom-width", part)
			style.Set("border-left-width", part)
		} else if part == "solid" || part == "dotted" || part == "dashed" || part == "double" {
			style.Set("border-style", part)
		} else {
			style.Set("border-color", part)
		}
	}
}

// Color is an RGB color with an alpha fraction.
type Color struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]Color{
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"blue":        {0, 0, 255, 1},
	"yellow":      {255, 255, 0, 1},
	"cyan":        {0, 255, 255, 1},
	"magenta":     {255, 0, 255, 1},
	"white":       {255, 255, 255, 1},
	"black":       {0, 0, 0, 1},
	"gray":        {128, 128, 128, 1},
	"orange":      {255, 165, 0, 1},
	"purple":      {128, 0, 128, 1},
	"pink":        {255, 192, 203, 1},
	"brown":       {165, 42, 42, 1},
	"lime":        {0, 255, 0, 1},
	"navy":        {0, 0, 128, 1},
	"teal":        {0, 128, 128, 1},
	"silver":      {192, 192, 192, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses named colors, #rgb/#rrggbb hex, and rgb()/rgba().
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))

	if color, ok := namedColors[colorStr]; ok {
		return color, true
	}

	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}

	if strings.HasPrefix(colorStr, "rgb(") || strings.HasPrefix(colorStr, "rgba(") {
		return parseRGBFunc(colorStr)
	}

	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		r, err1 := strconv.ParseUint(string(hex[0])+string(hex[0]), 16, 8)
		g, err2 := strconv.ParseUint(string(hex[1])+string(hex[1]), 16, 8)
		b, err3 := strconv.ParseUint(string(hex[2])+string(hex[2]), 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, false
		}
		return Color{uint8(r), uint8(g), uint8(b), 1}, true
	case 6:
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, false
		}
		return Color{uint8(r), uint8(g), uint8(b), 1}, true
	}
	return Color{}, false
}

func parseRGBFunc(val string) (Color, bool) {
	open := strings.Index(val, "(")
	end := strings.LastIndex(val, ")")
	if open == -1 || end == -1 || end < open {
		return Color{}, false
	}
	parts := strings.Split(val[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	channels := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		num, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || num < 0 || num > 255 {
			return Color{}, false
		}
		channels[i] = uint8(num)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		alpha = a
	}
	return Color{channels[0], channels[1], channels[2], alpha}, true
}

// GetFontSize returns the font-size in pixels (default: 16px).
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 16.0
}

// GetColor returns the text color (default: black).
func (s *Style) GetColor() Color {
	if colorStr, ok := s.Get("color"); ok {
		if color, ok := ParseColor(colorStr); ok {
			return color
		}
	}
	return Color{0, 0, 0, 1}
}

// FloatType represents the float property value.
type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

// GetFloat returns the float value (default: none).
func (s *Style) GetFloat() FloatType {
	if floatVal, ok := s.Get("float"); ok {
		switch floatVal {
		case "left":
			return FloatLeft
		case "right":
			return FloatRight
		}
	}
	return FloatNone
}

// ClearType represents the clear property value.
type ClearType string

const (
	ClearNone  ClearType = "none"
	ClearLeft  ClearType = "left"
	ClearRight ClearType = "right"
	ClearBoth  ClearType = "both"
)

// GetClear returns the clear value (default: none).
func (s *Style) GetClear() ClearType {
	if clearVal, ok := s.Get("clear"); ok {
		switch clearVal {
		case "left":
			return ClearLeft
		case "right":
			return ClearRight
		case "both":
			return ClearBoth
		}
	}
	return ClearNone
}

// FontWeight represents the font-weight property value.
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// GetFontWeight returns the font-weight value (default: normal).
func (s *Style) GetFontWeight() FontWeight {
	if weight, ok := s.Get("font-weight"); ok {
		switch weight {
		case "bold", "700", "800", "900":
			return FontWeightBold
		}
	}
	return FontWeightNormal
}

// DisplayType represents the display property value.
type DisplayType string

const (
	DisplayBlock    DisplayType = "block"
	DisplayInline   DisplayType = "inline"
	DisplayListItem DisplayType = "list-item"
	DisplayNone     DisplayType = "none"
)

// GetDisplay returns the display value (default: block).
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "list-item":
			return DisplayListItem
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size).
// A bare number is a factor of the font size, not a pixel length, so it must
// be recognized before the length parse accepts it.
func (s *Style) GetLineHeight() float64 {
	if raw, ok := s.Get("line-height"); ok {
		raw = strings.TrimSpace(raw)
		if factor, err := strconv.ParseFloat(raw, 64); err == nil {
			return factor * s.GetFontSize()
		}
		if lh, ok := ParseLength(raw); ok {
			return lh
		}
	}
	return s.GetFontSize() * 1.2
}
