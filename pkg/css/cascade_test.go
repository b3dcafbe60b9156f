package css

import (
	"testing"

	"versailles/pkg/html"
)

func makeElement(tag string, parent *html.Node) *html.Node {
	node := &html.Node{
		Type:       html.ElementNode,
		TagName:    tag,
		Attributes: make(map[string]string),
	}
	if parent != nil {
		parent.AddChild(node)
	}
	return node
}

func parseSheets(t *testing.T, cssTexts ...string) []*Stylesheet {
	t.Helper()
	sheets := make([]*Stylesheet, 0, len(cssTexts))
	for _, text := range cssTexts {
		ss, err := ParseStylesheet(text)
		if err != nil {
			t.Fatalf("ParseStylesheet: %v", err)
		}
		sheets = append(sheets, ss)
	}
	return sheets
}

func TestComputeStyle_SpecificityOrder(t *testing.T) {
	node := makeElement("p", nil)
	node.Attributes["class"] = "intro"
	sheets := parseSheets(t, ".intro { color: green; } p { color: red; }")

	style := ComputeStyle(node, nil, sheets)
	if color, _ := style.Get("color"); color != "green" {
		t.Errorf("expected class rule to win, got color=%q", color)
	}
}

func TestComputeStyle_InlineWins(t *testing.T) {
	node := makeElement("p", nil)
	node.Attributes["id"] = "x"
	node.Attributes["style"] = "color: purple"
	sheets := parseSheets(t, "#x { color: red; }")

	style := ComputeStyle(node, nil, sheets)
	if color, _ := style.Get("color"); color != "purple" {
		t.Errorf("expected inline style to win, got color=%q", color)
	}
}

func TestComputeStyle_Inheritance(t *testing.T) {
	parent := NewStyle()
	parent.Set("font-size", "20px")
	parent.Set("list-style-type", "square")
	parent.Set("width", "500px")

	node := makeElement("span", nil)
	style := ComputeStyle(node, parent, nil)

	if size, _ := style.Get("font-size"); size != "20px" {
		t.Errorf("expected font-size inherited, got %q", size)
	}
	if lst, _ := style.Get("list-style-type"); lst != "square" {
		t.Errorf("expected list-style-type inherited, got %q", lst)
	}
	if _, ok := style.Get("width"); ok {
		t.Error("width must not inherit")
	}
}

func TestComputeStyle_UserAgentListDefaults(t *testing.T) {
	ul := makeElement("ul", nil)
	li := makeElement("li", ul)

	ulStyle := ComputeStyle(ul, nil, nil)
	if ulStyle.GetListStyleType() != ListStyleTypeDisc {
		t.Errorf("expected ul default disc, got %v", ulStyle.GetListStyleType())
	}
	if pad, _ := ulStyle.GetLength("padding-left"); pad != 40 {
		t.Errorf("expected ul padding-left 40, got %f", pad)
	}

	liStyle := ComputeStyle(li, ulStyle, nil)
	if liStyle.GetDisplay() != DisplayListItem {
		t.Errorf("expected li display list-item, got %v", liStyle.GetDisplay())
	}
	if liStyle.GetListStyleType() != ListStyleTypeDisc {
		t.Errorf("expected li to inherit disc, got %v", liStyle.GetListStyleType())
	}
}

func TestComputeStyle_OrderedListDecimal(t *testing.T) {
	ol := makeElement("ol", nil)
	olStyle := ComputeStyle(ol, nil, nil)
	li := makeElement("li", ol)
	liStyle := ComputeStyle(li, olStyle, nil)

	if liStyle.GetListStyleType() != ListStyleTypeDecimal {
		t.Errorf("expected decimal from ol, got %v", liStyle.GetListStyleType())
	}
}

func TestComputeStyle_AuthorOverridesUA(t *testing.T) {
	ul := makeElement("ul", nil)
	sheets := parseSheets(t, "ul { list-style-type: square; }")
	style := ComputeStyle(ul, nil, sheets)
	if style.GetListStyleType() != ListStyleTypeSquare {
		t.Errorf("expected author square over UA disc, got %v", style.GetListStyleType())
	}
}

func TestComputeMarkerStyle_FallsBackToItemHandle(t *testing.T) {
	li := makeElement("li", nil)
	itemStyle := NewStyle()
	itemStyle.Set("color", "red")
	sheets := parseSheets(t, "li { color: red; }")

	markerStyle := ComputeMarkerStyle(li, itemStyle, sheets)
	if markerStyle != itemStyle {
		t.Error("expected the item's style handle to be shared when no ::marker rule matches")
	}
}

func TestComputeMarkerStyle_PseudoRules(t *testing.T) {
	ul := makeElement("ul", nil)
	li := makeElement("li", ul)
	itemStyle := NewStyle()
	itemStyle.Set("font-size", "20px")
	itemStyle.Set("color", "black")
	sheets := parseSheets(t, "li::marker { color: red; list-style-type: circle; }")

	markerStyle := ComputeMarkerStyle(li, itemStyle, sheets)
	if markerStyle == itemStyle {
		t.Fatal("expected a distinct marker style")
	}
	if markerStyle.GetColor() != (Color{255, 0, 0, 1}) {
		t.Errorf("expected marker color red, got %+v", markerStyle.GetColor())
	}
	if markerStyle.GetFontSize() != 20 {
		t.Errorf("expected inherited font-size 20, got %f", markerStyle.GetFontSize())
	}
	if markerStyle.GetListStyleType() != ListStyleTypeCircle {
		t.Errorf("expected circle, got %v", markerStyle.GetListStyleType())
	}
}

func TestApplyStylesToDocument(t *testing.T) {
	doc, err := html.Parse(`<style>ul { list-style-type: square; } li.special::marker { color: red; }</style><ul><li>one</li><li class="special">two</li></ul>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	styles := ApplyStylesToDocument(doc)

	ul := doc.Root.Children[0]
	if ul.TagName != "ul" {
		t.Fatalf("expected ul root child, got %q", ul.TagName)
	}
	first := ul.Children[0]
	second := ul.Children[1]

	if styles[first].GetListStyleType() != ListStyleTypeSquare {
		t.Errorf("expected li to inherit square, got %v", styles[first].GetListStyleType())
	}
	if styles[first].GetDisplay() != DisplayListItem {
		t.Error("expected li display list-item")
	}
	if styles[second] == nil {
		t.Fatal("expected second li to have a computed style")
	}
}

func TestMatchesSelector_Combinators(t *testing.T) {
	ul := makeElement("ul", nil)
	li := makeElement("li", ul)
	span := makeElement("span", li)

	sheets := parseSheets(t, "ul li { color: red; } ul > span { color: blue; }")
	descendantRule := sheets[0].Rules[0]
	childRule := sheets[0].Rules[1]

	if !MatchesSelector(li, descendantRule.Selector) {
		t.Error("ul li should match li inside ul")
	}
	if MatchesSelector(span, descendantRule.Selector) {
		t.Error("ul li must not match a span")
	}
	if MatchesSelector(span, childRule.Selector) {
		t.Error("ul > span must not match a span nested in li")
	}
}
