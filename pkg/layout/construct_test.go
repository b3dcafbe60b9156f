package layout

import (
	"testing"

	"versailles/pkg/css"
	"versailles/pkg/html"
)

func TestBuildFlowTree_SkipsDisplayNone(t *testing.T) {
	root := layoutHTML(t,
		`<head><title>x</title></head><div style="height: 10px;"></div>`)

	children := root.Base().Children
	if len(children) != 1 {
		t.Fatalf("root children = %d, want only the div", len(children))
	}
	if _, ok := children[0].(*BlockFlow); !ok {
		t.Errorf("child is %T, want *BlockFlow", children[0])
	}
}

func TestBuildFlowTree_FlowClasses(t *testing.T) {
	root := layoutHTML(t, `<div></div><ul><li>a</li></ul>`)

	children := root.Base().Children
	if len(children) != 2 {
		t.Fatalf("root children = %d, want 2", len(children))
	}
	if children[0].Class() != FlowBlock {
		t.Errorf("div class = %v, want block", children[0].Class())
	}
	li := children[1].Base().Children[0]
	if li.Class() != FlowListItem {
		t.Errorf("li class = %v, want list-item", li.Class())
	}
}

func TestBuildFlowTree_AnonymousTextBlocks(t *testing.T) {
	root := layoutHTML(t, `<div>hello<p>para</p></div>`)

	div := root.Base().Children[0].(*BlockFlow)
	if len(div.TextFragments) != 0 {
		t.Errorf("element flow carries %d text fragments, want 0", len(div.TextFragments))
	}
	if len(div.Base().Children) != 2 {
		t.Fatalf("div children = %d, want anonymous block plus p", len(div.Base().Children))
	}

	anon := div.Base().Children[0].(*BlockFlow)
	if len(anon.TextFragments) != 1 {
		t.Fatalf("anonymous block text fragments = %d, want 1", len(anon.TextFragments))
	}
	if anon.TextFragments[0].Text != "hello" {
		t.Errorf("text = %q, want %q", anon.TextFragments[0].Text, "hello")
	}
	if anon.Fragment.Node != nil {
		t.Error("anonymous block should not claim the element node")
	}
}

func TestBuildFlowTree_WhitespaceOnlyTextSkipped(t *testing.T) {
	root := layoutHTML(t, `<div> <p>x</p> </div>`)

	div := root.Base().Children[0].(*BlockFlow)
	if len(div.Base().Children) != 1 {
		t.Errorf("div children = %d, want only the p", len(div.Base().Children))
	}
}

func TestBuildFlowTree_AnonymousStyleInheritsText(t *testing.T) {
	root := layoutHTML(t, `<div style="color: red; font-size: 20px; padding: 4px;">hi</div>`)

	div := root.Base().Children[0].(*BlockFlow)
	anon := div.Base().Children[0].(*BlockFlow)
	style := anon.TextFragments[0].Style
	if c := style.GetColor(); c.R != 255 {
		t.Errorf("text color = %+v, want red", c)
	}
	if fs := style.GetFontSize(); !approx(fs, 20) {
		t.Errorf("text font size = %v, want 20", fs)
	}
	// Box properties stay on the element, not the anonymous wrapper.
	if p := style.GetPadding(); p.Left != 0 {
		t.Errorf("anonymous block inherited padding %v", p.Left)
	}
}

func TestBuildFlowTree_ListStyleShorthandNone(t *testing.T) {
	root := layoutHTML(t, `<ul><li style="list-style: none;">x</li></ul>`)
	item := firstListItem(t, root)
	if len(item.MarkerFragments) != 0 {
		t.Errorf("markers = %d, want none", len(item.MarkerFragments))
	}
}

func TestBuildFlowTree_SummaryDisclosureMarker(t *testing.T) {
	root := layoutHTML(t, `<details><summary>more</summary></details>`)
	item := firstListItem(t, root)
	if len(item.MarkerFragments) != 1 {
		t.Fatalf("markers = %d, want 1", len(item.MarkerFragments))
	}
	if got := item.MarkerFragments[0].Text; got != "▸\u00a0" {
		t.Errorf("summary marker = %q, want closed disclosure glyph", got)
	}
}

func TestBuildFlowTree_MarkerStyleCascade(t *testing.T) {
	root := layoutHTML(t,
		`<style>li::marker { color: red; }</style>`+
			`<ul style="font-size: 20px;"><li>x</li></ul>`)
	item := firstListItem(t, root)
	marker := item.MarkerFragments[0]

	if marker.Style == item.Block.Fragment.Style {
		t.Fatal("matching ::marker rule should build a separate style")
	}
	if c := marker.Style.GetColor(); c.R != 255 || c.G != 0 {
		t.Errorf("marker color = %+v, want red", c)
	}
	// Inheritable properties of the item carry into the marker style.
	if fs := marker.Style.GetFontSize(); !approx(fs, 20) {
		t.Errorf("marker font size = %v, want 20", fs)
	}
	// The item's own text stays its own color.
	if c := item.Block.Fragment.Style.GetColor(); c.R != 0 {
		t.Errorf("item color = %+v, want default", c)
	}
}

func TestBuildFlowTree_GeneratedMarkerStartsUnresolved(t *testing.T) {
	ctx := testContext()
	doc, err := html.Parse(`<ol><li>x</li></ol>`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	// Construction only; the counter-resolution pass has not run.
	root := BuildFlowTree(doc, css.ApplyStylesToDocument(doc), nil, ctx)
	item := firstListItem(t, root)

	if len(item.MarkerFragments) != 1 {
		t.Fatalf("markers = %d, want 1", len(item.MarkerFragments))
	}
	marker := item.MarkerFragments[0]
	if marker.Text != "" {
		t.Errorf("unresolved marker text = %q, want empty", marker.Text)
	}
	if marker.Generated == nil {
		t.Fatal("marker missing generated-content info")
	}
	if marker.Generated.Kind != GeneratedContentListItem {
		t.Errorf("generated kind = %v, want list-item counter", marker.Generated.Kind)
	}
	// Unresolved markers measure as empty.
	if got := marker.IntrinsicInlineSizes(ctx).PreferredInlineSize; !approx(got, 0) {
		t.Errorf("unresolved marker width = %v, want 0", got)
	}
}
