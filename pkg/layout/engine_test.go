package layout

import (
	"strings"
	"testing"

	"versailles/pkg/html"
)

func TestLayoutEngine_SingleBlock(t *testing.T) {
	root := layoutHTML(t, `<div style="width: 200px; height: 100px;"></div>`)

	base := root.Base()
	if !approx(base.Position.InlineSize, 800) {
		t.Errorf("root inline size = %v, want viewport width", base.Position.InlineSize)
	}

	child := base.Children[0].Base()
	if !approx(child.Position.InlineSize, 200) || !approx(child.Position.BlockSize, 100) {
		t.Errorf("child sized %vx%v, want 200x100",
			child.Position.InlineSize, child.Position.BlockSize)
	}
	if !approx(child.Position.InlineStart, 0) || !approx(child.Position.BlockStart, 0) {
		t.Errorf("child at (%v, %v), want origin",
			child.Position.InlineStart, child.Position.BlockStart)
	}
}

func TestLayoutEngine_AuthorStylesheet(t *testing.T) {
	root := layoutHTML(t, `<style>div { height: 30px; }</style><div></div>`)

	child := root.Base().Children[0]
	if got := child.Base().Position.BlockSize; !approx(got, 30) {
		t.Errorf("child block size = %v, want 30 from the stylesheet", got)
	}
}

func TestLayoutEngine_DocumentCascadeReachesText(t *testing.T) {
	root := layoutHTML(t, `<style>div { color: red; }</style><div>hi</div>`)

	div := root.Base().Children[0].(*BlockFlow)
	anon := div.Base().Children[0].(*BlockFlow)
	// The anonymous text block inherits from the element style the
	// document-level cascade computed.
	c := anon.TextFragments[0].Style.GetColor()
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("text color = %+v, want red", c)
	}
}

func TestLayoutEngine_ListPipeline(t *testing.T) {
	root := layoutHTML(t, `<ul><li>item</li></ul>`)

	ul := root.Base().Children[0]
	if !approx(ul.Base().Position.InlineSize, 800) {
		t.Errorf("ul inline size = %v, want 800", ul.Base().Position.InlineSize)
	}

	item := firstListItem(t, root)
	ib := item.Base()
	if !approx(ib.Position.InlineSize, 760) {
		t.Errorf("li inline size = %v, want 760 inside the ul padding", ib.Position.InlineSize)
	}
	if !approx(ib.StackingRelativePosition.X, 40) || !approx(ib.StackingRelativePosition.Y, 0) {
		t.Errorf("li painted at (%v, %v), want (40, 0)",
			ib.StackingRelativePosition.X, ib.StackingRelativePosition.Y)
	}
}

func TestLayoutEngine_BuildDisplayList(t *testing.T) {
	doc, err := html.Parse(`<ul><li style="background-color: yellow;">item</li></ul>`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	engine := NewLayoutEngine(800, 600)
	items := engine.BuildDisplayList(doc)

	bgIndex, markerIndex, textIndex := -1, -1, -1
	for i, item := range items {
		switch {
		case item.Kind == DisplaySolidColor:
			bgIndex = i
		case item.Kind == DisplayText && strings.Contains(item.Text, "•"):
			markerIndex = i
		case item.Kind == DisplayText && item.Text == "item":
			textIndex = i
		}
	}
	if bgIndex < 0 || markerIndex < 0 || textIndex < 0 {
		t.Fatalf("display list missing pieces: bg %d marker %d text %d",
			bgIndex, markerIndex, textIndex)
	}
	if bgIndex > markerIndex || bgIndex > textIndex {
		t.Error("background painted over content")
	}

	// The marker hangs left of the item's border box in viewport
	// coordinates: 40px in, minus its own width.
	marker := items[markerIndex]
	if !approx(marker.Bounds.X, 40-float64(len("•\u00a0"))*16*0.6) {
		t.Errorf("marker bounds X = %v, want -8", marker.Bounds.X)
	}
	text := items[textIndex]
	if !approx(text.Bounds.X, 40) {
		t.Errorf("item text bounds X = %v, want 40", text.Bounds.X)
	}
	bg := items[bgIndex]
	if !approx(bg.Bounds.X, 40) || !approx(bg.Bounds.Width, 760) {
		t.Errorf("background bounds = %+v, want the li border box", bg.Bounds)
	}
}

func TestLayoutEngine_ViewportPropagation(t *testing.T) {
	root := layoutHTML(t, `<div></div>`)

	base := root.Base()
	if base.Floats == nil {
		t.Fatal("root float context missing")
	}
	if !approx(base.RelativeContainingBlockSize.Inline, 800) ||
		!approx(base.RelativeContainingBlockSize.Block, 600) {
		t.Errorf("root containing block = %+v, want the viewport", base.RelativeContainingBlockSize)
	}

	child := base.Children[0].Base()
	if !approx(child.BlockContainerInlineSize, 800) {
		t.Errorf("child container inline size = %v, want 800", child.BlockContainerInlineSize)
	}
}
