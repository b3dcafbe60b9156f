package layout

import (
	"versailles/pkg/css"
	"versailles/pkg/html"
	"versailles/pkg/images"
	"versailles/pkg/text"
)

// Context carries the shared resources one layout pass reads: viewport
// geometry, font configuration and metrics, and the marker image fetcher.
type Context struct {
	Viewport   Size
	FontConfig text.FontConfig
	Fonts      *text.FontContext
	Images     images.ImageFetcher
}

func NewContext(viewport Size) *Context {
	return &Context{
		Viewport:   viewport,
		FontConfig: text.DefaultFontConfig(),
		Fonts:      text.NewFontContext(),
	}
}

// fontPath resolves the font file a style's text renders with.
func (ctx *Context) fontPath(style *css.Style) string {
	bold := false
	if style != nil {
		bold = style.GetFontWeight() == css.FontWeightBold
	}
	return ctx.FontConfig.FontPath(bold, false, false, false)
}

// fontMetrics returns ascent and descent for the style's font and size.
// Missing fonts yield synthesized metrics, so layout never fails on a bad
// font path.
func (ctx *Context) fontMetrics(style *css.Style) text.Metrics {
	fontSize := 16.0
	if style != nil {
		fontSize = style.GetFontSize()
	}
	return ctx.Fonts.Metrics(ctx.fontPath(style), fontSize)
}

// LayoutEngine drives the pipeline from parsed document to display list.
type LayoutEngine struct {
	viewport Size
	ctx      *Context
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{viewport: Size{Width: viewportWidth, Height: viewportHeight}}
	le.ctx = NewContext(le.viewport)
	return le
}

// SetImageFetcher sets the fetcher used to load marker images during layout.
func (le *LayoutEngine) SetImageFetcher(fetcher images.ImageFetcher) {
	le.ctx.Images = fetcher
}

// Context returns the engine's layout context.
func (le *LayoutEngine) Context() *Context {
	return le.ctx
}

// LayoutTree runs the layout passes over an existing flow tree: bottom-up
// intrinsic sizing, top-down inline sizing, block sizing with float
// placement, then stacking-relative positions.
func (le *LayoutEngine) LayoutTree(root Flow) {
	base := root.Base()
	base.BlockContainerInlineSize = le.viewport.Width
	base.RelativeContainingBlockSize = LogicalSize{
		Inline: le.viewport.Width,
		Block:  le.viewport.Height,
	}
	if base.Floats == nil {
		base.Floats = NewFloats()
	}

	root.BubbleInlineSizes(le.ctx)
	root.AssignInlineSizes(le.ctx)
	root.AssignBlockSize(le.ctx)
	root.ComputeStackingRelativePosition(le.ctx)
}

// Layout runs the document cascade, builds the flow tree, resolves
// counter-derived marker text, and lays the tree out. The returned root is
// ready for display-list building.
func (le *LayoutEngine) Layout(doc *html.Document) Flow {
	styles := css.ApplyStylesToDocument(doc)
	// The sheets are parsed a second time for the ::marker cascade, which
	// construction resolves against each item.
	stylesheets := parseStylesheets(doc)
	root := BuildFlowTree(doc, styles, stylesheets, le.ctx)
	ResolveGeneratedContent(root)
	le.LayoutTree(root)
	return root
}

// BuildDisplayList lays the document out and flattens the stacking-context
// tree into back-to-front paint order.
func (le *LayoutEngine) BuildDisplayList(doc *html.Document) []DisplayItem {
	root := le.Layout(doc)
	return BuildStackingContextTree(root).PaintOrder()
}

func parseStylesheets(doc *html.Document) []*css.Stylesheet {
	sheets := make([]*css.Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		sheet, err := css.ParseStylesheet(cssText)
		if err != nil {
			debugf("stylesheet parse failed: %v", err)
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}
