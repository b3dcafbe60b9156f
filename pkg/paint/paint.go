package paint

import (
	"image"

	"github.com/fogleman/gg"

	"versailles/pkg/css"
	"versailles/pkg/layout"
	"versailles/pkg/text"
)

// Painter rasterizes a display list onto a pixel buffer. Items are drawn in
// slice order; BuildDisplayList already arranged them back to front, so no
// sorting happens here.
type Painter struct {
	context *gg.Context
	fonts   text.FontConfig
}

func NewPainter(width, height int) *Painter {
	return &Painter{
		context: gg.NewContext(width, height),
		fonts:   text.DefaultFontConfig(),
	}
}

// SetFontConfig overrides the font files text items are drawn with.
func (p *Painter) SetFontConfig(fonts text.FontConfig) {
	p.fonts = fonts
}

// Paint clears the canvas to white and draws every item in order.
func (p *Painter) Paint(items []layout.DisplayItem) {
	p.context.SetRGB(1, 1, 1)
	p.context.Clear()

	for _, item := range items {
		switch item.Kind {
		case layout.DisplaySolidColor:
			p.paintSolidColor(item)
		case layout.DisplayBorder:
			p.paintBorder(item)
		case layout.DisplayText:
			p.paintText(item)
		case layout.DisplayImage:
			p.paintImage(item)
		}
	}
}

func (p *Painter) setColor(c css.Color) {
	p.context.SetRGBA(
		float64(c.R)/255.0,
		float64(c.G)/255.0,
		float64(c.B)/255.0,
		c.A,
	)
}

func (p *Painter) paintSolidColor(item layout.DisplayItem) {
	if item.Bounds.Width <= 0 || item.Bounds.Height <= 0 {
		return
	}
	p.setColor(item.Color)
	p.context.DrawRectangle(item.Bounds.X, item.Bounds.Y, item.Bounds.Width, item.Bounds.Height)
	p.context.Fill()
}

// paintBorder draws each side as a trapezoid between the outer and inner
// edges, the mitered rendering CSS specifies.
func (p *Painter) paintBorder(item layout.DisplayItem) {
	if item.Color.A <= 0 {
		return
	}
	b := item.Bounds
	w := item.Widths
	outerLeft, outerTop := b.X, b.Y
	outerRight, outerBottom := b.X+b.Width, b.Y+b.Height
	innerLeft, innerTop := outerLeft+w.Left, outerTop+w.Top
	innerRight, innerBottom := outerRight-w.Right, outerBottom-w.Bottom

	p.setColor(item.Color)

	if w.Top > 0 {
		p.context.MoveTo(outerLeft, outerTop)
		p.context.LineTo(outerRight, outerTop)
		p.context.LineTo(innerRight, innerTop)
		p.context.LineTo(innerLeft, innerTop)
		p.context.ClosePath()
		p.context.Fill()
	}
	if w.Right > 0 {
		p.context.MoveTo(outerRight, outerTop)
		p.context.LineTo(outerRight, outerBottom)
		p.context.LineTo(innerRight, innerBottom)
		p.context.LineTo(innerRight, innerTop)
		p.context.ClosePath()
		p.context.Fill()
	}
	if w.Bottom > 0 {
		p.context.MoveTo(outerLeft, outerBottom)
		p.context.LineTo(outerRight, outerBottom)
		p.context.LineTo(innerRight, innerBottom)
		p.context.LineTo(innerLeft, innerBottom)
		p.context.ClosePath()
		p.context.Fill()
	}
	if w.Left > 0 {
		p.context.MoveTo(outerLeft, outerTop)
		p.context.LineTo(outerLeft, outerBottom)
		p.context.LineTo(innerLeft, innerBottom)
		p.context.LineTo(innerLeft, innerTop)
		p.context.ClosePath()
		p.context.Fill()
	}
}

func (p *Painter) paintText(item layout.DisplayItem) {
	if item.Text == "" {
		return
	}
	p.context.SetRGB(
		float64(item.Color.R)/255.0,
		float64(item.Color.G)/255.0,
		float64(item.Color.B)/255.0,
	)

	fontPath := p.fonts.FontPath(item.Bold, false, false, false)
	if err := p.context.LoadFontFace(fontPath, item.FontSize); err != nil {
		// No usable font file, skip drawing.
		return
	}
	// Bounds.Y is the line top; DrawString wants the baseline.
	p.context.DrawString(item.Text, item.Bounds.X, item.Bounds.Y+item.FontSize)
}

func (p *Painter) paintImage(item layout.DisplayItem) {
	if item.Image == nil {
		return
	}
	bounds := item.Image.Bounds()
	imgWidth := float64(bounds.Dx())
	imgHeight := float64(bounds.Dy())
	if imgWidth <= 0 || imgHeight <= 0 {
		return
	}

	p.context.Push()
	p.context.Translate(item.Bounds.X, item.Bounds.Y)
	p.context.Scale(item.Bounds.Width/imgWidth, item.Bounds.Height/imgHeight)
	p.context.DrawImage(item.Image, 0, 0)
	p.context.Pop()
}

// Image returns the painted pixels.
func (p *Painter) Image() image.Image {
	return p.context.Image()
}

// SavePNG writes the painted pixels to a PNG file.
func (p *Painter) SavePNG(filename string) error {
	return p.context.SavePNG(filename)
}
