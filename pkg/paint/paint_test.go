package paint

import (
	"image"
	"image/color"
	"testing"

	"versailles/pkg/css"
	"versailles/pkg/layout"
)

func pixel(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestPainter_ClearsToWhite(t *testing.T) {
	p := NewPainter(10, 10)
	p.Paint(nil)
	if c := pixel(t, p.Image(), 5, 5); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("canvas = %+v, want white", c)
	}
}

func TestPainter_SolidColor(t *testing.T) {
	p := NewPainter(40, 40)
	p.Paint([]layout.DisplayItem{{
		Kind:   layout.DisplaySolidColor,
		Bounds: layout.Rect{X: 10, Y: 10, Width: 20, Height: 20},
		Color:  css.Color{R: 255, A: 1},
	}})

	img := p.Image()
	if c := pixel(t, img, 20, 20); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("inside = %+v, want red", c)
	}
	if c := pixel(t, img, 5, 5); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("outside = %+v, want white", c)
	}
}

func TestPainter_DrawsInSliceOrder(t *testing.T) {
	rect := layout.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	p := NewPainter(10, 10)
	p.Paint([]layout.DisplayItem{
		{Kind: layout.DisplaySolidColor, Bounds: rect, Color: css.Color{R: 255, A: 1}},
		{Kind: layout.DisplaySolidColor, Bounds: rect, Color: css.Color{B: 255, A: 1}},
	})

	if c := pixel(t, p.Image(), 5, 5); c.B != 255 || c.R != 0 {
		t.Errorf("top pixel = %+v, want the later blue item", c)
	}
}

func TestPainter_BorderStrips(t *testing.T) {
	p := NewPainter(30, 30)
	p.Paint([]layout.DisplayItem{{
		Kind:   layout.DisplayBorder,
		Bounds: layout.Rect{X: 0, Y: 0, Width: 20, Height: 20},
		Color:  css.Color{A: 1},
		Widths: css.BoxEdge{Top: 4, Right: 4, Bottom: 4, Left: 4},
	}})

	img := p.Image()
	if c := pixel(t, img, 10, 2); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("top strip = %+v, want black", c)
	}
	if c := pixel(t, img, 2, 10); c.R != 0 {
		t.Errorf("left strip = %+v, want black", c)
	}
	// The middle is not covered by border strips.
	if c := pixel(t, img, 10, 10); c.R != 255 || c.G != 255 {
		t.Errorf("middle = %+v, want white", c)
	}
}

func TestPainter_ImageScaledToBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	p := NewPainter(20, 20)
	p.Paint([]layout.DisplayItem{{
		Kind:   layout.DisplayImage,
		Bounds: layout.Rect{X: 0, Y: 0, Width: 8, Height: 8},
		Image:  src,
	}})

	img := p.Image()
	if c := pixel(t, img, 4, 4); c.R != 255 || c.G != 0 {
		t.Errorf("scaled image pixel = %+v, want red", c)
	}
	if c := pixel(t, img, 15, 15); c.R != 255 || c.G != 255 {
		t.Errorf("outside image = %+v, want white", c)
	}
}

func TestPainter_MissingFontSkipsText(t *testing.T) {
	p := NewPainter(50, 20)
	p.Paint([]layout.DisplayItem{{
		Kind:     layout.DisplayText,
		Bounds:   layout.Rect{X: 0, Y: 0, Width: 40, Height: 19.2},
		Color:    css.Color{A: 1},
		Text:     "hello",
		FontSize: 16,
	}})

	// Without a usable font file, the text item paints nothing.
	if c := pixel(t, p.Image(), 10, 10); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("canvas = %+v, want untouched white", c)
	}
}
