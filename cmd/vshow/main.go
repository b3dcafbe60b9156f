package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"versailles/pkg/html"
	"versailles/pkg/images"
	"versailles/pkg/layout"
	"versailles/pkg/paint"
)

func main() {
	width := flag.Int("w", 800, "viewport width in pixels")
	height := flag.Int("h", 600, "viewport height in pixels")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vshow [flags] [page.html]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	a := app.New()
	w := a.NewWindow("versailles")
	w.Resize(fyne.NewSize(float32(*width)+40, float32(*height)+120))

	// Blank initial render target
	target := image.NewRGBA(image.Rect(0, 0, *width, *height))
	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("Enter an HTML file path and press Enter")

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("page.html")

	render := func(path string) {
		htmlContent, err := os.ReadFile(path)
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		doc, err := html.Parse(string(htmlContent))
		if err != nil {
			status.SetText("Parse error: " + err.Error())
			return
		}

		engine := layout.NewLayoutEngine(float64(*width), float64(*height))
		engine.SetImageFetcher(images.HTTPFetcher(images.FileFetcher(filepath.Dir(path))))
		painter := paint.NewPainter(*width, *height)
		painter.Paint(engine.BuildDisplayList(doc))

		canvasImg.Image = painter.Image()
		canvasImg.Refresh()
		status.SetText(path)
		w.SetTitle("versailles - " + filepath.Base(path))
	}
	pathEntry.OnSubmitted = render

	// Layout: path bar on top, status at bottom, image fills center
	topBar := container.NewBorder(nil, nil, nil, nil, pathEntry)
	content := container.NewBorder(topBar, status, nil, nil, canvasImg)
	w.SetContent(content)

	// Keep focus on the entry to prevent Tab freeze with no other focusable widgets
	w.Canvas().Focus(pathEntry)

	if flag.NArg() > 0 {
		pathEntry.SetText(flag.Arg(0))
		render(flag.Arg(0))
	}

	w.ShowAndRun()
}
