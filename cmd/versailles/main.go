package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"versailles/pkg/html"
	"versailles/pkg/images"
	"versailles/pkg/layout"
	"versailles/pkg/paint"
)

func main() {
	input := flag.String("in", "", "input HTML file")
	output := flag.String("out", "page.png", "output PNG file")
	width := flag.Int("w", 800, "viewport width in pixels")
	height := flag.Int("h", 600, "viewport height in pixels")
	verbose := flag.Bool("v", false, "log layout detail")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: versailles -in page.html [-out page.png] [-w 800] [-h 600] [-v]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
		layout.SetLogger(l)
	}

	htmlContent, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	doc, err := html.Parse(string(htmlContent))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	engine := layout.NewLayoutEngine(float64(*width), float64(*height))
	engine.SetImageFetcher(images.HTTPFetcher(images.FileFetcher(filepath.Dir(*input))))
	items := engine.BuildDisplayList(doc)

	painter := paint.NewPainter(*width, *height)
	painter.Paint(items)
	if err := painter.SavePNG(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %s to %s (%d display items)\n", *input, *output, len(items))
}
