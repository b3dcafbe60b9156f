package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dop251/goja"

	"versailles/pkg/html"
	"versailles/pkg/images"
	"versailles/pkg/layout"
	"versailles/pkg/query"
)

func main() {
	input := flag.String("in", "", "input HTML file")
	width := flag.Int("w", 800, "viewport width in pixels")
	height := flag.Int("h", 600, "viewport height in pixels")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vquery -in page.html script.js\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" || flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
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
	script, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	engine := layout.NewLayoutEngine(float64(*width), float64(*height))
	engine.SetImageFetcher(images.HTTPFetcher(images.FileFetcher(filepath.Dir(*input))))
	root := engine.Layout(doc)

	v, err := query.New().Run(string(script), root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
		fmt.Println(v.String())
	}
}
