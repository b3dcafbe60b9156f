package text

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/math/fixed"
)

// Metrics describes the vertical extent of a font at a given size, measured
// from the alphabetic baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// Height is the total line extent of the font.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// SynthesizedMetrics estimates metrics when no font file is available.
// The 80/20 split approximates the baseline position of common text fonts.
func SynthesizedMetrics(fontSize float64) Metrics {
	return Metrics{Ascent: fontSize * 0.8, Descent: fontSize * 0.2}
}

type faceKey struct {
	path string
	size float64
}

// FontContext caches parsed fonts and their resolved metrics. Safe for
// concurrent use.
type FontContext struct {
	mu      sync.Mutex
	fonts   map[string]*truetype.Font
	metrics map[faceKey]Metrics
}

func NewFontContext() *FontContext {
	return &FontContext{
		fonts:   make(map[string]*truetype.Font),
		metrics: make(map[faceKey]Metrics),
	}
}

// Metrics returns the ascent and descent of the font at the given size.
// Unreadable or unparseable fonts fall back to synthesized metrics, so the
// result is always usable.
func (fc *FontContext) Metrics(fontPath string, fontSize float64) Metrics {
	key := faceKey{fontPath, fontSize}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if m, ok := fc.metrics[key]; ok {
		return m
	}
	m := fc.resolveMetricsLocked(fontPath, fontSize)
	fc.metrics[key] = m
	return m
}

func (fc *FontContext) resolveMetricsLocked(fontPath string, fontSize float64) Metrics {
	fnt, probed := fc.fonts[fontPath]
	if !probed {
		if data, err := os.ReadFile(fontPath); err == nil {
			if parsed, err := truetype.Parse(data); err == nil {
				fnt = parsed
			}
		}
		// A nil entry records a failed probe so bad paths are read once.
		fc.fonts[fontPath] = fnt
	}
	if fnt == nil {
		return SynthesizedMetrics(fontSize)
	}

	face := truetype.NewFace(fnt, &truetype.Options{Size: fontSize})
	defer face.Close()
	fm := face.Metrics()
	return Metrics{
		Ascent:  fixedToFloat(fm.Ascent),
		Descent: fixedToFloat(fm.Descent),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
