package pdfsnap

import (
	"image"

	"golang.org/x/image/draw"
)

// Metric scores how alike two frames look, from 0 (entirely different) to
// 1 (identical). Implementations must be symmetric and reflexive, and must
// return 0 for frames of different dimensions: a size change between
// consecutive frames never indicates a repeated page.
//
// The metric is a pluggable strategy so capture runs can be tuned to the
// rendering quirks of a particular viewer without touching the loop.
type Metric interface {
	Score(a, b image.Image) float64
}

// compareSize is the square grid frames are downscaled to before pixel
// comparison. Downscaling absorbs sub-pixel rendering jitter (antialiasing,
// scrollbar fades) that would otherwise defeat an exact comparison.
const compareSize = 64

// GrayDiff scores frames by mean absolute difference of grayscale
// intensities after downscaling. It is the default metric: cheap,
// deterministic, and tolerant of minor rendering noise.
type GrayDiff struct {
	// Size overrides the downscale grid edge length. Zero means the
	// package default.
	Size int
}

func (m GrayDiff) Score(a, b image.Image) float64 {
	if !comparable(a, b) {
		return 0
	}
	size := m.Size
	if size <= 0 {
		size = compareSize
	}
	ga := downscaleGray(a, size)
	gb := downscaleGray(b, size)

	var sum int64
	for i := range ga.Pix {
		d := int64(ga.Pix[i]) - int64(gb.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	n := int64(len(ga.Pix))
	return 1 - float64(sum)/float64(n*255)
}

// Histogram scores frames by intersection of normalized 64-bin grayscale
// histograms. It ignores spatial layout entirely, which makes it more
// forgiving of viewers that shift content slightly between renders, at the
// cost of confusing pages that merely share an ink distribution.
type Histogram struct{}

func (Histogram) Score(a, b image.Image) float64 {
	if !comparable(a, b) {
		return 0
	}
	ha := grayHistogram(a)
	hb := grayHistogram(b)

	var inter float64
	for i := range ha {
		if ha[i] < hb[i] {
			inter += ha[i]
		} else {
			inter += hb[i]
		}
	}
	return inter
}

// comparable reports whether two frames can be meaningfully scored:
// both present, non-empty, and of equal dimensions.
func comparable(a, b image.Image) bool {
	if a == nil || b == nil {
		return false
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() == 0 || ab.Dy() == 0 {
		return false
	}
	return ab.Dx() == bb.Dx() && ab.Dy() == bb.Dy()
}

// downscaleGray resizes img to a size×size grayscale grid.
func downscaleGray(img image.Image, size int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// grayHistogram computes a normalized 64-bin intensity histogram.
func grayHistogram(img image.Image) [64]float64 {
	var bins [64]float64
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// Luma approximation on 16-bit channels, bucketed to 64 bins.
			luma := (299*r + 587*g + 114*bl) / 1000
			bins[luma>>10]++
		}
	}
	total := float64(b.Dx() * b.Dy())
	for i := range bins {
		bins[i] /= total
	}
	return bins
}
