package pdfsnap

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func grayImage(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// gradientImage produces a non-uniform test frame.
func gradientImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*7 + y*13) % 256)})
		}
	}
	return img
}

func TestGrayDiff_Reflexive(t *testing.T) {
	img := gradientImage(80, 60)
	if got := (GrayDiff{}).Score(img, img); got != 1.0 {
		t.Errorf("Score(x, x) = %v, want 1.0", got)
	}
}

func TestGrayDiff_Symmetric(t *testing.T) {
	a := gradientImage(80, 60)
	b := grayImage(80, 60, 200)
	m := GrayDiff{}
	if sa, sb := m.Score(a, b), m.Score(b, a); sa != sb {
		t.Errorf("Score(a, b) = %v but Score(b, a) = %v", sa, sb)
	}
}

func TestGrayDiff_UniformShades(t *testing.T) {
	tests := []struct {
		a, b uint8
		want float64
	}{
		{0, 0, 1.0},
		{0, 255, 0.0},
		{100, 100, 1.0},
		{0, 128, 1 - 128.0/255},
	}
	m := GrayDiff{}
	for _, tt := range tests {
		got := m.Score(grayImage(64, 64, tt.a), grayImage(64, 64, tt.b))
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("Score(%d, %d) = %v, want ~%v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGrayDiff_DimensionMismatch(t *testing.T) {
	a := grayImage(100, 100, 255)
	b := grayImage(50, 50, 255)
	if got := (GrayDiff{}).Score(a, b); got != 0 {
		t.Errorf("Score across sizes = %v, want 0", got)
	}
}

func TestGrayDiff_NilAndEmpty(t *testing.T) {
	m := GrayDiff{}
	img := grayImage(10, 10, 0)
	if got := m.Score(nil, img); got != 0 {
		t.Errorf("Score(nil, img) = %v, want 0", got)
	}
	if got := m.Score(img, nil); got != 0 {
		t.Errorf("Score(img, nil) = %v, want 0", got)
	}
	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	if got := m.Score(empty, empty); got != 0 {
		t.Errorf("Score(empty, empty) = %v, want 0", got)
	}
}

func TestGrayDiff_CustomGrid(t *testing.T) {
	a := gradientImage(200, 200)
	m := GrayDiff{Size: 8}
	if got := m.Score(a, a); got != 1.0 {
		t.Errorf("Score with custom grid = %v, want 1.0", got)
	}
}

func TestHistogram_Reflexive(t *testing.T) {
	img := gradientImage(80, 60)
	got := (Histogram{}).Score(img, img)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Score(x, x) = %v, want 1.0", got)
	}
}

func TestHistogram_DimensionMismatch(t *testing.T) {
	a := grayImage(100, 100, 255)
	b := grayImage(50, 50, 255)
	if got := (Histogram{}).Score(a, b); got != 0 {
		t.Errorf("Score across sizes = %v, want 0", got)
	}
}

func TestHistogram_IgnoresLayout(t *testing.T) {
	// Same ink distribution, different placement: the histogram metric
	// deliberately cannot tell these apart.
	a := grayImage(40, 40, 255)
	b := grayImage(40, 40, 255)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			a.SetGray(x, y, color.Gray{Y: 0})
			b.SetGray(30+x, 30+y, color.Gray{Y: 0})
		}
	}
	got := (Histogram{}).Score(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Score(shifted) = %v, want ~1.0", got)
	}
}

func TestHistogram_DisjointShades(t *testing.T) {
	a := grayImage(40, 40, 0)
	b := grayImage(40, 40, 255)
	if got := (Histogram{}).Score(a, b); got != 0 {
		t.Errorf("Score(black, white) = %v, want 0", got)
	}
}
