package pdfsnap

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFrame_Accessors(t *testing.T) {
	data := pngBytes(t, 10, 10)
	f := NewFrame(7, data)
	if f.Index() != 7 {
		t.Errorf("Index() = %d, want 7", f.Index())
	}
	if !bytes.Equal(f.Bytes(), data) {
		t.Error("Bytes() did not return original data")
	}
	if f.Len() != len(data) {
		t.Errorf("Len() = %d, want %d", f.Len(), len(data))
	}
}

func TestFrame_Filename(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{1, "page_001.png"},
		{42, "page_042.png"},
		{500, "page_500.png"},
	}
	for _, tt := range tests {
		if got := NewFrame(tt.index, nil).Filename(); got != tt.want {
			t.Errorf("Filename(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestFrame_Image(t *testing.T) {
	f := NewFrame(1, pngBytes(t, 12, 8))
	img, err := f.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 12x8", img.Bounds())
	}
}

func TestFrame_ImageInvalid(t *testing.T) {
	f := NewFrame(3, []byte("not a png"))
	if _, err := f.Image(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFrame_WriteToDir(t *testing.T) {
	data := pngBytes(t, 10, 10)
	dir := t.TempDir()

	path, err := NewFrame(2, data).WriteToDir(dir)
	if err != nil {
		t.Fatalf("WriteToDir: %v", err)
	}
	if filepath.Base(path) != "page_002.png" {
		t.Errorf("path = %s, want page_002.png", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("written file differs from frame data")
	}
}

func TestFrame_WriteTo(t *testing.T) {
	data := pngBytes(t, 10, 10)
	var buf bytes.Buffer
	n, err := NewFrame(1, data).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("WriteTo wrote %d bytes, want %d", n, len(data))
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Error("WriteTo produced different content")
	}
}
