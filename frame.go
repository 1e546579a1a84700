package pdfsnap

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Frame is a single captured page: the PNG-encoded screenshot plus its
// 1-based sequence index. Frames are written to disk as they are captured
// and released; the session never accumulates them.
type Frame struct {
	index int
	data  []byte
}

// NewFrame wraps PNG data as the frame with the given 1-based index.
func NewFrame(index int, data []byte) Frame {
	return Frame{index: index, data: data}
}

// Index returns the frame's 1-based page number.
func (f Frame) Index() int {
	return f.index
}

// Bytes returns the raw PNG content.
func (f Frame) Bytes() []byte {
	return f.data
}

// Len returns the size of the PNG in bytes.
func (f Frame) Len() int {
	return len(f.data)
}

// Image decodes the frame into an [image.Image].
func (f Frame) Image() (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(f.data))
	if err != nil {
		return nil, fmt.Errorf("pdfsnap: decoding frame %d: %w", f.index, err)
	}
	return img, nil
}

// Filename returns the index-derived name the frame is persisted under,
// e.g. "page_003.png".
func (f Frame) Filename() string {
	return fmt.Sprintf("page_%03d.png", f.index)
}

// WriteTo writes the full PNG content to w. It implements [io.WriterTo].
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.data)
	return int64(n), err
}

// WriteToDir persists the frame under its [Frame.Filename] in dir and
// returns the written path.
func (f Frame) WriteToDir(dir string) (string, error) {
	path := filepath.Join(dir, f.Filename())
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		return "", fmt.Errorf("pdfsnap: writing frame %d: %w", f.index, err)
	}
	return path, nil
}
