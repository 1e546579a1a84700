package pdfsnap

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Viewer].
	ErrClosed = errors.New("pdfsnap: viewer is closed")

	// ErrNotOpen is returned when a [Viewer] method requires an open
	// document and none has been opened yet.
	ErrNotOpen = errors.New("pdfsnap: no document is open")

	// ErrNoMode is returned by [Session.Run] when the configuration
	// selects neither a screenshot count nor auto-capture.
	ErrNoMode = errors.New("pdfsnap: either ScreenshotCount or AutoCapture must be set")
)
