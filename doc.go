// Package pdfsnap captures visually rendered PDF pages as images by driving
// a viewer process, grabbing frames, and injecting page-advance input. It is
// intended for documents whose content cannot be extracted programmatically:
// whatever the viewer can put on screen, pdfsnap can save to disk.
//
// The viewer is Chrome's built-in PDF renderer, driven over the DevTools
// protocol. Chrome or Chromium must be available in PATH, or use
// [WithAutoDownload] to fetch a private Chromium build.
//
// # Capturing a document
//
// For one-off runs use the package-level helper:
//
//	cfg := pdfsnap.DefaultConfig()
//	cfg.AutoCapture = true
//	res, err := pdfsnap.Capture(ctx, "report.pdf", cfg)
//
// For more control create a [Viewer] and a [Session] separately:
//
//	v, err := pdfsnap.NewViewer(pdfsnap.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	if err := v.Open(ctx, "report.pdf"); err != nil {
//	    log.Fatal(err)
//	}
//
//	s := pdfsnap.NewSession(cfg)
//	res, err := s.Run(ctx, v)
//
// A [Result] reports what was written and why the loop stopped:
//
//	res.Files()  // ordered image paths, one per page
//	res.Pages()  // number of pages captured
//	res.Reason() // StopEndOfDocument, StopCountReached, or StopPageLimit
//
// # Modes
//
// Manual mode captures a fixed number of pages ([Config.ScreenshotCount]).
// Auto mode ([Config.AutoCapture]) keeps capturing until consecutive frames
// look the same — the signature of a viewer that has run out of pages to
// turn. The comparison is a pluggable [Metric]; [GrayDiff] is the default
// and [Histogram] is available as an alternative. [Config.MaxPages] bounds
// both modes so a run always terminates.
//
// # Testing without a browser
//
// [Session.Run] accepts any [PageSource], so the orchestration loop can be
// driven by synthetic frames in tests. A source may additionally implement
// [WindowControl] (best-effort focus and maximize) and [io.Closer] (the
// session closes the source when [Config.KeepViewerOpen] is false).
package pdfsnap
