// pdfsnap captures the pages of a PDF as images by driving a viewer and
// screenshotting each rendered page. It is meant for documents that resist
// programmatic extraction: whatever renders on screen gets saved to disk.
//
// Usage:
//
//	pdfsnap --screenshot 10 document.pdf
//	pdfsnap --auto-capture --output-dir pages document.pdf
//	pdfsnap --info document.pdf
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/porticus-lab/pdfsnap"
	"github.com/porticus-lab/pdfsnap/internal/pdfinfo"
)

var version = "dev"

type args struct {
	PDFPath         string  `arg:"positional,required" placeholder:"PDF_PATH" help:"path to the PDF file to capture"`
	OutputDir       string  `arg:"--output-dir" default:"pdf_images" help:"directory to save page images"`
	Screenshot      int     `arg:"--screenshot" placeholder:"N" help:"capture exactly N pages"`
	AutoCapture     bool    `arg:"--auto-capture" help:"capture until the end of the document is detected"`
	MaxPages        int     `arg:"--max-pages" default:"500" help:"hard cap on captured pages"`
	Delay           float64 `arg:"--delay" default:"2.0" help:"seconds to wait after each page turn"`
	Similarity      float64 `arg:"--similarity" default:"0.95" help:"similarity threshold for end detection (0-1)"`
	SimilarPages    int     `arg:"--similar-pages" default:"2" help:"consecutive similar pages confirming the end"`
	StartupDelay    float64 `arg:"--startup-delay" default:"5" help:"seconds to wait for the viewer to open"`
	NoClose         bool    `arg:"--no-close" help:"leave the viewer running when done"`
	Metric          string  `arg:"--metric" default:"graydiff" help:"similarity metric: graydiff or histogram"`
	Info            bool    `arg:"--info" help:"print the document page count and exit"`
	Headful         bool    `arg:"--headful" help:"run the viewer with a visible window"`
	Chrome          string  `arg:"--chrome" placeholder:"PATH" help:"path to the Chrome/Chromium executable"`
	DownloadBrowser bool    `arg:"--download-browser" help:"download a Chromium build if none is installed"`
	Verbose         bool    `arg:"-v,--verbose" help:"verbose logging"`
}

func (args) Description() string {
	return "Capture PDF pages as images by screenshotting a viewer."
}

func (args) Version() string {
	return "pdfsnap " + version
}

func main() {
	var a args
	arg.MustParse(&a)

	if err := run(a); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(a args) error {
	logger := newLogger(a.Verbose)
	defer func() { _ = logger.Sync() }()

	if _, err := os.Stat(a.PDFPath); err != nil {
		return fmt.Errorf("PDF file not found: %s", a.PDFPath)
	}

	if a.Info {
		n, err := pdfinfo.PageCount(a.PDFPath)
		if err != nil {
			return err
		}
		fmt.Printf("File:  %s\nPages: %d\n", a.PDFPath, n)
		return nil
	}

	if a.Screenshot <= 0 && !a.AutoCapture {
		return fmt.Errorf("either --screenshot or --auto-capture is required")
	}

	cfg := pdfsnap.DefaultConfig()
	cfg.OutputDir = a.OutputDir
	cfg.ScreenshotCount = a.Screenshot
	cfg.AutoCapture = a.AutoCapture
	cfg.MaxPages = a.MaxPages
	cfg.Delay = time.Duration(a.Delay * float64(time.Second))
	cfg.Similarity = a.Similarity
	cfg.SimilarPages = a.SimilarPages
	cfg.StartupDelay = time.Duration(a.StartupDelay * float64(time.Second))
	cfg.KeepViewerOpen = a.NoClose
	cfg.Logger = logger

	switch a.Metric {
	case "", "graydiff":
		cfg.Metric = pdfsnap.GrayDiff{}
	case "histogram":
		cfg.Metric = pdfsnap.Histogram{}
	default:
		return fmt.Errorf("unknown metric %q (want graydiff or histogram)", a.Metric)
	}

	// A structurally parseable document caps auto mode at its real page
	// count, so end detection never overshoots into duplicate frames.
	if a.AutoCapture {
		if n, err := pdfinfo.PageCount(a.PDFPath); err == nil && n > 0 && n < cfg.MaxPages {
			logger.Info("document reports page count", zap.Int("pages", n))
			cfg.MaxPages = n
		}
	}

	bar := newProgress(cfg)
	cfg.OnFrame = func(index int, path string) {
		_ = bar.Add(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []pdfsnap.Option{pdfsnap.WithLogger(logger)}
	if a.Headful {
		opts = append(opts, pdfsnap.WithHeadful())
	}
	if a.Chrome != "" {
		opts = append(opts, pdfsnap.WithChromePath(a.Chrome))
	}
	if a.DownloadBrowser {
		opts = append(opts, pdfsnap.WithAutoDownload())
	}
	if os.Geteuid() == 0 {
		opts = append(opts, pdfsnap.WithNoSandbox())
	}

	res, err := pdfsnap.Capture(ctx, a.PDFPath, cfg, opts...)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Captured %d pages to %s (%s)\n", res.Pages(), cfg.OutputDir, res.Reason())
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// newProgress returns a determinate bar in manual mode and a spinner in
// auto mode, where the page count is unknown up front.
func newProgress(cfg pdfsnap.Config) *progressbar.ProgressBar {
	total := int64(-1)
	if cfg.ScreenshotCount > 0 {
		total = int64(cfg.ScreenshotCount)
		if int64(cfg.MaxPages) < total {
			total = int64(cfg.MaxPages)
		}
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription("capturing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
