package pdfsnap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// PageSource produces frames of the currently displayed page and advances
// to the next one. [Viewer] is the production implementation; tests may
// substitute synthetic sources.
type PageSource interface {
	// CaptureFrame returns a PNG-encoded screenshot of the current page.
	CaptureFrame(ctx context.Context) ([]byte, error)

	// AdvancePage sends a page-advance input event to the viewer.
	AdvancePage(ctx context.Context) error
}

// WindowControl is the optional, best-effort window management capability of
// a [PageSource]. Neither operation is required to succeed; callers treat
// failures as non-fatal.
type WindowControl interface {
	Focus(ctx context.Context) error
	Maximize(ctx context.Context) error
}

// Viewer renders PDF documents using Chrome's built-in PDF viewer, driven
// over the DevTools protocol.
//
// A Viewer owns a browser process that lives until [Viewer.Close] is called.
// Open a document with [Viewer.Open], then capture and page through it via
// the [PageSource] methods, normally by handing the Viewer to [Session.Run].
type Viewer struct {
	cfg           viewerConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu        sync.Mutex
	closed    bool
	tabCtx    context.Context
	tabCancel context.CancelFunc
}

// NewViewer creates a Viewer with the given options.
//
// It starts the browser in the background so launch errors surface here
// rather than mid-capture. The caller must call [Viewer.Close] when
// finished (unless the run deliberately leaves the viewer open).
func NewViewer(opts ...Option) (*Viewer, error) {
	cfg := defaultViewerConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.autoDownload && cfg.chromePath == "" {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// The PDF viewer is a component extension; keep extensions enabled.
		chromedp.Flag("disable-extensions", false),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
	)
	if cfg.headless != "" {
		allocOpts = append(allocOpts, chromedp.Flag("headless", cfg.headless))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so launch failures surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("pdfsnap: launching viewer: %w", err)
	}
	cfg.logger.Debug("viewer launched", zap.String("chrome", cfg.chromePath))

	return &Viewer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Open displays the PDF at path in the viewer. The file must exist and be
// readable. Opening a second document replaces the first.
func (v *Viewer) Open(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("pdfsnap: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("pdfsnap: %w", err)
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if v.tabCancel != nil {
		v.tabCancel()
	}
	tabCtx, tabCancel := chromedp.NewContext(v.browserCtx)
	v.tabCtx = tabCtx
	v.tabCancel = tabCancel
	v.mu.Unlock()

	v.cfg.logger.Info("opening document", zap.String("path", abs))
	if err := v.run(ctx, chromedp.Navigate("file://"+abs)); err != nil {
		return fmt.Errorf("pdfsnap: opening %s: %w", path, err)
	}
	return nil
}

// Focus brings the viewer tab to the foreground. Best effort.
func (v *Viewer) Focus(ctx context.Context) error {
	return v.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.BringToFront().Do(ctx)
	}))
}

// Maximize expands the viewer window to fill the screen. Best effort; in
// headless mode the window bounds are virtual.
func (v *Viewer) Maximize(ctx context.Context) error {
	return v.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		id, _, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return err
		}
		return browser.SetWindowBounds(id, &browser.Bounds{
			WindowState: browser.WindowStateMaximized,
		}).Do(ctx)
	}))
}

// CaptureFrame returns a PNG screenshot of the viewer's current viewport.
func (v *Viewer) CaptureFrame(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := v.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("pdfsnap: capturing frame: %w", err)
	}
	return buf, nil
}

// AdvancePage sends a space keypress, which scrolls Chrome's PDF viewer
// forward by one page height.
func (v *Viewer) AdvancePage(ctx context.Context) error {
	if err := v.run(ctx, chromedp.KeyEvent(" ")); err != nil {
		return fmt.Errorf("pdfsnap: advancing page: %w", err)
	}
	return nil
}

// Close releases all resources held by the Viewer, terminating the browser
// process. Close is idempotent.
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	if v.tabCancel != nil {
		v.tabCancel()
	}
	v.browserCancel()
	v.allocCancel()
	v.cfg.logger.Debug("viewer closed")
	return nil
}

// run executes actions against the open tab, applying the configured
// per-operation timeout and honoring cancellation of the caller's context.
func (v *Viewer) run(ctx context.Context, actions ...chromedp.Action) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	tab := v.tabCtx
	v.mu.Unlock()
	if tab == nil {
		return ErrNotOpen
	}

	runCtx, cancel := context.WithCancel(tab)
	defer cancel()
	if v.cfg.timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, v.cfg.timeout)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}
