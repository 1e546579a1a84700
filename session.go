package pdfsnap

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// Config controls a capture run. It is immutable once handed to
// [NewSession]; zero values for the fields listed in [DefaultConfig] are
// replaced by defaults, while zero Delay and StartupDelay mean no waiting.
type Config struct {
	// OutputDir receives one PNG per captured page. Created if absent.
	// Defaults to "pdf_images".
	OutputDir string

	// ScreenshotCount selects manual mode: capture exactly this many
	// pages. Takes precedence over AutoCapture when positive.
	ScreenshotCount int

	// AutoCapture selects auto mode: capture until the similarity
	// heuristic detects repeated end-of-document content.
	AutoCapture bool

	// MaxPages bounds the number of capture attempts in either mode,
	// guaranteeing termination. Defaults to 500.
	MaxPages int

	// Delay is the pause after each page advance, giving the viewer time
	// to render. Defaults to 2s via DefaultConfig; zero means no pause.
	Delay time.Duration

	// Similarity is the score in [0,1] at or above which two consecutive
	// frames count as the same page. Defaults to 0.95.
	Similarity float64

	// SimilarPages is the length of the trailing run of same-looking
	// pages that confirms the end of the document. Defaults to 2; values
	// below 2 are coerced to 2.
	SimilarPages int

	// StartupDelay is the wait before the first capture, giving the
	// viewer time to open the document. Defaults to 5s via DefaultConfig.
	StartupDelay time.Duration

	// KeepViewerOpen suppresses closing the page source when the run
	// finishes.
	KeepViewerOpen bool

	// Metric scores frame similarity in auto mode. Defaults to [GrayDiff].
	Metric Metric

	// Logger receives run diagnostics. Defaults to [zap.NewNop].
	Logger *zap.Logger

	// OnFrame, if set, is invoked after each page image is written.
	OnFrame func(index int, path string)
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir:    "pdf_images",
		MaxPages:     500,
		Delay:        2 * time.Second,
		Similarity:   0.95,
		SimilarPages: 2,
		StartupDelay: 5 * time.Second,
		Metric:       GrayDiff{},
		Logger:       zap.NewNop(),
	}
}

// normalized returns a copy of c with zero values replaced by defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.MaxPages <= 0 {
		c.MaxPages = d.MaxPages
	}
	if c.Similarity <= 0 {
		c.Similarity = d.Similarity
	}
	if c.SimilarPages < 2 {
		c.SimilarPages = 2
	}
	if c.Metric == nil {
		c.Metric = d.Metric
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Session runs the capture orchestration loop against a [PageSource].
type Session struct {
	cfg Config
}

// NewSession creates a Session for the given configuration.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg.normalized()}
}

// Run executes the capture loop: wait for startup, best-effort window
// focus, then capture/persist/compare/advance until the configured stop
// condition is met.
//
// Individual capture, write, and page-advance failures are logged and the
// loop continues. A missing output directory that cannot be created is
// fatal. Unless [Config.KeepViewerOpen] is set, src is closed on return
// when it implements [io.Closer].
func (s *Session) Run(ctx context.Context, src PageSource) (*Result, error) {
	cfg := s.cfg
	manual := cfg.ScreenshotCount > 0
	if !manual && !cfg.AutoCapture {
		return nil, ErrNoMode
	}

	if !cfg.KeepViewerOpen {
		defer func() {
			if c, ok := src.(io.Closer); ok {
				if err := c.Close(); err != nil {
					cfg.Logger.Warn("closing viewer", zap.Error(err))
				}
			}
		}()
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("pdfsnap: creating output directory: %w", err)
	}

	cfg.Logger.Info("waiting for viewer startup", zap.Duration("delay", cfg.StartupDelay))
	if err := sleepCtx(ctx, cfg.StartupDelay); err != nil {
		return nil, err
	}

	if wc, ok := src.(WindowControl); ok {
		if err := wc.Focus(ctx); err != nil {
			cfg.Logger.Warn("could not focus viewer window", zap.Error(err))
		}
		if err := wc.Maximize(ctx); err != nil {
			cfg.Logger.Warn("could not maximize viewer window", zap.Error(err))
		}
	}

	attempts := cfg.MaxPages
	reason := StopPageLimit
	if manual && cfg.ScreenshotCount <= cfg.MaxPages {
		attempts = cfg.ScreenshotCount
		reason = StopCountReached
	}
	res := &Result{reason: reason}

	var prev image.Image
	run := 1 // trailing run of same-looking pages

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		data, err := src.CaptureFrame(ctx)
		if err != nil {
			cfg.Logger.Warn("frame capture failed",
				zap.Int("attempt", attempt+1), zap.Error(err))
		} else {
			frame := NewFrame(len(res.files)+1, data)
			path, werr := frame.WriteToDir(cfg.OutputDir)
			if werr != nil {
				cfg.Logger.Warn("frame write failed", zap.Error(werr))
			} else {
				res.files = append(res.files, path)
				cfg.Logger.Info("captured page",
					zap.Int("page", frame.Index()), zap.String("file", path))
				if cfg.OnFrame != nil {
					cfg.OnFrame(frame.Index(), path)
				}
			}

			if !manual {
				prev, run = s.evaluate(frame, prev, run)
				if run >= cfg.SimilarPages {
					cfg.Logger.Info("end of document detected",
						zap.Int("page", frame.Index()))
					res.reason = StopEndOfDocument
					return res, nil
				}
			}
		}

		if attempt < attempts-1 {
			if err := src.AdvancePage(ctx); err != nil {
				cfg.Logger.Warn("page advance failed", zap.Error(err))
			}
			if err := sleepCtx(ctx, cfg.Delay); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// evaluate scores frame against the previous one and returns the updated
// comparison state. A frame that cannot be decoded resets the run rather
// than ending it: ambiguity must never cause premature termination.
func (s *Session) evaluate(frame Frame, prev image.Image, run int) (image.Image, int) {
	img, err := frame.Image()
	if err != nil {
		s.cfg.Logger.Warn("frame decode failed", zap.Error(err))
		return nil, 1
	}
	if prev == nil {
		return img, 1
	}
	score := s.cfg.Metric.Score(prev, img)
	if score >= s.cfg.Similarity {
		run++
	} else {
		run = 1
	}
	s.cfg.Logger.Debug("compared frames",
		zap.Int("page", frame.Index()),
		zap.Float64("score", score),
		zap.Int("run", run))
	return img, run
}

// Capture opens pdfPath in a temporary [Viewer] and runs a capture session
// against it. This is convenient for one-off runs; create a Viewer and
// Session separately to reuse the browser or to supply a custom source.
func Capture(ctx context.Context, pdfPath string, cfg Config, opts ...Option) (*Result, error) {
	v, err := NewViewer(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Open(ctx, pdfPath); err != nil {
		v.Close()
		return nil, err
	}
	return NewSession(cfg).Run(ctx, v)
}

// sleepCtx blocks for d or until ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
