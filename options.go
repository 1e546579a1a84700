package pdfsnap

import (
	"time"

	"go.uber.org/zap"
)

// viewerConfig holds internal configuration for a Viewer.
type viewerConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool
	logger       *zap.Logger
}

func defaultViewerConfig() viewerConfig {
	return viewerConfig{
		timeout:  30 * time.Second,
		headless: "new",
		logger:   zap.NewNop(),
	}
}

// Option configures a [Viewer].
type Option func(*viewerConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *viewerConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single viewer operation
// (navigation, capture, key injection). Defaults to 30 seconds. A zero or
// negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *viewerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *viewerConfig) {
		c.noSandbox = true
	}
}

// WithHeadful runs the viewer with a visible window instead of the default
// headless mode. Useful when the platform's PDF plugin renders only into a
// real window, or for watching a capture run.
func WithHeadful() Option {
	return func(c *viewerConfig) {
		c.headless = ""
	}
}

// WithAutoDownload downloads a compatible Chromium build if no executable
// is found, and uses it as the viewer. The binary is cached between runs.
func WithAutoDownload() Option {
	return func(c *viewerConfig) {
		c.autoDownload = true
	}
}

// WithLogger sets the logger used for viewer diagnostics.
// Defaults to [zap.NewNop].
func WithLogger(l *zap.Logger) Option {
	return func(c *viewerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
