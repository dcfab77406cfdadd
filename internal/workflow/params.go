package workflow

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure in the pipeline wraps one of these.
var (
	// ErrDecode covers missing input files and undecodable images.
	ErrDecode = errors.New("decode image")
	// ErrEncode covers unsupported output formats and write failures.
	ErrEncode = errors.New("encode image")
	// ErrConfig covers invalid parameters (degenerate geometry, bad quality).
	ErrConfig = errors.New("invalid parameters")
)

// Params configures one workflow invocation. Immutable for its duration.
type Params struct {
	Format  string // output format: jpeg, png, webp
	Width   int    // target width in pixels
	Height  int    // target height; 0 = derive from aspect ratio
	Quality int    // encoder quality 1-100; 0 = encoder default
}

// Default returns the generic workflow parameters.
func Default() Params {
	return Params{Format: "jpeg", Width: 800, Quality: 50}
}

// Validate checks geometry and quality before any image work happens.
// The resize math divides by the source width, so degenerate dimensions
// must be rejected up front rather than left to crash mid-pipeline.
func (p Params) Validate() error {
	if p.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrConfig, p.Width)
	}
	if p.Height < 0 {
		return fmt.Errorf("%w: height must not be negative, got %d", ErrConfig, p.Height)
	}
	if p.Quality < 0 || p.Quality > 100 {
		return fmt.Errorf("%w: quality must be 1-100, got %d", ErrConfig, p.Quality)
	}
	return nil
}
