// Package workflow implements the four-stage image normalization pipeline:
// format conversion, resize, compression, encode-and-save. One invocation
// owns exactly one decoded image; nothing outlives the call.
package workflow

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"

	"github.com/imgnorm/imgnorm-cli/internal/encoder"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result describes one completed workflow invocation.
type Result struct {
	InputPath   string
	OutputPath  string
	Format      string
	Width       int
	Height      int
	InputBytes  int64
	OutputBytes int64
	Hash        string // xxhash64 of the encoded output, 16 hex chars
}

var registry = encoder.NewRegistry()

// Run processes a single image: open, convert for the target format,
// resize, compress, encode, write. The output is written to a temp file
// in the destination directory and renamed into place, so a failure
// never leaves a partial output file behind.
func Run(inputPath, outputPath string, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	format := encoder.Normalize(p.Format)
	enc := registry.Get(format)
	if enc == nil {
		return Result{}, fmt.Errorf("%w: unsupported output format %q", ErrEncode, p.Format)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrDecode, inputPath, err)
	}

	img, err := imaging.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrDecode, inputPath, err)
	}

	img = PrepareForFormat(img, format)

	img, err = Resize(img, p.Width, p.Height)
	if err != nil {
		return Result{}, fmt.Errorf("resize %s: %w", inputPath, err)
	}

	img = Compress(img, p.Quality)

	data, err := enc.Encode(img, p.Quality)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s as %s: %v", ErrEncode, inputPath, format, err)
	}

	if err := writeAtomic(outputPath, data); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrEncode, outputPath, err)
	}

	bounds := img.Bounds()
	return Result{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Format:      format,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		InputBytes:  info.Size(),
		OutputBytes: int64(len(data)),
		Hash:        fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}, nil
}

// writeAtomic writes data to path via a temp file and rename. The temp
// file lives in the target directory so the rename stays on one volume.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".imgnorm-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
