package workflow

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes an alpha-carrying PNG of the given size and
// returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x % 256)
			img.Pix[i+1] = uint8(y % 256)
			img.Pix[i+2] = 90
			img.Pix[i+3] = uint8(128 + (x+y)%128)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestRunEndToEndWebP(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "banner.png", 1600, 1200)
	out := filepath.Join(dir, "banner.webp")

	res, err := Run(in, out, Params{Format: "webp", Width: 800, Quality: 50})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Width != 800 || res.Height != 600 {
		t.Errorf("result dimensions: got %dx%d, want 800x600", res.Width, res.Height)
	}
	if res.Format != "webp" {
		t.Errorf("result format: got %q", res.Format)
	}
	if res.Hash == "" || len(res.Hash) != 16 {
		t.Errorf("result hash: got %q, want 16 hex chars", res.Hash)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	decoded, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "webp" {
		t.Errorf("output format tag: got %q, want webp", format)
	}
	b := decoded.Bounds()
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("decoded dimensions: got %dx%d, want 800x600", b.Dx(), b.Dy())
	}
}

func TestRunFlattensAlphaForJPEG(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "logo.png", 400, 300)
	out := filepath.Join(dir, "logo.jpg")

	if _, err := Run(in, out, Params{Format: "jpeg", Width: 200, Quality: 80}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	decoded, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format tag: got %q, want jpeg", format)
	}
	if hasAlpha(decoded) {
		t.Error("jpeg output carries alpha")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "photo.png", 640, 480)
	out1 := filepath.Join(dir, "one.webp")
	out2 := filepath.Join(dir, "two.webp")

	p := Params{Format: "webp", Width: 320, Quality: 50}
	if _, err := Run(in, out1, p); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := Run(in, out2, p); err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, err := os.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical runs produced different output bytes")
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.jpg"), Default())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestRunUndecodableInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(in, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(in, filepath.Join(dir, "out.jpg"), Default())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestRunUnsupportedOutputFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "x.png", 10, 10)

	_, err := Run(in, filepath.Join(dir, "x.bmp"), Params{Format: "bmp", Width: 10, Quality: 50})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("got %v, want ErrEncode", err)
	}
}

func TestRunLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "a.png", 64, 64)
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(in, filepath.Join(outDir, "a.webp"), Params{Format: "webp", Width: 32, Quality: 50}); err != nil {
		t.Fatalf("run: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.webp" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("output dir contents: %v, want [a.webp]", names)
	}
}
