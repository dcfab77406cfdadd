package encoder

import (
	"bytes"
	"image"
	"testing"

	_ "golang.org/x/image/webp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i % 251)
		img.Pix[i+1] = 128
		img.Pix[i+2] = 64
		img.Pix[i+3] = 255
	}
	return img
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	for _, f := range []string{"jpeg", "png", "webp"} {
		if r.Get(f) == nil {
			t.Errorf("missing encoder for %s", f)
		}
	}
	if enc := r.Get("jpg"); enc == nil || enc.Format() != "jpeg" {
		t.Error("jpg alias should resolve to the jpeg encoder")
	}
	if enc := r.Get("JPEG"); enc == nil {
		t.Error("lookup should be case-insensitive")
	}
	if r.Get("avif") != nil {
		t.Error("unexpected encoder for avif")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"jpg":    "jpeg",
		"JPEG":   "jpeg",
		" webp ": "webp",
		"tif":    "tiff",
		"png":    "png",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestEncodersProduceDecodableOutput(t *testing.T) {
	src := testImage(32, 24)
	r := NewRegistry()

	for _, f := range r.Formats() {
		enc := r.Get(f)
		data, err := enc.Encode(src, 75)
		if err != nil {
			t.Fatalf("%s: encode: %v", f, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty output", f)
		}

		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: decode: %v", f, err)
		}
		b := decoded.Bounds()
		if b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("%s: dimensions: got %dx%d, want 32x24", f, b.Dx(), b.Dy())
		}
	}
}

func TestQualityAffectsLossySize(t *testing.T) {
	src := testImage(128, 128)

	for _, f := range []string{"jpeg", "webp"} {
		enc := NewRegistry().Get(f)
		low, err := enc.Encode(src, 10)
		if err != nil {
			t.Fatal(err)
		}
		high, err := enc.Encode(src, 95)
		if err != nil {
			t.Fatal(err)
		}
		if len(low) >= len(high) {
			t.Errorf("%s: quality 10 output (%d bytes) not smaller than quality 95 (%d bytes)",
				f, len(low), len(high))
		}
	}
}

func TestExtensions(t *testing.T) {
	r := NewRegistry()
	cases := map[string]string{"jpeg": "jpg", "png": "png", "webp": "webp"}
	for format, want := range cases {
		if got := r.Get(format).Extension(); got != want {
			t.Errorf("%s extension: got %q, want %q", format, got, want)
		}
	}
}
