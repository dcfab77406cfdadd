package workflow

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PrepareForFormat makes an image encodable in the target format.
// JPEG and WebP are lossy photographic formats without an alpha plane here,
// so transparent images are flattened onto an opaque white background.
// Everything else passes through unchanged. Never fails.
func PrepareForFormat(img image.Image, format string) image.Image {
	switch format {
	case "jpeg", "webp":
		if hasAlpha(img) {
			return flatten(img)
		}
	}
	return img
}

// flatten composites img over white, returning a fully opaque NRGBA.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// hasAlpha reports whether any pixel is less than fully opaque.
// Fast paths avoid per-pixel image.At calls for the common raster types.
func hasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray, *image.Gray16:
		return false
	case *image.Paletted:
		for _, c := range src.Palette {
			if _, _, _, a := c.RGBA(); a < 65535 {
				return true
			}
		}
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a < 65535 {
					return true
				}
			}
		}
		return false
	}
}
