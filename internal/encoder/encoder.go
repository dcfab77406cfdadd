package encoder

import (
	"image"
	"strings"
)

// DefaultQuality is used when the caller passes a quality outside 1-100.
const DefaultQuality = 85

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

// Normalize maps format aliases onto canonical encoder names.
func Normalize(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return format
	}
}
