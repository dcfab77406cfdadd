package encoder

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes images to lossy WebP in-process.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
