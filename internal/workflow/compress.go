package workflow

import (
	"image"

	"github.com/disintegration/imaging"
)

// Compress is the in-memory compression stage of the workflow.
// It currently returns a pixel-identical copy: the quality parameter is
// applied by the encoder at save time, not here. The stage exists as a
// seam so in-memory recompression can be added without reshaping the
// pipeline.
func Compress(img image.Image, quality int) image.Image {
	_ = quality
	return imaging.Clone(img)
}
