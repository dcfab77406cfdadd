package workflow

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Resize scales img to exactly width x height using Lanczos resampling.
// A height of 0 derives the proportional height round(width * H0 / W0),
// floored at 1px so extreme aspect ratios still produce a valid image.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: resize width must be positive, got %d", ErrConfig, width)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: resize height must not be negative, got %d", ErrConfig, height)
	}

	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("%w: source image has no pixels", ErrConfig)
	}

	if height == 0 {
		height = int(math.Round(float64(width) * float64(srcH) / float64(srcW)))
		if height < 1 {
			height = 1
		}
	}

	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}
