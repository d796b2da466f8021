// Package metrics implements the pairwise image-similarity kernels used by
// the consistency QA gate: global structural similarity (SSIM), a 64-bit
// frequency-domain perceptual hash, and a thresholded Sobel edge-overlap
// ratio.
//
// All three kernels are pure functions over caller-supplied decoded images.
// Each one first normalizes its inputs to a fixed square working resolution
// with Catmull-Rom resampling and collapses them to single-channel
// intensity, so the scores are comparable across arbitrarily sized inputs.
// Scores are confined to [0,1] by construction (hash distance to [0,64]).
//
// Malformed input (nil image, empty bounds) yields a structured
// INVALID_IMAGE_DATA error; the kernels never panic on caller data.
package metrics

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/draughtworks/sheetgate/pkg/errors"
)

// Working resolutions. SSIM and edge overlap run at metricSize²; the
// perceptual hash runs at hashSize² (its DCT cost is O(n⁴)).
const (
	metricSize = 256
	hashSize   = 32
)

// plane is a square single-channel intensity raster with values in [0,255].
type plane struct {
	size int
	pix  []float64
}

func (p *plane) at(x, y int) float64 {
	return p.pix[y*p.size+x]
}

// newPlane resamples img to size×size with Catmull-Rom and collapses it to
// intensity. The Gray destination applies the standard luma weighting
// during the draw.
func newPlane(img image.Image, size int) (*plane, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidImage, "nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "empty image bounds %v", bounds)
	}

	gray := image.NewGray(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(gray, gray.Bounds(), img, bounds, xdraw.Src, nil)

	p := &plane{size: size, pix: make([]float64, size*size)}
	for i, v := range gray.Pix {
		p.pix[i] = float64(v)
	}
	return p, nil
}
