package metrics

import (
	"image"
	"math"
)

// EdgeThreshold is the Sobel gradient magnitude (of 255) above which a
// pixel counts as an edge.
const EdgeThreshold = 30

// EdgeOverlap computes the Jaccard index of the thresholded Sobel edge
// masks of two images, in [0,1].
//
// Both images are normalized to the fixed working resolution first. The
// comparison is pixel-aligned, not registered: the same drawing shifted by
// a few pixels scores low. If neither image has any edge pixels the overlap
// is defined as 0.
func EdgeOverlap(a, b image.Image) (float64, error) {
	pa, err := newPlane(a, metricSize)
	if err != nil {
		return 0, err
	}
	pb, err := newPlane(b, metricSize)
	if err != nil {
		return 0, err
	}

	ma := edgeMask(pa)
	mb := edgeMask(pb)

	var intersection, union int
	for i := range ma {
		switch {
		case ma[i] && mb[i]:
			intersection++
			union++
		case ma[i] || mb[i]:
			union++
		}
	}
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

// edgeMask computes the thresholded Sobel edge mask of a plane. Border
// pixels have no full 3×3 neighborhood and never count as edges.
func edgeMask(p *plane) []bool {
	mask := make([]bool, p.size*p.size)
	for y := 1; y < p.size-1; y++ {
		for x := 1; x < p.size-1; x++ {
			if sobelMagnitude(p, x, y) > EdgeThreshold {
				mask[y*p.size+x] = true
			}
		}
	}
	return mask
}

// sobelMagnitude evaluates the 3×3 Sobel kernels at (x, y) and returns the
// gradient magnitude capped at 255.
func sobelMagnitude(p *plane, x, y int) float64 {
	gx := -p.at(x-1, y-1) + p.at(x+1, y-1) +
		-2*p.at(x-1, y) + 2*p.at(x+1, y) +
		-p.at(x-1, y+1) + p.at(x+1, y+1)

	gy := -p.at(x-1, y-1) - 2*p.at(x, y-1) - p.at(x+1, y-1) +
		p.at(x-1, y+1) + 2*p.at(x, y+1) + p.at(x+1, y+1)

	return math.Min(255, math.Hypot(gx, gy))
}
