package metrics

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Stabilizing constants from the Wang et al. formulation, for 8-bit
// dynamic range: C1=(0.01·255)², C2=(0.03·255)².
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// SSIM computes the global (non-windowed) structural similarity between two
// images, clamped to [0,1].
//
// Both inputs are normalized to the fixed working resolution first, so the
// score is defined for any pair of well-formed images regardless of their
// intrinsic sizes. Comparing an image with itself yields exactly 1.0.
func SSIM(a, b image.Image) (float64, error) {
	pa, err := newPlane(a, metricSize)
	if err != nil {
		return 0, err
	}
	pb, err := newPlane(b, metricSize)
	if err != nil {
		return 0, err
	}

	mx := stat.Mean(pa.pix, nil)
	my := stat.Mean(pb.pix, nil)

	// Variances via Covariance(x, x) rather than Variance(x): the two are
	// mathematically identical (sample statistics, divisor N−1), and using
	// one code path keeps self-comparison bit-exact at 1.0.
	vx := stat.Covariance(pa.pix, pa.pix, nil)
	vy := stat.Covariance(pb.pix, pb.pix, nil)
	cov := stat.Covariance(pa.pix, pb.pix, nil)

	num := (2*mx*my + ssimC1) * (2*cov + ssimC2)
	den := (mx*mx + my*my + ssimC1) * (vx + vy + ssimC2)

	return clamp01(num / den), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
