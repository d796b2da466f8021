package metrics

import "image"

// Working resolutions, exported so callers can key cached results on the
// parameters that would change them.
const (
	MetricResolution = metricSize
	HashResolution   = hashSize
)

// Pairwise bundles the three independent similarity scores for one image
// pair.
type Pairwise struct {
	SSIM            float64 `json:"ssim"`
	PHashDistance   int     `json:"phash_distance"`
	PHashSimilarity float64 `json:"phash_similarity"`
	EdgeOverlap     float64 `json:"edge_overlap"`
}

// Compare computes all three similarity metrics for a pair of images.
//
// The kernels are independent; a failure in one is a failure of the input
// images themselves (nil or empty bounds), so the first error wins and no
// partial result is returned. Panel-level recovery from bad inputs happens
// at the gate, not here.
func Compare(a, b image.Image) (Pairwise, error) {
	ssim, err := SSIM(a, b)
	if err != nil {
		return Pairwise{}, err
	}

	ha, err := PHash(a)
	if err != nil {
		return Pairwise{}, err
	}
	hb, err := PHash(b)
	if err != nil {
		return Pairwise{}, err
	}
	distance, similarity := HashSimilarity(ha, hb)

	overlap, err := EdgeOverlap(a, b)
	if err != nil {
		return Pairwise{}, err
	}

	return Pairwise{
		SSIM:            ssim,
		PHashDistance:   distance,
		PHashSimilarity: similarity,
		EdgeOverlap:     overlap,
	}, nil
}
