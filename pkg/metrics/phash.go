package metrics

import (
	"fmt"
	"image"
	"math"
	"math/bits"
	"slices"
)

// dctKeep is the side of the low-frequency DCT block the hash is built
// from: 8×8 coefficients, one bit each.
const dctKeep = 8

// Hash is a 64-bit perceptual hash. Bit 63 (MSB) corresponds to the DC
// coefficient; bits follow the 8×8 block in row-major order.
type Hash uint64

// String formats the hash as 16 hex digits.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Distance returns the Hamming distance to another hash, in [0,64].
func (h Hash) Distance(o Hash) int {
	return bits.OnesCount64(uint64(h) ^ uint64(o))
}

// PHash computes the frequency-domain perceptual hash of an image.
//
// The image is downsampled to a 32×32 intensity grid, transformed with the
// orthonormal 2-D DCT, and reduced to the top-left 8×8 coefficient block.
// The median of the 63 AC coefficients (DC excluded) becomes the bit
// threshold: each of the 64 block coefficients contributes a 1 bit when it
// exceeds the median. Identical images therefore always hash identically.
func PHash(img image.Image) (Hash, error) {
	p, err := newPlane(img, hashSize)
	if err != nil {
		return 0, err
	}

	coeffs := dct2(p)

	block := make([]float64, 0, dctKeep*dctKeep)
	for v := 0; v < dctKeep; v++ {
		for u := 0; u < dctKeep; u++ {
			block = append(block, coeffs[v*hashSize+u])
		}
	}

	// Median over the 63 AC coefficients; the DC term would otherwise
	// dominate the threshold.
	ac := slices.Clone(block[1:])
	slices.Sort(ac)
	median := ac[len(ac)/2] // 63 values, true middle element

	var h Hash
	for i, c := range block {
		if c > median {
			h |= 1 << (63 - i)
		}
	}
	return h, nil
}

// HashSimilarity reports the Hamming distance between two hashes and the
// derived similarity score 1 − distance/64.
func HashSimilarity(a, b Hash) (distance int, similarity float64) {
	distance = a.Distance(b)
	return distance, 1 - float64(distance)/64
}

// dctCos is the precomputed cosine table cos((2x+1)·u·π / (2·N)) for N=32.
var dctCos = func() [hashSize][hashSize]float64 {
	var table [hashSize][hashSize]float64
	for x := 0; x < hashSize; x++ {
		for u := 0; u < hashSize; u++ {
			table[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / float64(2*hashSize))
		}
	}
	return table
}()

// dct2 computes the full 2-D DCT of a hashSize² plane using the direct
// separable-cosine double sum with orthonormal scaling: c(0)=1/√2, c(k)=1
// otherwise, overall factor 2/N. At N=32 the direct sum is ~1M
// multiply-adds, which is negligible next to the resampling step.
func dct2(p *plane) []float64 {
	n := p.size
	out := make([]float64, n*n)
	invSqrt2 := 1 / math.Sqrt2

	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			var sum float64
			for y := 0; y < n; y++ {
				cy := dctCos[y][v]
				for x := 0; x < n; x++ {
					sum += p.at(x, y) * dctCos[x][u] * cy
				}
			}
			cu, cv := 1.0, 1.0
			if u == 0 {
				cu = invSqrt2
			}
			if v == 0 {
				cv = invSqrt2
			}
			out[v*n+u] = (2.0 / float64(n)) * cu * cv * sum
		}
	}
	return out
}
