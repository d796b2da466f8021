package metrics

import (
	"image"
	"math"
	"testing"

	"github.com/draughtworks/sheetgate/pkg/errors"
)

// grayGradient builds a horizontal intensity ramp.
func grayGradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8(x * 255 / (w - 1))
		}
	}
	return img
}

// grayStep builds a left-black right-white image with one hard vertical edge.
func grayStep(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	return img
}

// grayFlat builds a constant-intensity image.
func grayFlat(w, h, v int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(v)
	}
	return img
}

// grayChecker builds a checkerboard with the given tile size.
func grayChecker(w, h, tile int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/tile+y/tile)%2 == 0 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func TestSSIMSelfComparison(t *testing.T) {
	img := grayGradient(64, 64)

	got, err := SSIM(img, img)
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	if got != 1.0 {
		t.Errorf("self SSIM = %v, want exactly 1.0", got)
	}
}

func TestSSIMBounds(t *testing.T) {
	pairs := []struct {
		name string
		a, b image.Image
	}{
		{"gradient vs step", grayGradient(64, 64), grayStep(64, 64)},
		{"flat vs checker", grayFlat(64, 64, 128), grayChecker(64, 64, 8)},
		{"flat vs flat different level", grayFlat(32, 32, 0), grayFlat(32, 32, 255)},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SSIM(tt.a, tt.b)
			if err != nil {
				t.Fatalf("SSIM: %v", err)
			}
			if got < 0 || got > 1 {
				t.Errorf("SSIM = %v out of [0,1]", got)
			}
			if got == 1.0 {
				t.Errorf("SSIM of dissimilar images should be below 1.0")
			}
		})
	}
}

func TestSSIMInvalidInput(t *testing.T) {
	valid := grayFlat(16, 16, 10)

	if _, err := SSIM(nil, valid); !errors.HasCode(err, errors.ErrCodeInvalidImage) {
		t.Errorf("nil image: got %v, want INVALID_IMAGE_DATA", err)
	}
	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	if _, err := SSIM(valid, empty); !errors.HasCode(err, errors.ErrCodeInvalidImage) {
		t.Errorf("empty bounds: got %v, want INVALID_IMAGE_DATA", err)
	}
}

func TestPHashIdenticalImages(t *testing.T) {
	img := grayChecker(64, 64, 8)

	ha, err := PHash(img)
	if err != nil {
		t.Fatalf("PHash: %v", err)
	}
	hb, err := PHash(img)
	if err != nil {
		t.Fatalf("PHash: %v", err)
	}

	distance, similarity := HashSimilarity(ha, hb)
	if distance != 0 {
		t.Errorf("distance = %d, want 0", distance)
	}
	if similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", similarity)
	}
}

func TestPHashDistinguishesImages(t *testing.T) {
	ha, err := PHash(grayGradient(64, 64))
	if err != nil {
		t.Fatalf("PHash: %v", err)
	}
	hb, err := PHash(grayChecker(64, 64, 4))
	if err != nil {
		t.Fatalf("PHash: %v", err)
	}

	if ha == hb {
		t.Error("structurally different images should not collide")
	}
	distance, similarity := HashSimilarity(ha, hb)
	if distance < 1 || distance > 64 {
		t.Errorf("distance = %d out of [1,64]", distance)
	}
	if similarity < 0 || similarity >= 1 {
		t.Errorf("similarity = %v out of [0,1)", similarity)
	}
}

func TestHashString(t *testing.T) {
	h := Hash(0x0123456789abcdef)
	if got := h.String(); got != "0123456789abcdef" {
		t.Errorf("String() = %q", got)
	}
	if got := Hash(0).String(); len(got) != 16 {
		t.Errorf("zero hash renders %d digits, want 16", len(got))
	}
}

func TestHashSimilaritySingleBit(t *testing.T) {
	h := Hash(0xf0f0f0f0f0f0f0f0)
	distance, similarity := HashSimilarity(h, h^1)

	if distance != 1 {
		t.Errorf("distance = %d, want 1", distance)
	}
	if math.Abs(similarity-63.0/64.0) > 1e-12 {
		t.Errorf("similarity = %v, want 63/64", similarity)
	}
}

func TestDCTConstantImage(t *testing.T) {
	// A constant plane concentrates all energy in the DC term: orthonormal
	// scaling puts DC at N·v, every AC coefficient at zero.
	p := &plane{size: hashSize, pix: make([]float64, hashSize*hashSize)}
	for i := range p.pix {
		p.pix[i] = 128
	}

	coeffs := dct2(p)
	wantDC := float64(hashSize) * 128
	if math.Abs(coeffs[0]-wantDC) > 1e-6 {
		t.Errorf("DC = %v, want %v", coeffs[0], wantDC)
	}
	for i := 1; i < len(coeffs); i++ {
		if math.Abs(coeffs[i]) > 1e-6 {
			t.Errorf("AC coefficient %d = %v, want ~0", i, coeffs[i])
		}
	}
}

func TestEdgeOverlapSelf(t *testing.T) {
	img := grayStep(64, 64)

	got, err := EdgeOverlap(img, img)
	if err != nil {
		t.Fatalf("EdgeOverlap: %v", err)
	}
	if got != 1.0 {
		t.Errorf("self edge overlap = %v, want 1.0", got)
	}
}

func TestEdgeOverlapEmptyUnion(t *testing.T) {
	// Two featureless images have no edges at all; the empty union is
	// defined as zero overlap, not a division error.
	a := grayFlat(64, 64, 128)
	b := grayFlat(64, 64, 40)

	got, err := EdgeOverlap(a, b)
	if err != nil {
		t.Fatalf("EdgeOverlap: %v", err)
	}
	if got != 0 {
		t.Errorf("overlap = %v, want 0 for empty union", got)
	}
}

func TestEdgeOverlapMisaligned(t *testing.T) {
	// Same edge content shifted: pixel-aligned Jaccard punishes the shift.
	a := grayStep(64, 64)
	b := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 44; x < 64; x++ {
			b.Pix[y*b.Stride+x] = 255
		}
	}

	got, err := EdgeOverlap(a, b)
	if err != nil {
		t.Fatalf("EdgeOverlap: %v", err)
	}
	if got < 0 || got >= 1 {
		t.Errorf("overlap = %v, want [0,1) for misaligned edges", got)
	}
}

func TestCompareBundlesKernels(t *testing.T) {
	a := grayGradient(64, 64)
	b := grayStep(64, 64)

	pair, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	ssim, _ := SSIM(a, b)
	if pair.SSIM != ssim {
		t.Errorf("bundled SSIM = %v, kernel = %v", pair.SSIM, ssim)
	}
	if pair.PHashDistance < 0 || pair.PHashDistance > 64 {
		t.Errorf("distance = %d out of range", pair.PHashDistance)
	}
	wantSim := 1 - float64(pair.PHashDistance)/64
	if math.Abs(pair.PHashSimilarity-wantSim) > 1e-12 {
		t.Errorf("similarity = %v inconsistent with distance %d", pair.PHashSimilarity, pair.PHashDistance)
	}
	if pair.EdgeOverlap < 0 || pair.EdgeOverlap > 1 {
		t.Errorf("edge overlap = %v out of [0,1]", pair.EdgeOverlap)
	}
}

func TestCompareSelf(t *testing.T) {
	img := grayChecker(64, 64, 8)

	pair, err := Compare(img, img)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if pair.SSIM != 1.0 || pair.PHashDistance != 0 || pair.PHashSimilarity != 1.0 || pair.EdgeOverlap != 1.0 {
		t.Errorf("self comparison = %+v, want perfect scores", pair)
	}
}

func TestCompareInvalidInput(t *testing.T) {
	if _, err := Compare(nil, grayFlat(8, 8, 0)); !errors.HasCode(err, errors.ErrCodeInvalidImage) {
		t.Errorf("got %v, want INVALID_IMAGE_DATA", err)
	}
}
