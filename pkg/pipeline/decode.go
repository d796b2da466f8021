package pipeline

import (
	"bytes"
	"image"

	// Panel rasters arrive as PNG from the generators; JPEG shows up in
	// older placeholder batches.
	_ "image/jpeg"
	_ "image/png"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/qa"
)

// decodeItem turns one raw input into a gate submission. Load and decode
// failures are recorded on the submission, not returned: the gate turns
// them into FAILED verdicts so one bad file cannot abort the batch.
func decodeItem(item Item) qa.Submission {
	sub := qa.Submission{
		RawKey:      item.Key,
		GeneratorID: item.GeneratorID,
		Vector:      item.Vector,
	}

	if item.Err != nil {
		sub.Err = item.Err
		return sub
	}
	if len(item.Data) == 0 {
		return sub // missing image, judged as such
	}
	if err := errors.ValidateImageSize(len(item.Data)); err != nil {
		sub.Err = err
		return sub
	}

	img, _, err := image.Decode(bytes.NewReader(item.Data))
	if err != nil {
		sub.Err = errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", item.Key)
		return sub
	}

	sub.Image = img
	b := img.Bounds()
	sub.IntrinsicWidth, sub.IntrinsicHeight = b.Dx(), b.Dy()
	return sub
}
