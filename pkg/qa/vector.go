package qa

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/sheet"
)

// ValidateVector checks the structural validity of vector content supplied
// for a technical panel: the document must be well-formed XML with an <svg>
// root element. It does not render or sanitize the content; the check only
// guards the compositor against handing a broken document to the final
// sheet assembly.
func ValidateVector(data []byte) error {
	if len(data) == 0 {
		return errors.New(errors.ErrCodeInvalidVector, "empty vector document")
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidVector, err, "malformed XML")
		}
		if start, ok := tok.(xml.StartElement); ok && !sawRoot {
			if !strings.EqualFold(start.Name.Local, "svg") {
				return errors.New(errors.ErrCodeInvalidVector, "root element is <%s>, want <svg>", start.Name.Local)
			}
			sawRoot = true
		}
	}
	if !sawRoot {
		return errors.New(errors.ErrCodeInvalidVector, "no root element found")
	}
	return nil
}

// VectorCheck builds the check outcome for one panel's vector content.
// Panels without vector content yield a passing no-op check: vector supply
// is optional, only malformed supply blocks.
func (p Profile) VectorCheck(panel sheet.PanelType, data []byte) Check {
	check := Check{
		Name:    "vector " + string(panel),
		Enabled: p.VectorEnabled,
		Ran:     true,
		Passed:  true,
	}
	if len(data) == 0 {
		check.Detail = "no vector content supplied"
		return check
	}
	if err := ValidateVector(data); err != nil {
		check.Passed = false
		check.Detail = fmt.Sprintf("structural check failed: %v", err)
	}
	return check
}
