package shipit

import (
	"strings"

	"github.com/shopspring/decimal"
)

// packageSizes maps the largest dimension, in cm, to a size label. Limits are
// inclusive and ascending.
var packageSizes = []struct {
	limit int64
	label string
}{
	{29, SizeSmall},
	{49, SizeMedium},
	{60, SizeLarge},
	{999999, SizeXLarge},
}

// PackageSize returns the size label for a package with the given dimensions
// in centimetres. It returns false when a dimension is not a number or the
// package exceeds every limit.
func PackageSize(width, height, length string) (string, bool) {
	largest := decimal.Zero
	for _, dim := range []string{height, width, length} {
		d, err := decimal.NewFromString(strings.TrimSpace(dim))
		if err != nil {
			return "", false
		}
		if d.GreaterThan(largest) {
			largest = d
		}
	}

	for _, s := range packageSizes {
		if largest.LessThanOrEqual(decimal.NewFromInt(s.limit)) {
			return s.label, true
		}
	}
	return "", false
}
