package wizard

import (
	"fmt"

	"healthquote-funnel/internal/common/validation"
)

// NormalizePhone strips everything but digits.
func NormalizePhone(s string) string {
	return validation.Digits(s)
}

// FormatPhone renders a partial or complete US number as the input mask does while typing:
// "555", "(555) 123", "(555) 123-4567". Input with more than ten digits is returned as is.
func FormatPhone(s string) string {
	d := validation.Digits(s)
	switch {
	case len(d) > 10:
		return s
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:3], d[3:])
	default:
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	}
}

// NormalizeZip keeps at most the first five digits.
func NormalizeZip(s string) string {
	d := validation.Digits(s)
	if len(d) > 5 {
		return d[:5]
	}
	return d
}
