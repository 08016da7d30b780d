package rangeslider

import (
	"fmt"
	"math"
)

// Display renders a handle value as label text. It must be pure. A panic
// inside a Display is not recovered by the slider.
type Display func(value float64) string

// FixedDisplay is the default formatter: two decimal places.
func FixedDisplay(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// PlaceholderDisplay is used while no media is loaded.
func PlaceholderDisplay(float64) string {
	return "??:??"
}

// PrecisionDisplay formats with a fixed number of decimals.
func PrecisionDisplay(digits int) Display {
	if digits < 0 {
		digits = 0
	}
	return func(v float64) string {
		return fmt.Sprintf("%.*f", digits, v)
	}
}

// TimestampDisplay picks a timestamp granularity that suits a domain of
// the given length in seconds: H:MM:SS from one hour, M:SS from one minute,
// fractional seconds below that.
func TimestampDisplay(duration float64) Display {
	switch {
	case duration >= 3600:
		return func(v float64) string {
			h, m, s := splitSeconds(v)
			return fmt.Sprintf("%d:%02d:%02d", h, m, s)
		}
	case duration >= 60:
		return func(v float64) string {
			h, m, s := splitSeconds(v)
			return fmt.Sprintf("%d:%02d", h*60+m, s)
		}
	default:
		return func(v float64) string {
			return fmt.Sprintf("%.1fs", math.Max(0, v))
		}
	}
}

func splitSeconds(v float64) (h, m, s int) {
	total := int(math.Max(0, v))
	h, total = total/3600, total%3600
	return h, total / 60, total % 60
}
