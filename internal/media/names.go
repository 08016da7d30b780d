package media

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Timestamp formats seconds as H:MM:SS. Fractions are truncated.
func Timestamp(seconds float64) string {
	total := int(math.Max(0, seconds))
	h, rem := total/3600, total%3600
	return fmt.Sprintf("%d:%02d:%02d", h, rem/60, rem%60)
}

// ClipName builds "<stem>_clipHHMMSS<ext>" for input. The clip goes next to
// input unless dir is set.
func ClipName(input, dir string, now time.Time) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_clip%s%s", stem, now.Format("150405"), ext))
}

// Elide shortens name to at most max characters by cutting its middle.
func Elide(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	half := max / 2
	return strings.TrimSpace(string(r[:half]) + "..." + string(r[len(r)-half:]))
}

// ElideLeft keeps the last max characters of name.
func ElideLeft(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return "..." + string(r[len(r)-max:])
}
