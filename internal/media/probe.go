package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNoDuration is returned when ffprobe reports no usable duration.
var ErrNoDuration = errors.New("no media duration")

// Prober reads media metadata with ffprobe.
type Prober struct {
	Bin    string
	Runner Runner
}

func NewProber(bin string) *Prober {
	return &Prober{Bin: bin, Runner: ExecRunner{}}
}

// Duration returns the file's duration in whole seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	if fi, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	} else if fi.IsDir() {
		return 0, fmt.Errorf("probe %s: is a directory", path)
	}
	out, err := p.Runner.Run(ctx, p.Bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	raw := strings.TrimSpace(string(out))
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w: %q", path, ErrNoDuration, raw)
	}
	secs = math.Trunc(secs)
	if secs <= 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 0, fmt.Errorf("probe %s: %w: %q", path, ErrNoDuration, raw)
	}
	return secs, nil
}
