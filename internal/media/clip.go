package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyRange is returned when out is not after in.
	ErrEmptyRange = errors.New("empty clip range")
	// ErrOutputExists is returned rather than overwriting a file.
	ErrOutputExists = errors.New("output file exists")
)

// Request describes one clip.
type Request struct {
	Input  string
	Output string
	// In and Out are seconds from the start of Input.
	In, Out         float64
	AvoidNegativeTS bool
}

// Clipper cuts clips with ffmpeg using stream copy.
type Clipper struct {
	Bin    string
	Runner Runner
}

func NewClipper(bin string) *Clipper {
	return &Clipper{Bin: bin, Runner: ExecRunner{}}
}

// Args builds the ffmpeg argument list for r. All streams are copied and
// audio dispositions are cleared so players don't pick a wrong default track.
func (r Request) Args() []string {
	args := []string{
		"-ss", Timestamp(r.In),
		"-i", r.Input,
		"-c", "copy",
		"-map", "0",
		"-disposition:a", "0",
		"-t", Timestamp(r.Out - r.In),
	}
	if r.AvoidNegativeTS {
		args = append(args, "-avoid_negative_ts", "make_zero")
	}
	return append(args, r.Output)
}

// Clip runs ffmpeg for r.
func (c *Clipper) Clip(ctx context.Context, r Request) error {
	if r.Out <= r.In {
		return fmt.Errorf("clip %s: %w (%v..%v)", r.Input, ErrEmptyRange, r.In, r.Out)
	}
	if _, err := os.Stat(r.Input); err != nil {
		return fmt.Errorf("clip %s: %w", r.Input, err)
	}
	if _, err := os.Stat(r.Output); err == nil {
		return fmt.Errorf("clip %s: %w", r.Output, ErrOutputExists)
	}
	log.Info().
		Str("input", r.Input).
		Str("output", r.Output).
		Float64("in", r.In).
		Float64("out", r.Out).
		Msg("clip")
	if _, err := c.Runner.Run(ctx, c.Bin, r.Args()...); err != nil {
		return fmt.Errorf("clip %s: %w", r.Input, err)
	}
	return nil
}
