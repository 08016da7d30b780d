package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	out   string
	err   error
	calls []call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return []byte(f.out), f.err
}

func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestProberDuration(t *testing.T) {
	path := touch(t, "a.mp4")
	runner := &fakeRunner{out: "125.840000\n"}
	p := &Prober{Bin: "ffprobe", Runner: runner}

	d, err := p.Duration(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 125.0, d)

	want := []call{{
		name: "ffprobe",
		args: []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path},
	}}
	if diff := cmp.Diff(want, runner.calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Fatalf("ffprobe calls (-want +got):\n%s", diff)
	}
}

func TestProberRejectsUnusableDuration(t *testing.T) {
	path := touch(t, "still.png")
	for _, out := range []string{"N/A", "0.4", "", "-3"} {
		p := &Prober{Bin: "ffprobe", Runner: &fakeRunner{out: out}}
		_, err := p.Duration(context.Background(), path)
		require.ErrorIs(t, err, ErrNoDuration, "output %q", out)
	}
}

func TestProberMissingFile(t *testing.T) {
	runner := &fakeRunner{out: "10"}
	p := &Prober{Bin: "ffprobe", Runner: runner}
	_, err := p.Duration(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, runner.calls)
}

func TestProberRunnerError(t *testing.T) {
	path := touch(t, "a.mp4")
	boom := errors.New("exit status 1")
	p := &Prober{Bin: "ffprobe", Runner: &fakeRunner{err: boom}}
	_, err := p.Duration(context.Background(), path)
	require.ErrorIs(t, err, boom)
}

func TestRequestArgs(t *testing.T) {
	r := Request{Input: "in.mkv", Output: "out.mkv", In: 65.7, Out: 3725, AvoidNegativeTS: true}
	want := []string{
		"-ss", "0:01:05",
		"-i", "in.mkv",
		"-c", "copy",
		"-map", "0",
		"-disposition:a", "0",
		"-t", "1:00:59",
		"-avoid_negative_ts", "make_zero",
		"out.mkv",
	}
	require.Equal(t, want, r.Args())

	r.AvoidNegativeTS = false
	args := r.Args()
	require.NotContains(t, args, "-avoid_negative_ts")
	require.Equal(t, "out.mkv", args[len(args)-1])
}

func TestClipperClip(t *testing.T) {
	in := touch(t, "talk.mp4")
	out := filepath.Join(filepath.Dir(in), "talk_clip.mp4")
	runner := &fakeRunner{}
	c := &Clipper{Bin: "/usr/bin/ffmpeg", Runner: runner}

	require.NoError(t, c.Clip(context.Background(), Request{Input: in, Output: out, In: 1, Out: 2}))
	require.Len(t, runner.calls, 1)
	require.Equal(t, "/usr/bin/ffmpeg", runner.calls[0].name)
}

func TestClipperGuards(t *testing.T) {
	in := touch(t, "talk.mp4")
	runner := &fakeRunner{}
	c := &Clipper{Bin: "ffmpeg", Runner: runner}
	ctx := context.Background()

	err := c.Clip(ctx, Request{Input: in, Output: in + ".out", In: 5, Out: 5})
	require.ErrorIs(t, err, ErrEmptyRange)

	err = c.Clip(ctx, Request{Input: in, Output: in, In: 0, Out: 5})
	require.ErrorIs(t, err, ErrOutputExists)

	err = c.Clip(ctx, Request{Input: in + ".missing", Output: "x", In: 0, Out: 5})
	require.ErrorIs(t, err, os.ErrNotExist)

	require.Empty(t, runner.calls)
}

func TestTimestamp(t *testing.T) {
	cases := map[float64]string{
		0:       "0:00:00",
		59.99:   "0:00:59",
		61:      "0:01:01",
		3600:    "1:00:00",
		45296.5: "12:34:56",
		-4:      "0:00:00",
	}
	for in, want := range cases {
		require.Equal(t, want, Timestamp(in), "Timestamp(%v)", in)
	}
}

func TestClipName(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 5, 7, 0, time.UTC)
	require.Equal(t, filepath.Join("/v", "holiday_clip090507.mp4"), ClipName("/v/holiday.mp4", "", now))
	require.Equal(t, filepath.Join("/out", "holiday.final_clip090507.mkv"), ClipName("/v/holiday.final.mkv", "/out", now))
	require.Equal(t, filepath.Join("/v", "noext_clip090507"), ClipName("/v/noext", "", now))
}

func TestElide(t *testing.T) {
	require.Equal(t, "short.mp4", Elide("short.mp4", 50))
	require.Equal(t, "abcd...wxyz", Elide("abcdefghijklmnopqrstuvwxyz", 8))
	require.Equal(t, "...uvwxyz", ElideLeft("abcdefghijklmnopqrstuvwxyz", 6))
	require.Equal(t, "abc", ElideLeft("abc", 6))
}
