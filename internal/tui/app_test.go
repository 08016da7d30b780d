package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/clipper/internal/config"
	"github.com/jask/clipper/internal/history"
	"github.com/jask/clipper/internal/media"
)

type fakeProber struct {
	duration float64
	err      error
}

func (f fakeProber) Duration(context.Context, string) (float64, error) {
	return f.duration, f.err
}

type fakeClipper struct {
	reqs []media.Request
	err  error
}

func (f *fakeClipper) Clip(_ context.Context, r media.Request) error {
	f.reqs = append(f.reqs, r)
	return f.err
}

type fakeHistory struct {
	clips   []history.Clip
	sources []string
}

func (f *fakeHistory) Record(_ context.Context, c history.Clip) (history.Clip, error) {
	f.clips = append(f.clips, c)
	return c, nil
}

func (f *fakeHistory) Sources(context.Context, int) ([]string, error) {
	return f.sources, nil
}

type harness struct {
	app     *App
	clipper *fakeClipper
	history *fakeHistory
}

// newHarness builds an app whose 72 cell slider has its track at 2..70, so
// with a 68 second file Position(v) is 2+v.
func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Defaults()
	cfg.Media.OutputDir = t.TempDir()
	h := &harness{clipper: &fakeClipper{}, history: &fakeHistory{}}
	app, err := New(context.Background(), cfg, Services{
		Prober:  fakeProber{duration: 68},
		Clipper: h.clipper,
		History: h.history,
	}, "")
	require.NoError(t, err)
	app.now = func() time.Time { return time.Date(2026, 10, 17, 14, 3, 9, 0, time.UTC) }
	h.app = app
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) mouse(x int, action tea.MouseAction, button tea.MouseButton) {
	h.send(tea.MouseMsg{X: x, Y: sliderRow + 1, Action: action, Button: button})
}

func (h *harness) drag(fromX, toX int) {
	h.mouse(fromX, tea.MouseActionMotion, tea.MouseButtonNone)
	h.mouse(fromX, tea.MouseActionPress, tea.MouseButtonLeft)
	h.mouse(toX, tea.MouseActionMotion, tea.MouseButtonLeft)
	h.mouse(toX, tea.MouseActionRelease, tea.MouseButtonNone)
}

func mediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("media"), 0o644))
	return path
}

func (h *harness) open(t *testing.T, path string) {
	t.Helper()
	msg := h.app.openCmd(path)()
	require.IsType(t, fileLoadedMsg{}, msg)
	h.send(msg)
}

func TestStartsWithPlaceholderLabels(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, "??:??", h.app.Slider().In().Label())
	require.Equal(t, "??:??", h.app.Slider().Out().Label())
	require.Contains(t, ansi.Strip(h.app.View()), "No file selected!")
}

func TestOpenLoadsDomainAndDisplay(t *testing.T) {
	h := newHarness(t)
	path := mediaFile(t, "holiday.mp4")
	h.open(t, path)

	lo, hi := h.app.Slider().Bounds()
	require.Equal(t, 0.0, lo)
	require.Equal(t, 68.0, hi)
	require.Equal(t, "0:00", h.app.Slider().In().Label())
	require.Equal(t, "1:08", h.app.Slider().Out().Label())
	require.Contains(t, ansi.Strip(h.app.View()), "holiday.mp4")
}

func TestOpenMissingFileSuggestsHistory(t *testing.T) {
	h := newHarness(t)
	known := mediaFile(t, "holiday.mp4")
	h.send(sourcesMsg{known})

	msg := h.app.openCmd(strings.TrimSuffix(known, "4") + "3")()
	missing, ok := msg.(fileMissingMsg)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, known, missing.suggestion)

	h.send(msg)
	require.True(t, h.app.statusErr)
	require.Contains(t, h.app.status, "did you mean "+known)
}

func TestMouseDragMovesHandles(t *testing.T) {
	h := newHarness(t)
	h.open(t, mediaFile(t, "talk.mkv"))

	h.drag(2, 32)
	in, out := h.app.Slider().InAndOut()
	require.Equal(t, 30.0, in)
	require.Equal(t, 68.0, out)

	// The out handle stops at the in handle.
	h.drag(70, 10)
	in, out = h.app.Slider().InAndOut()
	require.Equal(t, 30.0, in)
	require.Equal(t, 30.0, out)
}

func TestHoverThenDragWithoutPress(t *testing.T) {
	h := newHarness(t)
	h.open(t, mediaFile(t, "talk.mkv"))

	h.mouse(70, tea.MouseActionMotion, tea.MouseButtonNone)
	h.mouse(50, tea.MouseActionMotion, tea.MouseButtonLeft)
	_, out := h.app.Slider().InAndOut()
	require.Equal(t, 48.0, out)
}

func TestMouseOutsideSliderIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.open(t, mediaFile(t, "talk.mkv"))

	h.send(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.send(tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	in, out := h.app.Slider().InAndOut()
	require.Equal(t, 0.0, in)
	require.Equal(t, 68.0, out)
}

func TestClipRunsAndRecords(t *testing.T) {
	h := newHarness(t)
	path := mediaFile(t, "talk.mkv")
	h.open(t, path)
	h.drag(2, 12)
	h.key("n")

	cmd := h.key("c")
	require.NotNil(t, cmd)
	require.True(t, h.app.busy)
	require.Nil(t, h.key("c"), "clip ignored while busy")

	msg := cmd()
	require.Equal(t, clipDoneMsg{output: filepath.Join(h.app.cfg.Media.OutputDir, "talk_clip140309.mkv")}, msg)
	require.Len(t, h.clipper.reqs, 1)
	req := h.clipper.reqs[0]
	require.Equal(t, path, req.Input)
	require.Equal(t, 10.0, req.In)
	require.Equal(t, 68.0, req.Out)
	require.False(t, req.AvoidNegativeTS)

	require.Len(t, h.history.clips, 1)
	require.Equal(t, path, h.history.clips[0].Source)

	require.NotNil(t, h.send(msg))
	require.False(t, h.app.busy)
	require.Equal(t, "Exported clip as talk_clip140309.mkv", h.app.status)
}

func TestClipWithoutFile(t *testing.T) {
	h := newHarness(t)
	require.Nil(t, h.key("c"))
	require.Equal(t, "Open a file first", h.app.status)
	require.Empty(t, h.clipper.reqs)
}

func TestClipDeletedFileResets(t *testing.T) {
	h := newHarness(t)
	path := mediaFile(t, "gone.mp4")
	h.open(t, path)
	require.NoError(t, os.Remove(path))

	require.Nil(t, h.key("c"))
	require.True(t, h.app.statusErr)
	require.Contains(t, h.app.status, "deleted")
	require.Empty(t, h.app.file)
	require.Equal(t, "??:??", h.app.Slider().Out().Label())
	require.Empty(t, h.clipper.reqs)
}

func TestPromptOpensTypedPath(t *testing.T) {
	h := newHarness(t)
	h.key("o")
	require.True(t, h.app.prompting)

	missing := filepath.Join(t.TempDir(), "nope.mp4")
	h.key(missing)
	cmd := h.key("enter")
	require.False(t, h.app.prompting)
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, fileMissingMsg{path: missing}, msg)
}

func TestPromptEscapeCancels(t *testing.T) {
	h := newHarness(t)
	h.key("o")
	h.key("q")
	require.True(t, h.app.prompting, "q is typed into the prompt")
	require.Nil(t, h.key("esc"))
	require.False(t, h.app.prompting)
}

func TestViewPlacesSliderAtSliderRow(t *testing.T) {
	h := newHarness(t)
	lines := strings.Split(ansi.Strip(h.app.View()), "\n")
	require.Greater(t, len(lines), sliderRow+2)
	require.True(t, strings.HasPrefix(lines[sliderRow+1], " (●)━"), "line %q", lines[sliderRow+1])
}
