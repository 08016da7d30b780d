package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/jask/clipper/internal/config"
	"github.com/jask/clipper/internal/history"
	"github.com/jask/clipper/internal/media"
	"github.com/jask/clipper/internal/rangeslider"
)

// The slider's on-screen origin. View renders exactly sliderRow lines
// above it and no left margin.
const (
	sliderRow = 3
	sliderCol = 0
)

type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

type Clipper interface {
	Clip(ctx context.Context, r media.Request) error
}

type History interface {
	Record(ctx context.Context, c history.Clip) (history.Clip, error)
	Sources(ctx context.Context, limit int) ([]string, error)
}

type Services struct {
	Prober  Prober
	Clipper Clipper
	// History is optional.
	History History
}

// App ties the slider to the media tools.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	keys     keyMap
	help     help.Model
	slider   *rangeslider.Slider
	prompt   textinput.Model

	prompting  bool
	busy       bool
	file       string
	duration   float64
	avoidNegTS bool
	sources    []string
	status     string
	statusErr  bool
	width      int
	startFile  string
	now        func() time.Time
}

// New builds the app. initialFile, if set, is opened on Init.
func New(ctx context.Context, cfg config.Config, services Services, initialFile string) (*App, error) {
	slider, err := rangeslider.New(0, 1,
		rangeslider.WithSize(cfg.UI.SliderWidth, rangeslider.DefaultHeight),
		rangeslider.WithHandleRadius(float64(cfg.UI.HandleRadius)),
		rangeslider.WithDisplay(rangeslider.PlaceholderDisplay),
	)
	if err != nil {
		return nil, fmt.Errorf("slider: %w", err)
	}
	prompt := textinput.New()
	prompt.Prompt = "File: "
	prompt.Placeholder = "path to a media file"
	prompt.CharLimit = 4096

	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(lipgloss.Color("#5c8a8a")).Bold(true)

	return &App{
		ctx:        ctx,
		cfg:        cfg,
		services:   services,
		keys:       newKeyMap(),
		help:       h,
		slider:     slider,
		prompt:     prompt,
		avoidNegTS: cfg.Media.AvoidNegativeTS,
		width:      cfg.UI.SliderWidth,
		startFile:  strings.TrimSpace(initialFile),
		now:        time.Now,
	}, nil
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadSources()}
	if a.startFile != "" {
		cmds = append(cmds, a.openCmd(a.startFile))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadSources() tea.Cmd {
	return func() tea.Msg {
		if a.services.History == nil {
			return sourcesMsg(nil)
		}
		srcs, err := a.services.History.Sources(a.ctx, a.cfg.UI.RecentLimit)
		if err != nil {
			return errMsg{fmt.Errorf("load history: %w", err)}
		}
		return sourcesMsg(srcs)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.MouseMsg:
		a.handleMouse(m)
	case tea.KeyMsg:
		if a.prompting {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)
	case sourcesMsg:
		a.sources = m
	case fileLoadedMsg:
		a.loadFile(m.path, m.duration)
	case fileMissingMsg:
		a.setError(fmt.Sprintf("No such file: %s", m.path))
		if m.suggestion != "" {
			a.status += fmt.Sprintf(" (did you mean %s?)", m.suggestion)
		}
	case clipDoneMsg:
		a.busy = false
		name := media.ElideLeft(filepath.Base(m.output), a.cfg.UI.MaxNameLength)
		a.setStatus("Exported clip as " + name)
		return a, a.loadSources()
	case clipFailedMsg:
		a.busy = false
		a.setError(m.err.Error())
	case errMsg:
		a.setError(m.Error())
	}
	return a, nil
}

func (a *App) View() string {
	return a.render()
}

// handleMouse translates terminal mouse events into slider pointer events.
func (a *App) handleMouse(m tea.MouseMsg) {
	x := float64(m.X - sliderCol)
	y := float64(m.Y - sliderRow)
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button == tea.MouseButtonLeft {
			a.slider.OnPointerPress(x, y)
		}
	case tea.MouseActionRelease:
		a.slider.OnPointerRelease(x, y)
	case tea.MouseActionMotion:
		if m.Button == tea.MouseButtonLeft {
			a.slider.OnPointerDrag(x, y)
		} else {
			a.slider.OnPointerMove(x, y)
		}
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Open):
		a.prompting = true
		a.prompt.SetValue(a.file)
		a.prompt.CursorEnd()
		return a, a.prompt.Focus()
	case key.Matches(m, a.keys.Toggle):
		a.avoidNegTS = !a.avoidNegTS
	case key.Matches(m, a.keys.Recent):
		if len(a.sources) == 0 {
			a.setStatus("No clip history yet")
			return a, nil
		}
		return a, a.openCmd(a.sources[0])
	case key.Matches(m, a.keys.Clip):
		return a, a.clip()
	}
	return a, nil
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(m, a.keys.Cancel):
		a.prompting = false
		a.prompt.Blur()
		return a, nil
	case key.Matches(m, a.keys.Confirm):
		path := strings.TrimSpace(a.prompt.Value())
		a.prompting = false
		a.prompt.Blur()
		if path == "" {
			a.setStatus("Enter a file path")
			return a, nil
		}
		return a, a.openCmd(path)
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(m)
	return a, cmd
}

func (a *App) openCmd(path string) tea.Cmd {
	path = expandHome(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sources := append([]string(nil), a.sources...)
	a.setStatus("Probing...")
	return func() tea.Msg {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			s, _ := history.Suggest(path, sources)
			return fileMissingMsg{path: path, suggestion: s}
		}
		d, err := a.services.Prober.Duration(a.ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("probe failed")
			return errMsg{err}
		}
		return fileLoadedMsg{path: path, duration: d}
	}
}

func (a *App) loadFile(path string, duration float64) {
	if err := a.slider.ChangeMinMax(0, duration); err != nil {
		a.setError(err.Error())
		return
	}
	a.slider.ChangeDisplay(rangeslider.TimestampDisplay(duration))
	a.file = path
	a.duration = duration
	a.setStatus("")
	log.Info().Str("file", path).Float64("duration", duration).Msg("loaded")
}

// clearFile returns to the no-file state.
func (a *App) clearFile() {
	a.file = ""
	a.duration = 0
	_ = a.slider.ChangeMinMax(0, 1)
	a.slider.ChangeDisplay(rangeslider.PlaceholderDisplay)
}

func (a *App) clip() tea.Cmd {
	if a.busy {
		return nil
	}
	if a.file == "" {
		a.setStatus("Open a file first")
		return nil
	}
	if fi, err := os.Stat(a.file); err != nil || fi.IsDir() {
		a.clearFile()
		a.setError("The chosen file appears to have been deleted. Operation cancelled.")
		return nil
	}
	in, out := a.slider.InAndOut()
	req := media.Request{
		Input:           a.file,
		Output:          media.ClipName(a.file, a.cfg.Media.OutputDir, a.now()),
		In:              in,
		Out:             out,
		AvoidNegativeTS: a.avoidNegTS,
	}
	a.busy = true
	a.setStatus("Running...")
	return func() tea.Msg {
		if err := a.services.Clipper.Clip(a.ctx, req); err != nil {
			log.Error().Err(err).Str("file", req.Input).Msg("clip failed")
			return clipFailedMsg{err}
		}
		if a.services.History != nil {
			_, err := a.services.History.Record(a.ctx, history.Clip{
				Source: req.Input,
				Output: req.Output,
				Start:  req.In,
				End:    req.Out,
			})
			if err != nil {
				log.Warn().Err(err).Msg("record clip")
			}
		}
		return clipDoneMsg{output: req.Output}
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

// Slider exposes the embedded widget.
func (a *App) Slider() *rangeslider.Slider { return a.slider }

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

type sourcesMsg []string

type errMsg struct{ error }

type fileLoadedMsg struct {
	path     string
	duration float64
}

type fileMissingMsg struct {
	path       string
	suggestion string
}

type clipDoneMsg struct {
	output string
}

type clipFailedMsg struct {
	err error
}
