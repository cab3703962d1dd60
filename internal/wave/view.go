package wave

import (
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	PixelsPerSecond float64
	FPS             int
	NumPoints       int
	LengthScale     float64
	Swings          float64
	Primary         Paint
	Secondary       Paint

	// Rand seeds waveform generation; nil uses the global source.
	Rand *rand.Rand
	// Now defaults to time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		PixelsPerSecond: 25,
		FPS:             20,
		NumPoints:       20,
		LengthScale:     0.5,
		Swings:          2,
		Primary:         Paint{Color: "#4380C6", Alpha: 188, Stroke: 2, Layer: LayerPrimary},
		Secondary:       Paint{Color: "#FFE4DC", Alpha: 90, Stroke: 1, Layer: LayerSecondary},
	}
}

// TickMsg advances the View whose ID it carries.
type TickMsg struct {
	ID   int
	Time time.Time
	tag  int
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// View scrolls a procedurally generated waveform horizontally. At most one
// tick is pending per View; ticks from a previous Start are dropped.
type View struct {
	id   int
	cols int
	rows int
	opts Options

	running     bool
	tag         int
	offset      float64
	last        time.Time
	lengthScale float64

	// Built on first draw and kept for the life of the View.
	bitmap   *Bitmap
	gradient Gradient
	err      error
}

// NewView returns a View that draws into cols x rows terminal cells.
func NewView(cols, rows int, opts Options) *View {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	return &View{
		id:          nextID(),
		cols:        max(cols, 1),
		rows:        max(rows, 1),
		opts:        opts,
		lengthScale: float64(opts.NumPoints-1) * opts.LengthScale,
	}
}

func (v *View) ID() int { return v.id }

func (v *View) Running() bool { return v.running }

func (v *View) Offset() float64 { return v.offset }

func (v *View) Interval() time.Duration {
	return time.Second / time.Duration(v.opts.FPS)
}

// Start cancels any pending tick and schedules the first one.
func (v *View) Start() tea.Cmd {
	v.running = true
	v.tag++
	v.last = v.opts.Now()
	return v.tick()
}

func (v *View) Stop() {
	v.running = false
	v.tag++
}

// Toggle starts a stopped View and stops a running one.
func (v *View) Toggle() tea.Cmd {
	if v.running {
		v.Stop()
		return nil
	}
	return v.Start()
}

func (v *View) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(TickMsg)
	if !ok || m.ID != v.id || m.tag != v.tag || !v.running {
		return nil
	}
	v.Advance(m.Time)
	return v.tick()
}

// Advance moves the scroll offset by the wall-clock time since the previous
// tick, wrapping at the waveform's pixel width.
func (v *View) Advance(now time.Time) {
	elapsed := now.Sub(v.last).Seconds()
	v.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	width := float64(v.PixelWidth())
	if width <= 0 {
		return
	}
	v.offset = math.Mod(v.offset+v.opts.PixelsPerSecond*elapsed, width)
}

// PixelWidth is the width of one waveform period in pixels.
func (v *View) PixelWidth() int {
	return Waveform{LengthScale: v.lengthScale}.PixelWidth(v.cols * cellWidth)
}

func (v *View) tick() tea.Cmd {
	id, tag := v.id, v.tag
	return tea.Tick(v.Interval(), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t, tag: tag}
	})
}

// build draws one primary and two secondary waveforms, each twice side by
// side, so that the visible window can scroll across the seam.
func (v *View) build() error {
	viewWidth := v.cols * cellWidth
	height := v.rows * cellHeight

	var width int
	paints := []Paint{v.opts.Primary, v.opts.Secondary, v.opts.Secondary}
	for i, paint := range paints {
		w, err := Generate(v.opts.Rand, v.opts.NumPoints, v.opts.LengthScale)
		if err != nil {
			return err
		}
		if i == 0 {
			width = w.PixelWidth(viewWidth)
			v.bitmap = NewBitmap(width*2, height)
		}
		path := BuildPath(w, width, height, v.opts.Swings)
		v.bitmap.DrawPath(path, 0, paint)
		v.bitmap.DrawPath(path, float64(width), paint)
	}
	return nil
}

func (v *View) View() string {
	if v.bitmap == nil && v.err == nil {
		v.err = v.build()
	}
	if v.err != nil {
		return v.err.Error()
	}
	if v.gradient == nil {
		v.gradient = NewGradient(v.cols)
	}

	originX := int(v.offset)
	lines := make([]string, v.rows)
	for r := 0; r < v.rows; r++ {
		var sb strings.Builder
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for c := 0; c < v.cols; c++ {
			ch, layers := v.bitmap.Cell(originX+c*cellWidth, r*cellHeight)
			fade := v.gradient.Alpha(c)
			var color lipgloss.Color
			if layers == 0 || fade >= 1 {
				ch = ' '
			} else {
				color = shade(layers, v.opts.Primary, v.opts.Secondary, fade)
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(ch)
		}
		flush()
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}
