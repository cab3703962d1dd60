package internal

import (
	"context"
	"fmt"

	"scratchpad/internal/config"
	"scratchpad/internal/notify"
	"scratchpad/internal/service"
	"scratchpad/internal/session"
	"scratchpad/internal/wave"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// MsgTick refreshes the live elapsed readout.
type MsgTick struct{}

type screen int

const (
	screenMenu screen = iota
	screenWave
	screenBackground
)

const recentSessions = 5

// SessionStore lists and clears completed stopwatch runs.
type SessionStore interface {
	Recent(ctx context.Context, limit int) ([]session.Session, error)
	Clear(ctx context.Context) error
}

type Options struct {
	Service  *service.Service
	Tray     *notify.Tray
	Sessions SessionStore
	Wave     config.WaveConfig
	Logger   *zap.Logger
}

type keyMap struct {
	Wave       key.Binding
	Background key.Binding
	Small      key.Binding
	Large      key.Binding
	Start      key.Binding
	Stop       key.Binding
	Reset      key.Binding
	Clear      key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Wave:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wave view")),
		Background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background timer")),
		Small:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "toggle small")),
		Large:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "toggle large")),
		Start:      key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
		Stop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear history")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys adapts a screen's bindings to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) forScreen(s screen) helpKeys {
	switch s {
	case screenWave:
		return helpKeys{k.Small, k.Large, k.Back, k.Quit}
	case screenBackground:
		return helpKeys{k.Start, k.Stop, k.Reset, k.Clear, k.Back, k.Quit}
	default:
		return helpKeys{k.Wave, k.Background, k.Quit}
	}
}

type Model struct {
	Screen screen
	Status string
	Err    error
	Recent []session.Session

	Small *wave.View
	Large *wave.View

	svc      *service.Service
	binding  *service.Binding
	tray     *notify.Tray
	sessions SessionStore
	logger   *zap.Logger
	keys     keyMap
	help     help.Model
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	waveOpts := WaveOptions(opts.Wave)
	return &Model{
		Screen:   screenMenu,
		Small:    wave.NewView(opts.Wave.Small.Cols, opts.Wave.Small.Rows, waveOpts),
		Large:    wave.NewView(opts.Wave.Large.Cols, opts.Wave.Large.Rows, waveOpts),
		svc:      opts.Service,
		tray:     opts.Tray,
		sessions: opts.Sessions,
		logger:   logger.Named("ui"),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// WaveOptions maps the wave section of the config onto view options.
func WaveOptions(cfg config.WaveConfig) wave.Options {
	opts := wave.DefaultOptions()
	opts.PixelsPerSecond = cfg.PixelsPerSecond
	opts.FPS = cfg.FPS
	opts.NumPoints = cfg.NumPoints
	opts.LengthScale = cfg.LengthScale
	opts.Swings = cfg.SwingsPerLength
	return opts
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, nil
	case wave.TickMsg:
		return m, tea.Batch(m.Small.Update(msg), m.Large.Update(msg))
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.Screen {
	case screenWave:
		return m.waveView()
	case screenBackground:
		return m.backgroundView()
	default:
		return m.menuView()
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.Screen {
	case screenWave:
		return m.handleWaveInput(msg)
	case screenBackground:
		return m.handleBackgroundInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Wave):
		m.Screen = screenWave
	case key.Matches(msg, m.keys.Background):
		m.openBackground()
	}
	return m, nil
}

func (m *Model) handleWaveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Small):
		return m, m.Small.Toggle()
	case key.Matches(msg, m.keys.Large):
		return m, m.Large.Toggle()
	case key.Matches(msg, m.keys.Back):
		m.Small.Stop()
		m.Large.Stop()
		m.Screen = screenMenu
	}
	return m, nil
}

func (m *Model) handleBackgroundInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch {
	case key.Matches(msg, m.keys.Start):
		if svc := m.connected(); svc != nil {
			svc.StartTimer()
			m.Status = fmt.Sprintf("Elapsed: %d", svc.Elapsed())
		}
	case key.Matches(msg, m.keys.Stop):
		if svc := m.connected(); svc != nil {
			elapsed := svc.StopTimer(ctx)
			m.Status = fmt.Sprintf("Ended at: %d", elapsed)
			m.loadSessions(ctx)
		}
	case key.Matches(msg, m.keys.Reset):
		if svc := m.connected(); svc != nil {
			svc.ResetTimer()
		}
	case key.Matches(msg, m.keys.Clear):
		if m.sessions != nil {
			if err := m.sessions.Clear(ctx); err != nil {
				m.Err = fmt.Errorf("failed to clear history: %w", err)
			}
			m.loadSessions(ctx)
		}
	case key.Matches(msg, m.keys.Back):
		m.closeBackground()
	}
	return m, nil
}

func (m *Model) openBackground() {
	m.Screen = screenBackground
	m.Err = nil
	if m.svc == nil {
		m.Status = "Disconnected"
		return
	}
	m.binding = m.svc.Bind()
	m.Status = "Connected"
	m.loadSessions(context.Background())
}

// closeBackground unbinds and lets the service shut itself down. A running
// timer keeps the service, and its notification, alive.
func (m *Model) closeBackground() {
	if m.binding != nil {
		m.binding.Unbind()
		m.binding = nil
	}
	if m.svc != nil {
		if err := m.svc.StopSelf(context.Background()); err != nil {
			m.logger.Info("timer service kept alive", zap.Error(err))
		}
	}
	m.Status = "Disconnected"
	m.Screen = screenMenu
}

// connected returns the bound service, or nil when no binding is held.
func (m *Model) connected() *service.Service {
	if m.binding == nil {
		return nil
	}
	return m.binding.Service()
}

func (m *Model) loadSessions(ctx context.Context) {
	if m.sessions == nil {
		return
	}
	recent, err := m.sessions.Recent(ctx, recentSessions)
	if err != nil {
		m.logger.Error("failed to load sessions", zap.Error(err))
		m.Err = fmt.Errorf("failed to load history: %w", err)
		return
	}
	m.Recent = recent
}

// Close releases the binding and shuts the service down, recording a run
// that is still in progress.
func (m *Model) Close() {
	m.Small.Stop()
	m.Large.Stop()
	if m.binding != nil {
		m.binding.Unbind()
		m.binding = nil
	}
	if m.svc != nil {
		m.svc.Destroy(context.Background())
	}
}
