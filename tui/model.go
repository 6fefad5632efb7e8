package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-midiscene/debug"
	"go-midiscene/midi"
	"go-midiscene/mirror"
	"go-midiscene/scene"
	"go-midiscene/theme"
	"go-midiscene/widgets"
)

// seekStep is how far the arrow keys move the playback time
const seekStep = 5.0

type Model struct {
	Scene     *scene.Live
	Clock     *Clock
	Uploads   *UploadStats
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme

	Source string // name of the input being drained
	FPS    int
	Keys   widgets.KeyRange
	Sets   scene.SetOptions
	Mirror bool

	grid     *mirror.Grid
	ports    []string
	showHelp bool
	quitting bool
}

var helpSections = []widgets.KeySection{
	{Title: "Playback", Keys: []widgets.KeyBinding{
		{Key: "space / p", Desc: "pause and resume"},
		{Key: "← / →", Desc: "seek 5 seconds"},
		{Key: "+ / -", Desc: "change speed"},
	}},
	{Title: "Note colors", Keys: []widgets.KeyBinding{
		{Key: "c", Desc: "by channel"},
		{Key: "k", Desc: "split at key"},
		{Key: "f", Desc: "single color"},
	}},
	{Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "toggle this help"},
		{Key: "q", Desc: "quit"},
	}},
}

type frameMsg time.Time

type DeviceEventMsg midi.DeviceEvent

// deviceClosedMsg is sent once the device manager stops
type deviceClosedMsg struct{}

func NewModel(live *scene.Live, uploads *UploadStats, clock *Clock, th *theme.Theme) Model {
	return Model{
		Scene:   live,
		Clock:   clock,
		Uploads: uploads,
		Theme:   th,
		FPS:     30,
		Keys:    widgets.Piano,
	}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(m.FPS, 1)), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return deviceClosedMsg{}
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frame()}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case frameMsg:
		m.step(time.Time(msg))
		return m, m.frame()

	case DeviceEventMsg:
		m.handleDevice(midi.DeviceEvent(msg))
		return m, ListenForDevices(m.DeviceMgr)

	case deviceClosedMsg:
		return m, nil
	}
	return m, nil
}

// step advances playback to now and runs one scene update
func (m *Model) step(now time.Time) {
	t := m.Clock.Advance(now)
	m.Scene.Update(t, m.Clock.Speed())
	if m.grid != nil {
		m.grid.Flush(m.Scene.Keys())
	}
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case " ", "p":
		m.Clock.Toggle()
	case "left", "h":
		m.Clock.Seek(-seekStep)
	case "right", "l":
		m.Clock.Seek(seekStep)
	case "+", "=":
		m.Clock.SetSpeed(m.Clock.Speed() * 1.25)
	case "-", "_":
		m.Clock.SetSpeed(m.Clock.Speed() / 1.25)
	case "c":
		m.setMode(scene.SetChannel)
	case "k":
		m.setMode(scene.SetKey)
	case "f":
		m.setMode(scene.SetFlat)
	}
	return m, nil
}

func (m *Model) setMode(mode scene.SetMode) {
	m.Sets.Mode = mode
	m.Scene.UpdateSets(m.Sets)
	debug.Log("tui", "set mode %s", mode)
}

func (m *Model) handleDevice(event midi.DeviceEvent) {
	switch event.Type {
	case midi.DeviceConnected:
		if m.Mirror && m.grid == nil {
			m.grid = mirror.New(event.Controller, m.Theme, mirror.DefaultLowest)
			debug.Log("tui", "mirroring keys on %s", event.ID)
		}
	case midi.DeviceDisconnected:
		if m.grid != nil && m.grid.Controller().ID() == event.ID {
			m.grid = nil
		}
	case midi.PortsChanged:
		m.ports = event.Ports
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	playState := headerStyle.Render("PLAY")
	if !m.Clock.Playing() {
		playState = lipgloss.NewStyle().Foreground(m.Theme.Warning()).Bold(true).Render("PAUSE")
	}
	tempo := m.Scene.Tempo()
	header := headerStyle.Render("go-midiscene  ") + playState + headerStyle.Render(fmt.Sprintf("  t:%7.2fs  x%.2f  %3.0fbpm  sig:%.2f  %.2fs/measure",
		m.Clock.Time(), m.Clock.Speed(), tempo.BPM(), tempo.Signature(), m.Scene.SecondsPerMeasure()))

	particles := 0
	for _, p := range m.Scene.Particles() {
		if p.Note >= 0 {
			particles++
		}
	}
	keys := m.Scene.Keys()
	stats := fgStyle.Render(fmt.Sprintf("notes:%d  active:%d  particles:%d  duration:%.1fs  sets:%s",
		m.Scene.NotesCount(), keys.ActiveCount(), particles, m.Scene.Duration(), m.Sets.Mode))

	uploads := dimStyle.Render(fmt.Sprintf("uploads full:%d partial:%d slots:%d last:[%d..%d]",
		m.Uploads.Full, m.Uploads.Partial, m.Uploads.Slots, m.Uploads.Min, m.Uploads.Max))

	source := m.Source
	if m.grid != nil {
		source += "  mirror:" + m.grid.Controller().ID()
	}
	if len(m.ports) > 0 {
		source += "  ports:" + strings.Join(m.ports, ", ")
	}

	help := dimStyle.Render("space:pause  ←/→:seek  +/-:speed  c/k/f:sets  ?:help  q:quit")
	if m.showHelp {
		help = dimStyle.Render(widgets.RenderKeyHelp(helpSections))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(source))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderParticles(m.Scene.Particles(), m.Keys, m.Theme))
	out.WriteString("\n")
	out.WriteString(widgets.RenderKeyboard(keys, m.Keys, m.Theme))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderPedals(m.Scene.Pedals(), 24, m.Theme))
	out.WriteString("\n\n")
	out.WriteString(stats)
	out.WriteString("\n")
	out.WriteString(uploads)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
