package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-midiscene/midi"
	"go-midiscene/scene"
	"go-midiscene/theme"
)

func newTestModel() (Model, *midi.Queue) {
	q := midi.NewQueue()
	uploads := &UploadStats{}
	live := scene.NewLive(q, uploads, scene.Options{Capacity: 32})
	return NewModel(live, uploads, NewClock(1), theme.New(nil)), q
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func frame(m Model, at time.Time) Model {
	next, cmd := m.Update(frameMsg(at))
	if cmd == nil {
		panic("frame did not schedule the next frame")
	}
	return next.(Model)
}

func TestModelFrameDrivesScene(t *testing.T) {
	m, q := newTestModel()
	t0 := time.Unix(0, 0)
	m = frame(m, t0)

	q.Push(gomidi.NoteOn(0, 60, 100))
	m = frame(m, t0.Add(time.Second))
	if !m.Scene.Keys()[60].Active() {
		t.Fatal("note on did not reach the scene")
	}
	if m.Uploads.Partial == 0 {
		t.Error("no partial upload recorded")
	}

	q.Push(gomidi.NoteOff(0, 60))
	m = frame(m, t0.Add(2*time.Second))
	if n := m.Scene.Notes()[0]; n.Duration != 1 {
		t.Errorf("duration = %f, want 1", n.Duration)
	}
	if m.Scene.Duration() != 2 {
		t.Errorf("scene duration = %f, want 2", m.Scene.Duration())
	}
}

func TestModelPauseDiscards(t *testing.T) {
	m, q := newTestModel()
	t0 := time.Unix(0, 0)
	m = frame(m, t0)
	m = frame(m, t0.Add(time.Second))

	m = press(m, " ")
	q.Push(gomidi.NoteOn(0, 60, 100))
	m = frame(m, t0.Add(2*time.Second))

	if q.Len() != 0 || m.Scene.NotesCount() != 0 {
		t.Errorf("paused frame: queue %d, notes %d", q.Len(), m.Scene.NotesCount())
	}
	if !strings.Contains(m.View(), "PAUSE") {
		t.Error("view does not show pause")
	}
}

func TestModelSetModeKeys(t *testing.T) {
	m, q := newTestModel()
	t0 := time.Unix(0, 0)
	q.Push(gomidi.NoteOn(5, 70, 100))
	m = frame(m, t0)

	m = press(m, "f")
	if m.Sets.Mode != scene.SetFlat || m.Scene.Notes()[0].Set != 0 {
		t.Errorf("flat mode not applied: %v %v", m.Sets.Mode, m.Scene.Notes()[0].Set)
	}
	if m.Uploads.Full != 1 {
		t.Errorf("full uploads = %d, want 1", m.Uploads.Full)
	}

	m = press(m, "c")
	if m.Scene.Notes()[0].Set != 5 {
		t.Errorf("channel set = %v, want 5", m.Scene.Notes()[0].Set)
	}
}

func TestModelPortsEvent(t *testing.T) {
	m, _ := newTestModel()
	m.handleDevice(midi.DeviceEvent{Type: midi.PortsChanged, Ports: []string{"Digital Piano"}})
	if !strings.Contains(m.View(), "Digital Piano") {
		t.Error("port list not shown")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || next.(Model).View() != "" {
		t.Error("q should quit")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel()
	if strings.Contains(m.View(), "toggle this help") {
		t.Fatal("help shown before toggling")
	}
	m = press(m, "?")
	if !strings.Contains(m.View(), "toggle this help") {
		t.Error("help not shown after ?")
	}
}
