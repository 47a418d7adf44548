package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/gridbeat"
	"github.com/vsariola/gridbeat/tracker"
)

var layout = []gridbeat.ColumnLayout{{Name: "kick"}, {Name: "synth", ParamLanes: true}}

func newTestUI(t *testing.T) (Model, *tracker.Model, *tracker.Broker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker := tracker.NewBroker()
	model := tracker.NewModel(broker, gridbeat.NewGrid(4, layout), "", logger)
	ui, err := New(model, Options{Logger: logger})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ui, model, broker
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, ui Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = ui.Update(msg)
		ui = next.(Model)
	}
	return ui, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInsertMode(t *testing.T) {
	ui, model, _ := newTestUI(t)
	ui, _ = send(t, ui, runes("i"), runes("C"), runes("4"))
	if ui.Mode() != Insert {
		t.Fatalf("mode = %v, want insert", ui.Mode())
	}
	if got := model.CurrentCell(); got != "C4" {
		t.Errorf("cell = %q, want C4", got)
	}
	ui, _ = send(t, ui, tea.KeyMsg{Type: tea.KeyEnter}, runes("6"), runes("0"), tea.KeyMsg{Type: tea.KeyBackspace})
	if got := model.Grid().Cell(0, gridbeat.NoteLane, 1); got != "6" {
		t.Errorf("second step = %q, want 6", got)
	}
	ui, _ = send(t, ui, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := model.CurrentCell(); got != gridbeat.EmptyCell {
		t.Errorf("cell after erasing = %q, want empty", got)
	}
	ui, _ = send(t, ui, tea.KeyMsg{Type: tea.KeyEsc})
	if ui.Mode() != Normal {
		t.Errorf("mode = %v, want normal", ui.Mode())
	}
}

func TestNormalCommands(t *testing.T) {
	ui, model, _ := newTestUI(t)
	ui, _ = send(t, ui, runes("i"), runes("5"), tea.KeyMsg{Type: tea.KeyEsc})
	ui, _ = send(t, ui, runes("+"), runes("+"))
	if got := model.CurrentCell(); got != "7" {
		t.Fatalf("incremented cell = %q, want 7", got)
	}
	ui, _ = send(t, ui, runes("x"))
	if got := model.CurrentCell(); got != gridbeat.EmptyCell {
		t.Fatalf("cell after x = %q, want empty", got)
	}
	ui, _ = send(t, ui, runes("j"), runes("p"))
	if got := model.CurrentCell(); got != "7" {
		t.Errorf("pasted cell = %q, want 7", got)
	}
	ui, _ = send(t, ui, runes("u"), runes("u"), runes("k"))
	if got := model.CurrentCell(); got != "7" {
		t.Errorf("cell after two undos = %q, want 7", got)
	}
	ui, _ = send(t, ui, runes("r"))
	if got := model.CurrentCell(); got != gridbeat.EmptyCell {
		t.Errorf("cell after redo = %q, want empty", got)
	}
	ui, _ = send(t, ui, runes("l"), runes("l"))
	if c := model.Cursor(); c.Track != 1 || c.Lane != gridbeat.ParamLane(gridbeat.ParamEngine) {
		t.Errorf("cursor = %+v, want the engine lane of the synth", c)
	}
}

func TestWriteAndQuit(t *testing.T) {
	ui, model, _ := newTestUI(t)
	path := filepath.Join(t.TempDir(), "beat.yml")
	ui, _ = send(t, ui, runes("i"), runes("C"), tea.KeyMsg{Type: tea.KeyEsc})
	ui, cmd := send(t, ui, runes(":"), runes("q"), tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal(":q quit with unsaved changes")
	}
	if a, ok := model.Alerts().Current(); !ok || a.Priority != tracker.Warning {
		t.Errorf("alert = %+v, want a warning", a)
	}
	ui, cmd = send(t, ui, runes(":"), runes("w "+path), tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal(":w quit")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if model.ChangedSinceSave() || model.FilePath() != path {
		t.Errorf("after :w changed = %v, path = %q", model.ChangedSinceSave(), model.FilePath())
	}
	_, cmd = send(t, ui, runes(":"), runes("q"), tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error(":q after saving did not quit")
	}
}

func TestEditCommand(t *testing.T) {
	ui, model, _ := newTestUI(t)
	path := filepath.Join(t.TempDir(), "beat.json")
	g := gridbeat.NewGrid(8, layout)
	g.SetCell(1, gridbeat.NoteLane, 2, "A3")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := gridbeat.WriteGrid(f, g, ".json"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	send(t, ui, runes(":"), runes("e "+path), tea.KeyMsg{Type: tea.KeyEnter})
	if got := model.Grid().Cell(1, gridbeat.NoteLane, 2); got != "A3" {
		t.Errorf("loaded cell = %q, want A3", got)
	}
	if model.Grid().Steps() != 8 {
		t.Errorf("loaded grid has %d steps, want 8", model.Grid().Steps())
	}
}

func TestUnknownCommand(t *testing.T) {
	ui, model, _ := newTestUI(t)
	_, cmd := send(t, ui, runes(":"), runes("frobnicate"), tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal("unknown command quit")
	}
	a, ok := model.Alerts().Current()
	if !ok || !strings.Contains(a.Message, "frobnicate") {
		t.Errorf("alert = %+v", a)
	}
}

func TestTickFollowsPlayer(t *testing.T) {
	ui, model, broker := newTestUI(t)
	broker.ToModel.Send(3)
	tracker.TrySend(broker.MIDINotes, tracker.MIDINote{Key: 64, Velocity: 100})
	_, cmd := send(t, ui, tickMsg(time.Now()))
	if cmd == nil || isQuit(cmd) {
		t.Fatal("tick did not schedule the next tick")
	}
	if model.Playhead() != 3 {
		t.Errorf("playhead = %d, want 3", model.Playhead())
	}
	if got := model.Grid().Cell(0, gridbeat.NoteLane, 0); got != "64" {
		t.Errorf("MIDI note wrote %q, want 64", got)
	}
}

func TestQuitsWhenPlayerGone(t *testing.T) {
	ui, _, broker := newTestUI(t)
	broker.ToPlayer.Close()
	_, cmd := send(t, ui, runes("i"), runes("1"))
	if !isQuit(cmd) {
		t.Error("edit with the player gone did not quit")
	}
}

func TestView(t *testing.T) {
	ui, _, _ := newTestUI(t)
	ui, _ = send(t, ui, runes("i"), runes("C4"), tea.KeyMsg{Type: tea.KeyEsc})
	v := ui.View()
	for _, want := range []string{"KICK", "SYNT", "ENGI", "C4", "NORMAL", "[no name] [+]"} {
		if !strings.Contains(v, want) {
			t.Errorf("view does not contain %q:\n%s", want, v)
		}
	}
}

func TestStatusTemplate(t *testing.T) {
	if _, err := New(nil, Options{StatusTemplate: "{{ .Mode"}); err == nil {
		t.Error("broken template accepted")
	}
	ui, _, _ := newTestUI(t)
	tmpl, err := New(ui.model, Options{StatusTemplate: `{{ .Track | upper }}:{{ .Step }} {{ .Cell | trim | quote }}`})
	if err != nil {
		t.Fatal(err)
	}
	if got := tmpl.statusLine(); got != `KICK:0 "___"` {
		t.Errorf("status = %q", got)
	}
}
