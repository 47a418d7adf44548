package tracker

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"

	"github.com/vsariola/gridbeat"
)

// Model implements the editing side of the sequencer: the cursor, the yank
// register and the commands a front end binds keys to. Every change to the
// grid goes through the History, which publishes the decoded grid to the
// Player.
//
// Model is owned by the UI goroutine. A failure to reach the player is fatal;
// it is stored and reported by Err, and the UI is expected to quit.
type (
	// modelData is the part of the model that gets saved to the recovery file
	modelData struct {
		Grid                 gridbeat.Grid
		Cursor               Cursor
		Register             string
		HasRegister          bool
		FilePath             string
		ChangedSinceSave     bool
		RecoveryFilePath     string `json:"-"`
		ChangedSinceRecovery bool   `json:"-"`
	}

	Model struct {
		d        modelData
		history  *History
		broker   *Broker
		playhead int
		alerts   Alerts
		fatal    error
		log      *slog.Logger
	}

	// Cursor points at one cell of the grid.
	Cursor struct {
		Track int
		Lane  gridbeat.Lane
		Step  int
	}

	// ColumnRef is one on-screen column: a lane of a track.
	ColumnRef struct {
		Track int
		Lane  gridbeat.Lane
	}
)

// NewModel returns a model editing initial, or the grid stored in the
// recovery file if there is one. The initial grid is published to the
// player immediately.
func NewModel(broker *Broker, initial gridbeat.Grid, recoveryFilePath string, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{broker: broker, log: logger, playhead: -1}
	m.d.Grid = initial
	m.d.RecoveryFilePath = recoveryFilePath
	if recoveryFilePath != "" {
		if b, err := os.ReadFile(recoveryFilePath); err == nil {
			var d modelData
			if err := json.Unmarshal(b, &d); err == nil && len(d.Grid.Tracks) > 0 {
				d.Grid.Normalize()
				d.RecoveryFilePath = recoveryFilePath
				m.d = d
				logger.Info("restored recovery file", "path", recoveryFilePath)
			}
		}
	}
	h, err := NewHistory(m.d.Grid, broker.ToPlayer)
	m.history = h
	m.check(err)
	m.clampCursor()
	return m
}

// Err returns the fatal error that stopped the model, if any.
func (m *Model) Err() error { return m.fatal }

func (m *Model) Grid() gridbeat.Grid    { return m.history.Grid() }
func (m *Model) Cursor() Cursor         { return m.d.Cursor }
func (m *Model) History() *History      { return m.history }
func (m *Model) Alerts() *Alerts        { return &m.alerts }
func (m *Model) Playhead() int          { return m.playhead }
func (m *Model) FilePath() string       { return m.d.FilePath }
func (m *Model) ChangedSinceSave() bool { return m.d.ChangedSinceSave }

// Register returns the yanked cell text.
func (m *Model) Register() (string, bool) { return m.d.Register, m.d.HasRegister }

// CurrentCell returns the text under the cursor.
func (m *Model) CurrentCell() string {
	c := m.d.Cursor
	return m.Grid().Cell(c.Track, c.Lane, c.Step)
}

// Columns lists the on-screen columns from left to right.
func (m *Model) Columns() []ColumnRef {
	var ret []ColumnRef
	for t, col := range m.Grid().Tracks {
		for l := 0; l < col.NumLanes(); l++ {
			if col.Lane(gridbeat.Lane(l)) == nil {
				continue
			}
			ret = append(ret, ColumnRef{Track: t, Lane: gridbeat.Lane(l)})
		}
	}
	return ret
}

// MoveCursor moves the cursor dx columns right and dy steps down, wrapping
// around at the edges of the grid.
func (m *Model) MoveCursor(dx, dy int) {
	cols := m.Columns()
	if len(cols) == 0 {
		return
	}
	i := 0
	for j, c := range cols {
		if c.Track == m.d.Cursor.Track && c.Lane == m.d.Cursor.Lane {
			i = j
			break
		}
	}
	i = wrap(i+dx, len(cols))
	m.d.Cursor.Track, m.d.Cursor.Lane = cols[i].Track, cols[i].Lane
	if steps := m.Grid().Steps(); steps > 0 {
		m.d.Cursor.Step = wrap(m.d.Cursor.Step+dy, steps)
	}
}

// SetCursor moves the cursor to c, clamped into the grid.
func (m *Model) SetCursor(c Cursor) {
	m.d.Cursor = c
	m.clampCursor()
}

func (m *Model) clampCursor() {
	g := m.Grid()
	c := &m.d.Cursor
	if len(g.Tracks) == 0 {
		*c = Cursor{}
		return
	}
	c.Track = clamp(c.Track, 0, len(g.Tracks)-1)
	if g.Tracks[c.Track].Lane(c.Lane) == nil {
		c.Lane = gridbeat.NoteLane
	}
	c.Step = clamp(c.Step, 0, g.Steps()-1)
}

// Insert returns an Action replacing the cell under the cursor with text.
func (m *Model) Insert(text string) Action {
	return MakeAction(DoFunc(func() { m.setCell(text) }))
}

// Delete returns an Action that yanks the cell under the cursor and then
// clears it.
func (m *Model) Delete() Action {
	return MakeAction(DoFunc(func() {
		m.yank()
		m.setCell(gridbeat.EmptyCell)
	}))
}

// Yank returns an Action copying the cell under the cursor to the register.
func (m *Model) Yank() Action { return MakeAction(DoFunc(m.yank)) }

func (m *Model) yank() {
	m.d.Register = m.CurrentCell()
	m.d.HasRegister = true
}

// Paste returns an Action writing the register into the cell under the
// cursor. It is disabled while the register is empty.
func (m *Model) Paste() Action { return MakeAction((*modelPaste)(m)) }

type modelPaste Model

func (m *modelPaste) Enabled() bool { return m.d.HasRegister }
func (m *modelPaste) Do()           { (*Model)(m).setCell(m.d.Register) }

// Increment returns an Action adding delta to a numeric cell or stepping a
// note name through the pitch classes. Other cells are left alone.
func (m *Model) Increment(delta int) Action { return MakeAction(modelIncrement{m, delta}) }

type modelIncrement struct {
	*Model
	delta int
}

func (m modelIncrement) Enabled() bool {
	_, ok := gridbeat.Increment(m.CurrentCell(), m.delta)
	return ok
}

func (m modelIncrement) Do() {
	if text, ok := gridbeat.Increment(m.CurrentCell(), m.delta); ok {
		m.setCell(text)
	}
}

// Undo returns an Action stepping back in history. It always republishes
// the visible grid, even when there is nothing to undo.
func (m *Model) Undo() Action {
	return MakeAction(DoFunc(func() {
		pos := m.history.Pos()
		m.afterHistory(pos, m.history.Undo())
	}))
}

// Redo returns an Action stepping forward in history. It always republishes
// the visible grid, even when there is nothing to redo.
func (m *Model) Redo() Action {
	return MakeAction(DoFunc(func() {
		pos := m.history.Pos()
		m.afterHistory(pos, m.history.Redo())
	}))
}

func (m *Model) afterHistory(prevPos int, err error) {
	if m.history.Pos() != prevPos {
		m.markChanged()
		m.clampCursor()
	}
	m.check(err)
}

// ApplyMIDINote writes the key of a note-on as a numeric pitch under the
// cursor and moves one step down. Only note lanes accept MIDI notes.
func (m *Model) ApplyMIDINote(n MIDINote) {
	if m.d.Cursor.Lane != gridbeat.NoteLane {
		return
	}
	m.setCell(strconv.Itoa(n.Key))
	m.MoveCursor(0, 1)
}

// ProcessMIDI applies every MIDI note waiting in the broker without
// blocking.
func (m *Model) ProcessMIDI() {
	for {
		select {
		case n := <-m.broker.MIDINotes:
			m.ApplyMIDINote(n)
		default:
			return
		}
	}
}

// PollPlayhead picks up the step last entered by the player. ok is true if
// the playhead moved since the previous poll.
func (m *Model) PollPlayhead() (step int, ok bool) {
	s, ok := m.broker.ToModel.TryReceive()
	if !ok || s == m.playhead {
		return m.playhead, false
	}
	m.playhead = s
	return s, true
}

// Close stops listening to the player.
func (m *Model) Close() { m.broker.ToModel.Close() }

func (m *Model) setCell(text string) {
	if m.fatal != nil {
		return
	}
	c := m.d.Cursor
	g := m.Grid()
	if g.Cell(c.Track, c.Lane, c.Step) == text {
		return
	}
	g = g.Copy()
	if !g.SetCell(c.Track, c.Lane, c.Step, text) {
		return
	}
	err := m.history.Push(g)
	m.markChanged()
	m.check(err)
}

func (m *Model) markChanged() {
	m.d.Grid = m.Grid()
	m.d.ChangedSinceSave = true
	m.d.ChangedSinceRecovery = true
}

func (m *Model) check(err error) {
	if err == nil || m.fatal != nil {
		return
	}
	m.fatal = err
	m.log.Error("editor stopped", "error", err)
	m.alerts.Add(err.Error(), Error)
}

func wrap(i, n int) int { return ((i % n) + n) % n }

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
